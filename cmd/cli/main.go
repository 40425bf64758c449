package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/dailytake/cmd/cli/game"
	"github.com/myrjola/dailytake/cmd/cli/questions"
	"github.com/spf13/cobra"
	"os"
)

func init() {
	// A missing .env file is fine, the environment may already hold the variables.
	_ = godotenv.Load()
	rootCmd.AddGroup(game.Group)
	rootCmd.AddCommand(game.Today, game.Validate)
	rootCmd.AddGroup(questions.Group)
	rootCmd.AddCommand(questions.Prompt, questions.Generate)
}

var rootCmd = &cobra.Command{
	Use:           "dailytake-cli",
	Long:          `Command line utilities for The Daily Take https://github.com/myrjola/dailytake`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
