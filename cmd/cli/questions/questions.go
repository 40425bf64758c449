// Package questions holds the commands that draft curated daily games with an AI model.
package questions

import (
	"fmt"
	"github.com/myrjola/dailytake/internal/ai"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/questionbank"
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
	"time"
)

var Group = &cobra.Group{
	ID:    "questions",
	Title: "Question drafting",
}

func init() {
	Prompt.Flags().String("date", "", "game date in YYYY-MM-DD format, today in UTC when empty")
	Prompt.Flags().String("data", "", "file with the market, sports and news data, placeholder data when empty")

	Generate.Flags().String("date", "", "game date in YYYY-MM-DD format, today in UTC when empty")
	Generate.Flags().String("data", "", "file with the market, sports and news data, placeholder data when empty")
	Generate.Flags().String("out", "", "path to the curated YAML file, standard output when empty")
	Generate.Flags().String("model", "", "chat model, GPT-4 when empty")
	Generate.Flags().String("base-url", "", "OpenAI compatible API base URL, the public API when empty")
}

var Prompt = &cobra.Command{
	Use:     "prompt",
	GroupID: "questions",
	Short:   "Print the question generation prompt",
	Long:    `Prints the prompt for drafting a curated daily game so that it can be pasted into any chat model`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		date, prompt, err := buildPrompt(cmd)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintln(cmd.OutOrStdout(), prompt); err != nil {
			return errors.Wrap(err, "print prompt", slog.String("date", date))
		}
		return nil
	},
}

var Generate = &cobra.Command{
	Use:     "generate",
	GroupID: "questions",
	Short:   "Draft a curated daily game",
	Long: `Drafts the questions of a daily game with an OpenAI chat model and writes them as a curated YAML file.
Reads the API key from OPENAI_API_KEY.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		apiKey, ok := os.LookupEnv("OPENAI_API_KEY")
		if !ok || apiKey == "" {
			return errors.New("OPENAI_API_KEY not set")
		}
		date, prompt, err := buildPrompt(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		var model, baseURL, out string
		if model, err = flags.GetString("model"); err != nil {
			return errors.Wrap(err, "read model flag")
		}
		if baseURL, err = flags.GetString("base-url"); err != nil {
			return errors.Wrap(err, "read base-url flag")
		}
		if out, err = flags.GetString("out"); err != nil {
			return errors.Wrap(err, "read out flag")
		}

		var drafted []trivia.Question
		if drafted, err = ai.NewClient(apiKey, baseURL, model).DraftQuestions(cmd.Context(), prompt); err != nil {
			return errors.Wrap(err, "draft questions", slog.String("date", date))
		}
		if len(drafted) < trivia.QuestionsPerGame {
			return errors.Wrap(ai.ErrNoQuestions, "too few drafted questions",
				slog.Int("drafted", len(drafted)), slog.Int("needed", trivia.QuestionsPerGame))
		}

		if out == "" {
			return questionbank.WriteCurated(cmd.OutOrStdout(), date, drafted)
		}
		var file *os.File
		if file, err = os.Create(out); err != nil {
			return errors.Wrap(err, "create curated file", slog.String("path", out))
		}
		if err = questionbank.WriteCurated(file, date, drafted); err != nil {
			_ = file.Close()
			return err
		}
		if err = file.Close(); err != nil {
			return errors.Wrap(err, "close curated file", slog.String("path", out))
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d questions for %s to %s\n", len(drafted), date, out)
		return nil
	},
}

// buildPrompt returns the date and the prompt described by the date and data flags.
func buildPrompt(cmd *cobra.Command) (string, string, error) {
	flags := cmd.Flags()
	date, err := flags.GetString("date")
	if err != nil {
		return "", "", errors.Wrap(err, "read date flag")
	}
	if date == "" {
		date = time.Now().UTC().Format(time.DateOnly)
	}
	if _, err = time.Parse(time.DateOnly, date); err != nil {
		return "", "", errors.Wrap(trivia.ErrInvalidDate, "parse date flag", slog.String("date", date))
	}

	var dataPath, data string
	if dataPath, err = flags.GetString("data"); err != nil {
		return "", "", errors.Wrap(err, "read data flag")
	}
	if dataPath == "" {
		if data, err = ai.PlaceholderData(date); err != nil {
			return "", "", errors.Wrap(err, "placeholder data")
		}
	} else {
		var raw []byte
		if raw, err = os.ReadFile(dataPath); err != nil {
			return "", "", errors.Wrap(err, "read data file", slog.String("path", dataPath))
		}
		data = string(raw)
	}
	return date, ai.Prompt(date, data), nil
}
