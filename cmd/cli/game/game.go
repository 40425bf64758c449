// Package game holds the commands that inspect the daily game and the question bank.
package game

import (
	"fmt"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/questionbank"
	"github.com/myrjola/dailytake/internal/trivia"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"time"
)

var Group = &cobra.Group{
	ID:    "game",
	Title: "Daily game",
}

func init() {
	Today.Flags().String("date", "", "game date in YYYY-MM-DD format, today in UTC when empty")
	Today.Flags().String("curated-dir", "", "directory with extra curated daily games")
	Validate.Flags().String("curated-dir", "", "directory with extra curated daily games")
}

var Today = &cobra.Command{
	Use:     "today",
	GroupID: "game",
	Short:   "Print the daily game",
	Long:    `Prints the questions of the daily game together with their answers`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		date, err := cmd.Flags().GetString("date")
		if err != nil {
			return errors.Wrap(err, "read date flag")
		}
		if date == "" {
			date = time.Now().UTC().Format(time.DateOnly)
		}
		if _, err = time.Parse(time.DateOnly, date); err != nil {
			return errors.Wrap(trivia.ErrInvalidDate, "parse date flag", slog.String("date", date))
		}
		var bank *questionbank.Bank
		if bank, err = loadBank(cmd); err != nil {
			return err
		}
		game := trivia.NewSelector(bank.Catalog, bank.Overrides).Select(date)
		return printGame(cmd.OutOrStdout(), game)
	},
}

var Validate = &cobra.Command{
	Use:     "validate",
	GroupID: "game",
	Short:   "Validate the question bank",
	Long:    `Loads the embedded question bank and the curated directory and reports the first problems found`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d catalog questions, %d curated days\n",
			bank.Catalog.Len(), bank.Overrides.Len())
		return err //nolint:wrapcheck // output errors are reported as is
	},
}

func loadBank(cmd *cobra.Command) (*questionbank.Bank, error) {
	dir, err := cmd.Flags().GetString("curated-dir")
	if err != nil {
		return nil, errors.Wrap(err, "read curated-dir flag")
	}
	var bank *questionbank.Bank
	if dir == "" {
		bank, err = questionbank.Default()
	} else {
		bank, err = questionbank.LoadWithCurated(dir)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load question bank", slog.String("curatedDir", dir))
	}
	return bank, nil
}

func printGame(w io.Writer, game trivia.DailyGame) error {
	var err error
	write := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	write("The Daily Take - %s\n", game.Date)
	for i, q := range game.Questions {
		d := q.Describe()
		write("\n%d. [%s/%s] %s (%s)\n", i+1, d.Category, q.Kind(), d.Text, d.ID)
		switch q := q.(type) {
		case trivia.OpenQuestion:
			for _, a := range q.Answers {
				write("   - %s: %d\n", a.Text, a.Points)
			}
		case trivia.RankedQuestion:
			for position, item := range q.RankedList {
				write("   %d. %s\n", position+1, item)
			}
		}
	}
	if err != nil {
		return errors.Wrap(err, "print game")
	}
	return nil
}
