package main

import (
	"context"
	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/dailytake/internal/e2etest"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/logging"
	"log/slog"
	"os"
	"time"
)

// PlayGame plays the daily game as a new player and checks that the results page shows a score.
func PlayGame(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()
	var (
		err error
		doc *goquery.Document
	)

	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}
	if doc, err = client.PlayDailyGame(ctx, nil); err != nil {
		return errors.Wrap(err, "play daily game")
	}
	if doc.Find("#total").Length() == 0 {
		return errors.New("results page without total score")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = PlayGame(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error playing game", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
