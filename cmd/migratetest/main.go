package main

import (
	"context"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/repositories"
	"github.com/myrjola/dailytake/internal/sqlite"
	"github.com/myrjola/dailytake/internal/testhelpers"
	"log/slog"
	"os"
	"time"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("DAILYTAKE_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "DAILYTAKE_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// Count the stored results as a simple check that the migrated schema is readable.
	var count int
	if count, err = repositories.NewResultRepository(db, logger).Count(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting results", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "result count", slog.Int("count", count))
	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
