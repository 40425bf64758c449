package main

import (
	"context"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/dailytake/internal/envstruct"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/logging"
	"github.com/myrjola/dailytake/internal/pprofserver"
	"github.com/myrjola/dailytake/internal/questionbank"
	"github.com/myrjola/dailytake/internal/repositories"
	"github.com/myrjola/dailytake/internal/sqlite"
	"github.com/myrjola/dailytake/internal/trivia"
	"log/slog"
	"net/http"
	"os"
	"time"
)

type application struct {
	logger          *slog.Logger
	sessionManager  *scs.SessionManager
	selector        *trivia.Selector
	results         *repositories.ResultRepository
	htmx            *htmx.HTMX
	site            string
	fixedDate       string
	suggestionLimit int
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"DAILYTAKE_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ephemeral in-memory database.
	SqliteURL string `env:"DAILYTAKE_SQLITE_URL" envDefault:"./dailytake.sqlite3"`
	// PprofAddr is the localhost address for the pprof server. Empty disables it.
	PprofAddr string `env:"DAILYTAKE_PPROF_ADDR" envDefault:""`
	// CuratedDir holds extra curated daily games as YAML files.
	CuratedDir string `env:"DAILYTAKE_CURATED_DIR" envDefault:""`
	// FixedDate pins the game date in YYYY-MM-DD format.
	FixedDate string `env:"DAILYTAKE_FIXED_DATE" envDefault:""`
	// Site is shown in the share text.
	Site            string        `env:"DAILYTAKE_SITE" envDefault:"thedailytake.com"`
	SessionLifetime time.Duration `env:"DAILYTAKE_SESSION_LIFETIME" envDefault:"720h"`
	SuggestionLimit int           `env:"DAILYTAKE_SUGGESTION_LIMIT" envDefault:"5"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err  error
		cfg  config
		bank *questionbank.Bank
		db   *sqlite.Database
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if cfg.FixedDate != "" {
		if _, err = time.Parse(time.DateOnly, cfg.FixedDate); err != nil {
			return errors.Wrap(trivia.ErrInvalidDate, "parse fixed date", slog.String("date", cfg.FixedDate))
		}
	}

	if cfg.PprofAddr != "" {
		if _, err = pprofserver.Launch(ctx, cfg.PprofAddr, logger); err != nil {
			return errors.Wrap(err, "launch pprof server")
		}
	}

	if cfg.CuratedDir == "" {
		bank, err = questionbank.Default()
	} else {
		bank, err = questionbank.LoadWithCurated(cfg.CuratedDir)
	}
	if err != nil {
		return errors.Wrap(err, "load question bank", slog.String("curatedDir", cfg.CuratedDir))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "loaded question bank",
		slog.Int("questions", bank.Catalog.Len()), slog.Int("curatedDays", bank.Overrides.Len()))

	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "connect to database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(closeErr))
		}
	}()

	store := sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour) //nolint:mnd // once a day
	defer store.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	app := application{
		logger:          logger,
		sessionManager:  sessionManager,
		selector:        trivia.NewSelector(bank.Catalog, bank.Overrides),
		results:         repositories.NewResultRepository(db, logger),
		htmx:            htmx.New(),
		site:            cfg.Site,
		fixedDate:       cfg.FixedDate,
		suggestionLimit: cfg.SuggestionLimit,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	if err := godotenv.Load(); err != nil {
		logger.LogAttrs(ctx, slog.LevelDebug, "no .env file loaded", errors.SlogError(err))
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
