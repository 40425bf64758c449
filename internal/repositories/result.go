package repositories

import (
	"context"
	"database/sql"
	"github.com/mattn/go-sqlite3"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/models"
	"github.com/myrjola/dailytake/internal/sqlite"
	"log/slog"
)

var (
	ErrNotFound      = errors.NewSentinel("not found")
	ErrAlreadyPlayed = errors.NewSentinel("already played")
)

type ResultRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewResultRepository(db *sqlite.Database, logger *slog.Logger) *ResultRepository {
	return &ResultRepository{
		db:     db,
		logger: logger,
	}
}

// Save stores a finished game. A player finishes at most one game per date, another attempt gives ErrAlreadyPlayed.
func (r *ResultRepository) Save(ctx context.Context, result models.Result) (int64, error) {
	stmt := `INSERT INTO results (player_id, date, questions, answers, scores, total)
VALUES (:player_id, :date, :questions, :answers, :scores, :total)`
	res, err := r.db.ReadWrite.NamedExecContext(ctx, stmt, result)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, errors.Wrap(ErrAlreadyPlayed, "insert result",
				slog.String("player_id", result.PlayerID), slog.String("date", result.Date))
		}
		return 0, errors.Wrap(err, "insert result")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return id, nil
}

// ForDate returns the result playerID got on date.
func (r *ResultRepository) ForDate(ctx context.Context, playerID, date string) (models.Result, error) {
	var result models.Result
	stmt := `SELECT id, player_id, date, questions, answers, scores, total, created
FROM results
WHERE player_id = ? AND date = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &result, stmt, playerID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Result{}, errors.Wrap(ErrNotFound, "get result",
				slog.String("player_id", playerID), slog.String("date", date))
		}
		return models.Result{}, errors.Wrap(err, "get result")
	}
	return result, nil
}

// Latest returns the most recent result of playerID.
func (r *ResultRepository) Latest(ctx context.Context, playerID string) (models.Result, error) {
	var result models.Result
	stmt := `SELECT id, player_id, date, questions, answers, scores, total, created
FROM results
WHERE player_id = ?
ORDER BY date DESC, id DESC
LIMIT 1`
	if err := r.db.ReadOnly.GetContext(ctx, &result, stmt, playerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Result{}, errors.Wrap(ErrNotFound, "get latest result", slog.String("player_id", playerID))
		}
		return models.Result{}, errors.Wrap(err, "get latest result")
	}
	return result, nil
}

// Count returns the number of stored results.
func (r *ResultRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.ReadOnly.GetContext(ctx, &count, "SELECT COUNT(*) FROM results"); err != nil {
		return 0, errors.Wrap(err, "count results")
	}
	return count, nil
}
