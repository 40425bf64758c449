package models

import (
	"database/sql/driver"
	"encoding/json"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/trivia"
	"log/slog"
)

// Result is a finished daily game as stored in the database.
type Result struct {
	ID        int64            `db:"id"`
	PlayerID  string           `db:"player_id"`
	Date      string           `db:"date"`
	Questions JSONList[string] `db:"questions"`
	Answers   JSONList[string] `db:"answers"`
	Scores    JSONList[int]    `db:"scores"`
	Total     int              `db:"total"`
	Created   string           `db:"created"`
}

// NewResult builds the result of a completed game.
func NewResult(playerID string, results trivia.Results) Result {
	return Result{
		PlayerID:  playerID,
		Date:      results.Date,
		Questions: results.Questions,
		Answers:   results.Answers,
		Scores:    results.Scores,
		Total:     results.Total(),
	}
}

func (r Result) Results() trivia.Results {
	return trivia.Results{
		Date:      r.Date,
		Questions: r.Questions,
		Answers:   r.Answers,
		Scores:    r.Scores,
	}
}

// JSONList stores a slice as JSON text in a single column.
type JSONList[T any] []T

func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, errors.Wrap(err, "marshal json list")
	}
	return string(b), nil
}

func (l *JSONList[T]) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		*l = nil
		return nil
	default:
		return errors.New("unsupported json list source", slog.Any("src", src))
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Wrap(err, "unmarshal json list")
	}
	*l = list
	return nil
}
