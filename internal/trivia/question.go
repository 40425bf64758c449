// Package trivia selects the daily set of questions and scores the answers.
//
// Everything in this package is pure. The date is always supplied by the caller and the catalog and curated
// overrides are injected, so two processes given the same inputs produce the same game.
package trivia

import (
	"github.com/myrjola/dailytake/internal/errors"
	"log/slog"
	"strings"
)

var ErrInvalidQuestion = errors.NewSentinel("invalid question")

type Category string

const (
	CategoryFinance Category = "finance"
	CategorySports  Category = "sports"
	CategoryGeneral Category = "general"
)

// Categories lists the categories in catalog order.
var Categories = []Category{CategoryFinance, CategorySports, CategoryGeneral}

func (c Category) valid() bool {
	switch c {
	case CategoryFinance, CategorySports, CategoryGeneral:
		return true
	}
	return false
}

// Kind is the answer modality of a question.
type Kind string

const (
	KindOpen   Kind = "open"
	KindRanked Kind = "ranked"
)

// Details are the fields shared by every question variant.
type Details struct {
	ID       string
	Category Category
	Text     string
}

// Describe returns the shared fields of the question.
func (d Details) Describe() Details {
	return d
}

// Question is either an OpenQuestion or a RankedQuestion.
type Question interface {
	Describe() Details
	Kind() Kind
	// Validate reports ErrInvalidQuestion when the question breaks its invariants.
	Validate() error
	sealed()
}

// Answer is an accepted answer to an open question and its rarity score.
type Answer struct {
	Text string
	// Points are in [0, 100]. Rarer answers score higher.
	Points int
}

// OpenQuestion is answered with free text.
type OpenQuestion struct {
	Details
	// Answers keep their authored order, which decides matching precedence and suggestion order.
	Answers []Answer
}

func (OpenQuestion) Kind() Kind { return KindOpen }

func (OpenQuestion) sealed() {}

func (q OpenQuestion) Validate() error {
	if err := q.Details.validate(); err != nil {
		return err
	}
	if len(q.Answers) == 0 {
		return errors.Wrap(ErrInvalidQuestion, "open question without answers", slog.String("id", q.ID))
	}
	seen := make(map[string]struct{}, len(q.Answers))
	for _, a := range q.Answers {
		key := normalizeAnswer(a.Text)
		if key == "" {
			return errors.Wrap(ErrInvalidQuestion, "blank answer", slog.String("id", q.ID))
		}
		if a.Points < 0 || a.Points > 100 {
			return errors.Wrap(ErrInvalidQuestion, "answer points out of range",
				slog.String("id", q.ID), slog.String("answer", a.Text), slog.Int("points", a.Points))
		}
		if _, ok := seen[key]; ok {
			return errors.Wrap(ErrInvalidQuestion, "duplicate answer",
				slog.String("id", q.ID), slog.String("answer", a.Text))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// RankedQuestion is answered by ordering its items.
type RankedQuestion struct {
	Details
	// RankedList is the correct order from first to last.
	RankedList []string
}

func (RankedQuestion) Kind() Kind { return KindRanked }

func (RankedQuestion) sealed() {}

func (q RankedQuestion) Validate() error {
	if err := q.Details.validate(); err != nil {
		return err
	}
	if len(q.RankedList) < 2 { //nolint:mnd // ordering needs two items
		return errors.Wrap(ErrInvalidQuestion, "ranked question needs at least two items",
			slog.String("id", q.ID), slog.Int("items", len(q.RankedList)))
	}
	seen := make(map[string]struct{}, len(q.RankedList))
	for _, item := range q.RankedList {
		if _, ok := seen[item]; ok {
			return errors.Wrap(ErrInvalidQuestion, "duplicate ranked item",
				slog.String("id", q.ID), slog.String("item", item))
		}
		seen[item] = struct{}{}
	}
	return nil
}

func (d Details) validate() error {
	if d.ID == "" {
		return errors.Wrap(ErrInvalidQuestion, "missing id", slog.String("text", d.Text))
	}
	if !d.Category.valid() {
		return errors.Wrap(ErrInvalidQuestion, "unknown category",
			slog.String("id", d.ID), slog.String("category", string(d.Category)))
	}
	if strings.TrimSpace(d.Text) == "" {
		return errors.Wrap(ErrInvalidQuestion, "missing question text", slog.String("id", d.ID))
	}
	return nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Partition is a catalog subset with a single category and modality.
type Partition struct {
	Category Category
	Kind     Kind
}

func (p Partition) String() string {
	return string(p.Category) + "-" + string(p.Kind)
}

// PartitionOf returns the partition the question belongs to.
func PartitionOf(q Question) Partition {
	return Partition{Category: q.Describe().Category, Kind: q.Kind()}
}
