package trivia

import (
	"github.com/myrjola/dailytake/internal/errors"
	"log/slog"
	"time"
)

var (
	ErrEmptyPartition = errors.NewSentinel("empty catalog partition")
	ErrDuplicateID    = errors.NewSentinel("duplicate question id")
	ErrInvalidDate    = errors.NewSentinel("invalid date")
)

// Catalog is the immutable question pool the daily game is drawn from.
type Catalog struct {
	partitions map[Partition][]Question
	size       int
}

// NewCatalog validates the questions and groups them by partition.
//
// Every one of the six partitions must hold at least one question, otherwise the daily game could not be assembled.
func NewCatalog(questions []Question) (*Catalog, error) {
	var (
		partitions = make(map[Partition][]Question)
		ids        = make(map[string]struct{}, len(questions))
		errs       []error
	)
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		id := q.Describe().ID
		if _, ok := ids[id]; ok {
			errs = append(errs, errors.Wrap(ErrDuplicateID, "add question to catalog", slog.String("id", id)))
			continue
		}
		ids[id] = struct{}{}
		p := PartitionOf(q)
		partitions[p] = append(partitions[p], q)
	}
	for _, kind := range []Kind{KindOpen, KindRanked} {
		for _, category := range Categories {
			p := Partition{Category: category, Kind: kind}
			if len(partitions[p]) == 0 {
				errs = append(errs, errors.Wrap(ErrEmptyPartition, "check partition",
					slog.String("partition", p.String())))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Catalog{partitions: partitions, size: len(ids)}, nil
}

// Partition returns the questions of partition p in catalog order. The returned slice must not be modified.
func (c *Catalog) Partition(p Partition) []Question {
	return c.partitions[p]
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return c.size
}

// Overrides maps dates to hand-curated question lists that take precedence over the algorithmic selection.
type Overrides struct {
	byDate map[string][]Question
}

// NewOverrides validates the curated questions and their YYYY-MM-DD date keys.
func NewOverrides(byDate map[string][]Question) (Overrides, error) {
	var errs []error
	copied := make(map[string][]Question, len(byDate))
	for date, questions := range byDate {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			errs = append(errs, errors.Wrap(ErrInvalidDate, "parse override date", slog.String("date", date)))
			continue
		}
		for _, q := range questions {
			if err := q.Validate(); err != nil {
				errs = append(errs, errors.Wrap(err, "validate override", slog.String("date", date)))
			}
		}
		copied[date] = append([]Question(nil), questions...)
	}
	if len(errs) > 0 {
		return Overrides{}, errors.Join(errs...)
	}
	return Overrides{byDate: copied}, nil
}

// Lookup returns the curated questions for date. A nil Overrides has no entries.
func (o Overrides) Lookup(date string) ([]Question, bool) {
	questions, ok := o.byDate[date]
	return questions, ok
}

// Len returns the number of dates with curated questions.
func (o Overrides) Len() int {
	return len(o.byDate)
}
