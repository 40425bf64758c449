// Package questionbank loads the trivia catalog and the curated daily questions from YAML.
//
// A question bank directory holds bank.yaml with the catalog and daily/*.yaml with one curated day per file.
package questionbank

import (
	"bytes"
	"embed"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/trivia"
	"gopkg.in/yaml.v3"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
)

const (
	bankFile     = "bank.yaml"
	curatedGlob  = "daily/*.yaml"
	curatedExtra = "*.yaml"
)

//go:embed data
var embedded embed.FS

type bankDocument struct {
	Questions []Record `yaml:"questions"`
}

type curatedDocument struct {
	Date      string   `yaml:"date"`
	Questions []Record `yaml:"questions"`
}

// Bank is a loaded catalog together with the curated overrides.
type Bank struct {
	Catalog   *trivia.Catalog
	Overrides trivia.Overrides
}

// Default loads the question bank compiled into the binary.
func Default() (*Bank, error) {
	fsys, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "open embedded question bank")
	}
	return Load(fsys)
}

// LoadWithCurated loads the embedded bank and layers the curated *.yaml files found in dir on top.
//
// Files are applied in lexical order and a later file replaces the questions of an earlier one with the same date.
func LoadWithCurated(dir string) (*Bank, error) {
	fsys, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "open embedded question bank")
	}
	catalog, err := loadCatalog(fsys)
	if err != nil {
		return nil, err
	}
	curated, err := loadCurated(fsys, curatedGlob)
	if err != nil {
		return nil, err
	}
	extra, err := loadCurated(os.DirFS(dir), curatedExtra)
	if err != nil {
		return nil, errors.Wrap(err, "load curated directory", slog.String("dir", dir))
	}
	for date, questions := range extra {
		curated[date] = questions
	}
	return newBank(catalog, curated)
}

// Load reads bank.yaml and daily/*.yaml from fsys.
func Load(fsys fs.FS) (*Bank, error) {
	catalog, err := loadCatalog(fsys)
	if err != nil {
		return nil, err
	}
	curated, err := loadCurated(fsys, curatedGlob)
	if err != nil {
		return nil, err
	}
	return newBank(catalog, curated)
}

func newBank(catalog *trivia.Catalog, curated map[string][]trivia.Question) (*Bank, error) {
	overrides, err := trivia.NewOverrides(curated)
	if err != nil {
		return nil, errors.Wrap(err, "build overrides")
	}
	return &Bank{Catalog: catalog, Overrides: overrides}, nil
}

func loadCatalog(fsys fs.FS) (*trivia.Catalog, error) {
	var doc bankDocument
	if err := decodeFile(fsys, bankFile, &doc); err != nil {
		return nil, err
	}
	questions, err := toQuestions(doc.Questions)
	if err != nil {
		return nil, errors.Wrap(err, "convert catalog", slog.String("file", bankFile))
	}
	catalog, err := trivia.NewCatalog(questions)
	if err != nil {
		return nil, errors.Wrap(err, "build catalog", slog.String("file", bankFile))
	}
	return catalog, nil
}

func loadCurated(fsys fs.FS, pattern string) (map[string][]trivia.Question, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, errors.Wrap(err, "list curated files", slog.String("pattern", pattern))
	}
	curated := make(map[string][]trivia.Question, len(names))
	for _, name := range names {
		var doc curatedDocument
		if err = decodeFile(fsys, name, &doc); err != nil {
			return nil, err
		}
		if doc.Date == "" {
			return nil, errors.Wrap(trivia.ErrInvalidDate, "curated file without date", slog.String("file", name))
		}
		questions, err := toQuestions(doc.Questions)
		if err != nil {
			return nil, errors.Wrap(err, "convert curated questions", slog.String("file", name))
		}
		curated[doc.Date] = questions
	}
	return curated, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrap(err, "read question file", slog.String("file", name))
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode question file", slog.String("file", path.Base(name)))
	}
	return nil
}

func toQuestions(records []Record) ([]trivia.Question, error) {
	questions := make([]trivia.Question, 0, len(records))
	var errs []error
	for _, r := range records {
		q, err := r.ToQuestion()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		questions = append(questions, q)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return questions, nil
}

// WriteCurated writes the questions as a curated day that Load and LoadWithCurated read back.
func WriteCurated(w io.Writer, date string, questions []trivia.Question) error {
	doc := curatedDocument{
		Date:      date,
		Questions: make([]Record, 0, len(questions)),
	}
	for _, q := range questions {
		doc.Questions = append(doc.Questions, FromQuestion(q))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd // matches the embedded files
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encode curated questions", slog.String("date", date))
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "flush curated questions", slog.String("date", date))
	}
	return nil
}
