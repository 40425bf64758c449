package questionbank

import (
	"bytes"
	"encoding/json"
	"github.com/myrjola/dailytake/internal/errors"
	"github.com/myrjola/dailytake/internal/trivia"
	"gopkg.in/yaml.v3"
	"log/slog"
	"strconv"
)

var (
	ErrUnknownType    = errors.NewSentinel("unknown question type")
	ErrMissingPayload = errors.NewSentinel("question payload missing")
	ErrMalformed      = errors.NewSentinel("malformed question record")
)

// Record is the serialised form of a question, shared by the YAML files and the JSON drafted by the AI.
type Record struct {
	ID         string   `json:"id"                   yaml:"id"`
	Type       string   `json:"type"                 yaml:"type"`
	Category   string   `json:"category"             yaml:"category"`
	Question   string   `json:"question"             yaml:"question"`
	Answers    Answers  `json:"answers,omitempty"    yaml:"answers,omitempty"`
	RankedList []string `json:"rankedList,omitempty" yaml:"rankedList,omitempty"`
}

// ToQuestion converts the record to a validated question.
func (r Record) ToQuestion() (trivia.Question, error) {
	details := trivia.Details{
		ID:       r.ID,
		Category: trivia.Category(r.Category),
		Text:     r.Question,
	}
	var q trivia.Question
	switch trivia.Kind(r.Type) {
	case trivia.KindOpen:
		if len(r.Answers) == 0 {
			return nil, errors.Wrap(ErrMissingPayload, "open record without answers", slog.String("id", r.ID))
		}
		q = trivia.OpenQuestion{Details: details, Answers: []trivia.Answer(r.Answers)}
	case trivia.KindRanked:
		if len(r.RankedList) == 0 {
			return nil, errors.Wrap(ErrMissingPayload, "ranked record without rankedList", slog.String("id", r.ID))
		}
		q = trivia.RankedQuestion{Details: details, RankedList: r.RankedList}
	default:
		return nil, errors.Wrap(ErrUnknownType, "convert record",
			slog.String("id", r.ID), slog.String("type", r.Type))
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// FromQuestion converts a question to its serialised form.
func FromQuestion(q trivia.Question) Record {
	d := q.Describe()
	r := Record{
		ID:       d.ID,
		Type:     string(q.Kind()),
		Category: string(d.Category),
		Question: d.Text,
	}
	switch q := q.(type) {
	case trivia.OpenQuestion:
		r.Answers = Answers(q.Answers)
	case trivia.RankedQuestion:
		r.RankedList = q.RankedList
	}
	return r
}

// Answers maps answer text to points in both YAML and JSON while keeping the written order.
type Answers []trivia.Answer

func (a *Answers) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Wrap(ErrMalformed, "answers must be a mapping", slog.Int("line", value.Line))
	}
	answers := make(Answers, 0, len(value.Content)/2) //nolint:mnd // key-value pairs
	for i := 0; i+1 < len(value.Content); i += 2 {
		var (
			text   string
			points int
		)
		if err := value.Content[i].Decode(&text); err != nil {
			return errors.Wrap(err, "decode answer text")
		}
		if err := value.Content[i+1].Decode(&points); err != nil {
			return errors.Wrap(err, "decode answer points", slog.String("answer", text))
		}
		answers = append(answers, trivia.Answer{Text: text, Points: points})
	}
	*a = answers
	return nil
}

func (a Answers) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, answer := range a {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: answer.Text},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(answer.Points)},
		)
	}
	return node, nil
}

func (a *Answers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "read answers")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Wrap(ErrMalformed, "answers must be an object")
	}
	var answers Answers
	for dec.More() {
		if tok, err = dec.Token(); err != nil {
			return errors.Wrap(err, "read answer text")
		}
		text, ok := tok.(string)
		if !ok {
			return errors.Wrap(ErrMalformed, "answer text must be a string")
		}
		var points int
		if err = dec.Decode(&points); err != nil {
			return errors.Wrap(err, "decode answer points", slog.String("answer", text))
		}
		answers = append(answers, trivia.Answer{Text: text, Points: points})
	}
	if _, err = dec.Token(); err != nil {
		return errors.Wrap(err, "read end of answers")
	}
	*a = answers
	return nil
}

func (a Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, answer := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(answer.Text)
		if err != nil {
			return nil, errors.Wrap(err, "encode answer text")
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(answer.Points))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
