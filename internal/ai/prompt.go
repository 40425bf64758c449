package ai

import (
	_ "embed"
	"github.com/myrjola/dailytake/internal/errors"
	"strings"
	"text/template"
)

var (
	//go:embed prompt.txt
	promptTemplate string
	//go:embed placeholder.tmpl
	placeholderSource string

	placeholderTemplate = template.Must(template.New("placeholder").Parse(placeholderSource))
)

// Prompt returns the question generation prompt for date with data pasted into it.
func Prompt(date, data string) string {
	return strings.NewReplacer("{DATE}", date, "{DATA}", data).Replace(promptTemplate)
}

// PlaceholderData returns sample market, sports and news data labelled with date.
//
// It stands in for real data feeds when drafting questions by hand.
func PlaceholderData(date string) (string, error) {
	var b strings.Builder
	if err := placeholderTemplate.Execute(&b, date); err != nil {
		return "", errors.Wrap(err, "execute placeholder template")
	}
	return b.String(), nil
}
