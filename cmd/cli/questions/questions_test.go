package questions_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/myrjola/dailytake/cmd/cli/questions"
	"github.com/myrjola/dailytake/internal/ai"
	"github.com/myrjola/dailytake/internal/questionbank"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func draftedReply(count int) string {
	var records []string
	for i := range count {
		records = append(records, fmt.Sprintf(
			`{"id": "daily-2025-01-11-%d", "type": "open", "category": "general", "question": "Question %d", `+
				`"answers": {"Yes": 10, "No": 40}}`, i+1, i+1))
	}
	return "```json\n[" + strings.Join(records, ",\n") + "]\n```"
}

func newCompletionServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := openai.ChatCompletionResponse{ //nolint:exhaustruct // only the fields the client reads
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Choices: []openai.ChatCompletionChoice{{ //nolint:exhaustruct // only the fields the client reads
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	questions.Prompt.SetOut(&out)
	questions.Prompt.SetArgs([]string{"--date", "2025-01-11"})

	require.NoError(t, questions.Prompt.Execute())
	assert.Contains(t, out.String(), "daily-2025-01-11-1 to daily-2025-01-11-5")
	assert.Contains(t, out.String(), "MARKET DATA (2025-01-11)")
	assert.NotContains(t, out.String(), "{DATA}")
}

func TestPrompt_dataFile(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(dataPath, []byte("Bitcoin closed at 100,000"), 0o600))
	var out bytes.Buffer
	questions.Prompt.SetOut(&out)
	questions.Prompt.SetArgs([]string{"--date", "2025-01-11", "--data", dataPath})

	require.NoError(t, questions.Prompt.Execute())
	assert.Contains(t, out.String(), "Bitcoin closed at 100,000")
	assert.NotContains(t, out.String(), "MARKET DATA")
}

func TestGenerate(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	srv := newCompletionServer(t, draftedReply(5))
	dir := t.TempDir()
	outPath := filepath.Join(dir, "2025-01-11.yaml")

	questions.Generate.SetOut(&bytes.Buffer{})
	questions.Generate.SetErr(&bytes.Buffer{})
	questions.Generate.SetArgs([]string{"--date", "2025-01-11", "--out", outPath, "--base-url", srv.URL + "/v1"})
	require.NoError(t, questions.Generate.Execute())

	bank, err := questionbank.LoadWithCurated(dir)
	require.NoError(t, err)
	curated, ok := bank.Overrides.Lookup("2025-01-11")
	require.True(t, ok)
	require.Len(t, curated, 5)
	assert.Equal(t, "daily-2025-01-11-5", curated[4].Describe().ID)
}

func TestGenerate_tooFewQuestions(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	srv := newCompletionServer(t, draftedReply(3))

	questions.Generate.SetOut(&bytes.Buffer{})
	questions.Generate.SetErr(&bytes.Buffer{})
	questions.Generate.SetArgs([]string{"--date", "2025-01-11", "--out", "", "--base-url", srv.URL + "/v1"})
	require.ErrorIs(t, questions.Generate.Execute(), ai.ErrNoQuestions)
}

func TestGenerate_missingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	questions.Generate.SetOut(&bytes.Buffer{})
	questions.Generate.SetErr(&bytes.Buffer{})
	questions.Generate.SetArgs([]string{"--date", "2025-01-11"})
	require.Error(t, questions.Generate.Execute())
}
