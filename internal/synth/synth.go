package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
)

// NoResultsAnswer is returned for an empty result without asking the model.
const NoResultsAnswer = "I couldn't find any results for that question in the graph."

// DefaultMaxRows caps how many rows are shown to the model or rendered.
const DefaultMaxRows = 50

const answerTemplate = `You are an assistant that turns database results into clear answers.
The information below was returned by the graph database for the question. It is authoritative:
never doubt it or correct it with your own knowledge. Answer the question directly in a few
sentences and do not mention that you were given information.
{{- if .Truncated }}
Only the first {{ .Shown }} of {{ .Total }} rows are included.
{{- end }}

Information:
{{ .Rows }}

Question: {{ .Question }}
Helpful Answer:`

var promptTemplate = template.Must(template.New("answer").Parse(answerTemplate))

// Synthesizer writes answers from result rows with a language model.
type Synthesizer struct {
	completer llm.TextCompleter
	maxRows   int
	logger    *observability.TracedLogger
}

// New creates a Synthesizer. A maxRows below 1 selects DefaultMaxRows.
func New(completer llm.TextCompleter, maxRows int, logger *observability.TracedLogger) *Synthesizer {
	if maxRows < 1 {
		maxRows = DefaultMaxRows
	}
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Synthesizer{completer: completer, maxRows: maxRows, logger: logger}
}

// Synthesize implements qa.Synthesizer. It only reads rows that were already fetched.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, rows []map[string]any) (string, error) {
	if len(rows) == 0 {
		return NoResultsAnswer, nil
	}

	prompt, err := s.BuildPrompt(question, rows)
	if err != nil {
		return "", qa.NewSynthesisError("failed to build answer prompt", err)
	}

	answer, err := s.completer.CompleteText(ctx, prompt)
	if err != nil {
		return "", qa.NewSynthesisError("language model did not return an answer", err)
	}
	return answer, nil
}

// BuildPrompt renders the answer prompt with rows encoded as JSON.
func (s *Synthesizer) BuildPrompt(question string, rows []map[string]any) (string, error) {
	shown := rows
	if len(shown) > s.maxRows {
		shown = shown[:s.maxRows]
	}

	encoded, err := json.Marshal(shown)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = promptTemplate.Execute(&buf, struct {
		Question  string
		Rows      string
		Truncated bool
		Shown     int
		Total     int
	}{
		Question:  strings.TrimSpace(question),
		Rows:      string(encoded),
		Truncated: len(rows) > len(shown),
		Shown:     len(shown),
		Total:     len(rows),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Explain implements qa.Synthesizer. The text depends only on its arguments.
func (s *Synthesizer) Explain(ctx context.Context, question, category, lastError string) string {
	detail := strings.TrimSpace(lastError)

	switch category {
	case string(qa.ErrStoreUnavailable):
		return "I couldn't answer that because the graph database is not reachable right now. Please try again later."
	case string(qa.ErrCanceled):
		return "The request was canceled before an answer was found."
	case string(qa.ErrGenerationFailed):
		return withDetail("I couldn't answer that because the language model did not produce a query", detail)
	case string(qa.ErrQueryTimeout):
		return withDetail("I couldn't answer that because the query took too long to run", detail)
	case string(qa.ErrQueryRejected):
		return withDetail("I couldn't answer that because none of the generated queries ran successfully", detail)
	default:
		return withDetail("I couldn't answer that question", detail)
	}
}

func withDetail(prefix, detail string) string {
	if detail == "" {
		return prefix + "."
	}
	return fmt.Sprintf("%s. The last error was: %s", prefix, detail)
}

// Fallback implements qa.Synthesizer with RenderTable.
func (s *Synthesizer) Fallback(columns []string, rows []map[string]any) string {
	if len(rows) == 0 {
		return NoResultsAnswer
	}
	return "Here are the results:\n" + RenderTable(columns, rows, s.maxRows)
}
