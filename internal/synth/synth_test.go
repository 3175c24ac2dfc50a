package synth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) CompleteText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

var projectRows = []map[string]any{
	{"p.name": "AI Chatbot", "p.status": "active"},
	{"p.name": "Data Pipeline", "p.status": "active"},
}

func TestSynthesize_EmptyRowsSkipModel(t *testing.T) {
	completer := &mockCompleter{}
	answer, err := New(completer, 0, nil).Synthesize(context.Background(), "q", nil)

	require.NoError(t, err)
	assert.Equal(t, NoResultsAnswer, answer)
	completer.AssertNotCalled(t, "CompleteText", mock.Anything, mock.Anything)
}

func TestSynthesize_PromptsWithRows(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("CompleteText", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, `"p.name":"AI Chatbot"`) && strings.Contains(p, "Question: Show me all active projects")
	})).Return("The active projects are AI Chatbot and Data Pipeline.", nil)

	answer, err := New(completer, 0, nil).Synthesize(context.Background(), "Show me all active projects", projectRows)

	require.NoError(t, err)
	assert.Equal(t, "The active projects are AI Chatbot and Data Pipeline.", answer)
	completer.AssertExpectations(t)
}

func TestSynthesize_CapabilityFailure(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("CompleteText", mock.Anything, mock.Anything).Return("", llm.NewTimeoutError("openai", nil))

	_, err := New(completer, 0, nil).Synthesize(context.Background(), "q", projectRows)
	assert.True(t, types.HasCode(err, qa.ErrSynthesisFailed))
}

func TestBuildPrompt_Truncates(t *testing.T) {
	s := New(&mockCompleter{}, 1, nil)
	prompt, err := s.BuildPrompt("q", projectRows)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Only the first 1 of 2 rows are included.")
	assert.NotContains(t, prompt, "Data Pipeline")
}

func TestExplain(t *testing.T) {
	s := New(&mockCompleter{}, 0, nil)
	ctx := context.Background()

	assert.Contains(t, s.Explain(ctx, "q", string(qa.ErrStoreUnavailable), "dial tcp"), "not reachable")
	assert.Equal(t,
		"I couldn't answer that because none of the generated queries ran successfully. The last error was: Unknown label Projekt",
		s.Explain(ctx, "q", string(qa.ErrQueryRejected), "Unknown label Projekt"))
	assert.Equal(t,
		"I couldn't answer that because the query took too long to run.",
		s.Explain(ctx, "q", string(qa.ErrQueryTimeout), ""))
	assert.Equal(t, s.Explain(ctx, "q", "other", "x"), s.Explain(ctx, "q", "other", "x"))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"p.name", "p.status"}, projectRows, 0)

	assert.Contains(t, out, "p.name")
	assert.Contains(t, out, "AI Chatbot")
	assert.Contains(t, out, "Data Pipeline")
	assert.Less(t, strings.Index(out, "AI Chatbot"), strings.Index(out, "Data Pipeline"))
	assert.Equal(t, out, RenderTable([]string{"p.name", "p.status"}, projectRows, 0))
}

func TestRenderTable_InfersColumnsAndTruncates(t *testing.T) {
	out := RenderTable(nil, projectRows, 1)

	assert.Contains(t, out, "p.status")
	assert.NotContains(t, out, "Data Pipeline")
	assert.Contains(t, out, "(1 more rows not shown)")
}

func TestFallback(t *testing.T) {
	s := New(&mockCompleter{}, 0, nil)
	assert.Equal(t, NoResultsAnswer, s.Fallback(nil, nil))
	assert.True(t, strings.HasPrefix(s.Fallback([]string{"p.name"}, projectRows), "Here are the results:\n"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "42", FormatValue(int64(42)))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, `["Go","Python"]`, FormatValue([]any{"Go", "Python"}))
	assert.Equal(t, `{"labels":["Project"]}`, FormatValue(map[string]any{"labels": []string{"Project"}}))
}
