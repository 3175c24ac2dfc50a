package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) CompleteText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

var projectSchema = &schema.Description{
	Labels:            []string{"Person", "Project"},
	RelationshipTypes: []string{"WORKED_ON"},
	Properties: map[string][]string{
		"Person":    {"name"},
		"Project":   {"name", "status"},
		"WORKED_ON": {},
	},
	Patterns: []schema.Pattern{{From: "Person", Type: "WORKED_ON", To: "Project"}},
}

func TestBuildPrompt_FirstAttempt(t *testing.T) {
	prompt, err := BuildPrompt("Show me all active projects", projectSchema, nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "- Project {name, status}")
	assert.Contains(t, prompt, "(:Person)-[:WORKED_ON]->(:Project)")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "Show me all active projects"))
	assert.NotContains(t, prompt, "most recent query")
}

func TestBuildPrompt_IncludesLatestFailureVerbatim(t *testing.T) {
	prior := []qa.Attempt{
		{Query: qa.GeneratedQuery{Text: "MATCH (p:Projekt) RETURN p", Attempt: 1}, Result: qa.Failed(qa.ErrQueryRejected, "label Projekt does not exist")},
		{Query: qa.GeneratedQuery{Text: "MATCH (p:Project) RETURN p.title", Attempt: 2}, Result: qa.Failed(qa.ErrQueryRejected, "Unknown property key: `title` (line 1, column 30)")},
	}

	prompt, err := BuildPrompt("Show me all active projects", projectSchema, prior)
	require.NoError(t, err)

	assert.Contains(t, prompt, "label Projekt does not exist")
	assert.Contains(t, prompt, "It failed with this error:\nUnknown property key: `title` (line 1, column 30)\n")
	assert.Contains(t, prompt, "    MATCH (p:Project) RETURN p.title")
	assert.Less(t, strings.Index(prompt, "Attempt 1:"), strings.Index(prompt, "Attempt 2:"))
}

func TestExtractCypher(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        string
		explanation string
	}{
		{name: "plain", in: "MATCH (n) RETURN n", want: "MATCH (n) RETURN n"},
		{name: "fenced with tag", in: "```cypher\nMATCH (p:Project) RETURN p.name;\n```", want: "MATCH (p:Project) RETURN p.name"},
		{name: "fenced without tag", in: "```\nMATCH (n) RETURN count(n)\n```", want: "MATCH (n) RETURN count(n)"},
		{name: "prefix", in: "Cypher: MATCH (n) RETURN n", want: "MATCH (n) RETURN n"},
		{name: "query prefix", in: "cypher query:\nMATCH (n) RETURN n", want: "MATCH (n) RETURN n"},
		{
			name:        "surrounding text",
			in:          "Here is the query:\n```Cypher\nMATCH (n) RETURN n\n```\nIt lists all nodes.",
			want:        "MATCH (n) RETURN n",
			explanation: "Here is the query: It lists all nodes.",
		},
		{name: "empty", in: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, explanation := ExtractCypher(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.explanation, explanation)
		})
	}
}

func TestLLMGenerator_Generate(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("CompleteText", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Show me all active projects")
	})).Return("```cypher\nMATCH (p:Project {status: 'active'}) RETURN p.name\n```", nil).Once()

	gen := New(completer, nil)
	q, err := gen.Generate(context.Background(), "Show me all active projects", projectSchema, nil)
	require.NoError(t, err)

	assert.Equal(t, "MATCH (p:Project {status: 'active'}) RETURN p.name", q.Text)
	assert.Equal(t, 1, q.Attempt)
	completer.AssertExpectations(t)
}

func TestLLMGenerator_Failures(t *testing.T) {
	t.Run("capability error", func(t *testing.T) {
		completer := &mockCompleter{}
		completer.On("CompleteText", mock.Anything, mock.Anything).Return("", llm.NewNetworkError("connection refused", nil))

		_, err := New(completer, nil).Generate(context.Background(), "q", projectSchema, nil)
		assert.True(t, types.HasCode(err, qa.ErrGenerationFailed))
		assert.True(t, types.HasCode(err, llm.ErrNetworkFailed))
	})

	t.Run("empty statement", func(t *testing.T) {
		completer := &mockCompleter{}
		completer.On("CompleteText", mock.Anything, mock.Anything).Return("```cypher\n```", nil)

		_, err := New(completer, nil).Generate(context.Background(), "q", projectSchema, nil)
		assert.True(t, types.HasCode(err, qa.ErrGenerationFailed))
	})
}
