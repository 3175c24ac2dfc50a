package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
)

type fakeEngine struct {
	questions []string
	providers []string
	outcome   *qa.Outcome
	err       error
}

func (f *fakeEngine) Answer(ctx context.Context, question string, includeQuery bool, provider string) (*qa.Outcome, error) {
	f.questions = append(f.questions, question)
	f.providers = append(f.providers, provider)
	if f.err != nil {
		return nil, f.err
	}
	out := *f.outcome
	out.Question = question
	return &out, nil
}

func (f *fakeEngine) DefaultProvider() string { return "openai" }
func (f *fakeEngine) Providers() []string     { return []string{"groq", "openai"} }

func answered() *qa.Outcome {
	return &qa.Outcome{
		Answer:   "There are two active projects: AI Chatbot and Data Pipeline.",
		Query:    "MATCH (p:Project {status: 'active'}) RETURN p.name",
		Attempts: 1,
		Status:   qa.StatusAnswered,
		Duration: 1500 * time.Millisecond,
	}
}

func newTestSession(engine *fakeEngine, format internal.OutputFormat) (*session, *bytes.Buffer) {
	internal.DisableColor()
	buf := &bytes.Buffer{}
	return &session{
		engine:   engine,
		out:      internal.NewFormatter(format, buf),
		w:        buf,
		neo4jURI: "bolt://localhost:7687",
	}, buf
}

func TestSession_REPL(t *testing.T) {
	engine := &fakeEngine{outcome: answered()}
	s, buf := newTestSession(engine, internal.FormatText)

	input := strings.Join([]string{
		"",
		"Show me all active projects",
		"info",
		"debug",
		"Show me all active projects",
		"help",
		"quit",
		"never asked",
	}, "\n")

	require.NoError(t, s.repl(context.Background(), strings.NewReader(input), false))

	assert.Equal(t, []string{"Show me all active projects", "Show me all active projects"}, engine.questions)

	out := buf.String()
	assert.Contains(t, out, "There are two active projects")
	assert.Contains(t, out, "Provider:  openai")
	assert.Contains(t, out, "Available: groq, openai")
	assert.Contains(t, out, "Debug output on")
	assert.Equal(t, 1, strings.Count(out, "Cypher: MATCH"))
	assert.Contains(t, out, "Attempts: 1")
	assert.Contains(t, out, "Commands:")
}

func TestSession_ErrorsDoNotEndSession(t *testing.T) {
	engine := &fakeEngine{err: errors.New("provider bard not found")}
	s, buf := newTestSession(engine, internal.FormatText)

	require.NoError(t, s.repl(context.Background(), strings.NewReader("first\nsecond\n"), false))
	assert.Len(t, engine.questions, 2)
	assert.Equal(t, 2, strings.Count(buf.String(), "provider bard not found"))
}

func TestSession_FailedOutcome(t *testing.T) {
	engine := &fakeEngine{outcome: &qa.Outcome{
		Answer:   "I couldn't answer that: none of the generated queries ran successfully.",
		Attempts: 3,
		Status:   qa.StatusFailed,
	}}
	s, buf := newTestSession(engine, internal.FormatText)

	out, err := s.ask(context.Background(), "Who is the CEO?")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✗ I couldn't answer that")

	var cliErr *internal.CLIError
	require.ErrorAs(t, exitForOutcome(out), &cliErr)
	assert.Equal(t, internal.ExitNoAnswer, cliErr.Code)
}

func TestSession_DebugShowsStatusLabel(t *testing.T) {
	engine := &fakeEngine{outcome: &qa.Outcome{
		Answer:   "The graph store is not reachable right now.",
		Attempts: 0,
		Status:   qa.StatusStoreUnavailable,
	}}
	s, buf := newTestSession(engine, internal.FormatText)
	s.debug = true

	_, err := s.ask(context.Background(), "Show me all active projects")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Status: Store Unavailable")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Answered", statusLabel(qa.StatusAnswered))
	assert.Equal(t, "No Results", statusLabel(qa.StatusNoResults))
}

func TestSession_JSONHidesQueryUnlessDebug(t *testing.T) {
	engine := &fakeEngine{outcome: answered()}
	s, buf := newTestSession(engine, internal.FormatJSON)

	_, err := s.ask(context.Background(), "Show me all active projects")
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "cypher_query")
	assert.Contains(t, buf.String(), `"status": "answered"`)

	buf.Reset()
	s.debug = true
	_, err = s.ask(context.Background(), "Show me all active projects")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "cypher_query")
}

func TestExitForOutcome(t *testing.T) {
	assert.NoError(t, exitForOutcome(&qa.Outcome{Status: qa.StatusAnswered}))
	assert.NoError(t, exitForOutcome(&qa.Outcome{Status: qa.StatusNoResults}))

	var cliErr *internal.CLIError
	require.ErrorAs(t, exitForOutcome(&qa.Outcome{Status: qa.StatusStoreUnavailable}), &cliErr)
	assert.Equal(t, internal.ExitStoreError, cliErr.Code)
}
