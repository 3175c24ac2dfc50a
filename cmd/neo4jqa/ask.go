package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
)

var (
	askProvider   string
	askShowCypher bool
)

var titleCaser = cases.Title(language.English)

// statusLabel renders an outcome status for people: store_unavailable becomes "Store Unavailable".
func statusLabel(status qa.Status) string {
	return titleCaser.String(strings.ReplaceAll(string(status), "_", " "))
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question, or start an interactive session without one",
	Long: `Ask a question about the graph and print the answer.

Without a question, ask reads questions line by line: interactively with a
prompt when stdin is a terminal, or from a pipe otherwise. In a session,
type 'help' for the available commands.`,
	Example: `  neo4jqa ask "Show me all active projects"
  neo4jqa ask --cypher "Who worked on the AI Chatbot project?"
  neo4jqa ask`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askProvider, "provider", "", "Language model provider to use (default: llm.default_provider)")
	askCmd.Flags().BoolVar(&askShowCypher, "cypher", false, "Show the generated Cypher query")
}

// answerer is the part of the engine a session needs.
type answerer interface {
	Answer(ctx context.Context, question string, includeQuery bool, provider string) (*qa.Outcome, error)
	DefaultProvider() string
	Providers() []string
}

// session answers questions and prints the outcomes.
type session struct {
	engine    answerer
	out       internal.Formatter
	w         io.Writer
	provider  string
	debug     bool
	neo4jURI  string
	showTitle bool
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appConfig, appOptions{withEngine: true})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	s := &session{
		engine:   a.engine,
		out:      formatter(cmd),
		w:        cmd.OutOrStdout(),
		provider: askProvider,
		debug:    askShowCypher,
		neo4jURI: appConfig.Neo4j.URI,
	}

	if len(args) > 0 {
		out, err := s.ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return exitForOutcome(out)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	s.showTitle = interactive && !globalFlags.IsQuiet()
	return s.repl(ctx, cmd.InOrStdin(), interactive)
}

// ask answers one question and prints the outcome.
func (s *session) ask(ctx context.Context, question string) (*qa.Outcome, error) {
	out, err := s.engine.Answer(ctx, question, true, s.provider)
	if err != nil {
		return nil, err
	}
	return out, s.print(out)
}

func (s *session) print(out *qa.Outcome) error {
	if _, ok := s.out.(*internal.JSONFormatter); ok {
		if !s.debug {
			trimmed := *out
			trimmed.Query = ""
			trimmed.History = nil
			out = &trimmed
		}
		return s.out.PrintJSON(out)
	}

	if out.Status.Succeeded() {
		fmt.Fprintln(s.w, out.Answer)
	} else {
		_ = s.out.PrintError(out.Answer)
	}

	if s.debug {
		if out.Query != "" {
			fmt.Fprintln(s.w, internal.Dim("Cypher: "+out.Query))
		}
		fmt.Fprintln(s.w, internal.Dim(fmt.Sprintf("Attempts: %d  Status: %s  Time: %s",
			out.Attempts, statusLabel(out.Status), out.Duration.Round(time.Millisecond))))
		for _, attempt := range out.History {
			if f := attempt.Result.Failure(); f != nil {
				fmt.Fprintln(s.w, internal.Dim(fmt.Sprintf("  attempt %d failed (%s): %s",
					attempt.Query.Attempt, f.Category, f.Message)))
			}
		}
	}
	return nil
}

// repl reads questions from in until EOF or quit.
func (s *session) repl(ctx context.Context, in io.Reader, prompt bool) error {
	if s.showTitle {
		_ = s.out.PrintHeading("neo4jqa interactive session")
		fmt.Fprintln(s.w, "Ask a question about the graph, or type 'help'.")
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(s.w, internal.Highlight("❯ "))
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			s.printHelp()
			continue
		case "info":
			s.printInfo()
			continue
		case "debug":
			s.debug = !s.debug
			state := "off"
			if s.debug {
				state = "on"
			}
			fmt.Fprintf(s.w, "Debug output %s\n", state)
			continue
		case "examples":
			for i, q := range qa.Samples() {
				fmt.Fprintf(s.w, "%d. %s\n", i+1, q)
			}
			continue
		}

		if _, err := s.ask(ctx, line); err != nil {
			_ = s.out.PrintError(err.Error())
		}
	}
	return scanner.Err()
}

func (s *session) printHelp() {
	fmt.Fprintln(s.w, `Commands:
  help       show this help
  info       show the provider and database in use
  debug      toggle showing the Cypher query and attempts
  examples   list sample questions
  quit       leave the session
Anything else is asked as a question.`)
}

func (s *session) printInfo() {
	provider := s.provider
	if provider == "" {
		provider = s.engine.DefaultProvider()
	}
	fmt.Fprintf(s.w, "Provider:  %s\n", provider)
	fmt.Fprintf(s.w, "Available: %s\n", strings.Join(s.engine.Providers(), ", "))
	fmt.Fprintf(s.w, "Neo4j:     %s\n", s.neo4jURI)
	fmt.Fprintf(s.w, "Debug:     %t\n", s.debug)
}

// exitForOutcome turns an unanswered question into a non-zero exit.
func exitForOutcome(out *qa.Outcome) error {
	switch out.Status {
	case qa.StatusStoreUnavailable:
		return internal.NewCLIError(internal.ExitStoreError, "the graph database is unavailable")
	case qa.StatusFailed:
		return internal.NewCLIError(internal.ExitNoAnswer, "the question could not be answered")
	default:
		return nil
	}
}
