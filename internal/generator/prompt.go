package generator

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
)

const cypherTemplate = `Task: Generate a Cypher statement to query a graph database.
Instructions:
Use only the provided node labels, relationship types and properties in the schema.
Do not use any other relationship types or properties that are not provided.
Only read from the graph. Never use CREATE, MERGE, DELETE, DETACH, SET, REMOVE, DROP or LOAD CSV.
Schema:
{{ .Schema }}
{{- if .Failures }}

Earlier queries for this question failed:
{{- range .Failures }}
Attempt {{ .Attempt }}:
{{ indent .Query }}
Error: {{ .Message }}
{{- end }}

The most recent query was:
{{ indent .Last.Query }}
It failed with this error:
{{ .Last.Message }}
Write a corrected query that avoids this error.
{{- end }}

Note: Do not include any explanations or apologies in your responses.
Do not respond to any questions that might ask anything else than for you to construct a Cypher statement.
Do not include any text except the generated Cypher statement.

The question is:
{{ .Question }}
`

var promptTemplate = template.Must(template.New("cypher").Funcs(template.FuncMap{
	"indent": indent,
}).Parse(cypherTemplate))

type failureView struct {
	Attempt int
	Query   string
	Message string
}

type promptData struct {
	Schema   string
	Question string
	Failures []failureView
	Last     failureView
}

// BuildPrompt renders the generation prompt. When prior is not empty, every
// failed attempt is listed and the most recent failure's error message is
// repeated verbatim.
func BuildPrompt(question string, desc *schema.Description, prior []qa.Attempt) (string, error) {
	data := promptData{
		Schema:   desc.String(),
		Question: strings.TrimSpace(question),
	}

	for _, attempt := range prior {
		failure := attempt.Result.Failure()
		if failure == nil {
			continue
		}
		data.Failures = append(data.Failures, failureView{
			Attempt: attempt.Query.Attempt,
			Query:   attempt.Query.Text,
			Message: failure.Message,
		})
	}
	if n := len(data.Failures); n > 0 {
		data.Last = data.Failures[n-1]
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
