package executor

import (
	"regexp"
	"strings"
)

var (
	// Keywords are matched outside of labels and property access, so (:Set) or n.delete are fine.
	mutatingClause = regexp.MustCompile(`(?i)(?:^|[^:.\w$])(CREATE|MERGE|DELETE|DETACH|SET|REMOVE|DROP|FOREACH|GRANT|REVOKE|DENY|ALTER|RENAME)\b`)
	loadCSV        = regexp.MustCompile(`(?i)\bLOAD\s+CSV\b`)
	inTransactions = regexp.MustCompile(`(?i)\bIN\s+TRANSACTIONS\b`)
	writeProcedure = regexp.MustCompile(`(?i)\bCALL\s+(apoc\.(create|merge|refactor|periodic|do|nodes\.delete|atomic|trigger|schema\.assert|load|import|export)|dbms\.security|db\.create)\b`)

	// One alternation so the leftmost token wins: a /* inside a string is
	// part of the string, and a quote inside a comment is part of the comment.
	nonCode = regexp.MustCompile(`'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"|` +
		"`(?:[^`]|``)*`" +
		`|//[^\n]*|(?s:/\*.*?\*/)`)
)

// CheckReadOnly returns a description of the first mutating construct in
// cypher, or "" if the statement only reads. String literals, quoted names and
// comments are ignored.
func CheckReadOnly(cypher string) string {
	stripped := stripNonCode(cypher)

	if m := mutatingClause.FindStringSubmatch(stripped); m != nil {
		return "write clause " + strings.ToUpper(m[1])
	}
	if loadCSV.MatchString(stripped) {
		return "LOAD CSV"
	}
	if inTransactions.MatchString(stripped) {
		return "CALL IN TRANSACTIONS"
	}
	if m := writeProcedure.FindStringSubmatch(stripped); m != nil {
		return "write procedure " + m[1]
	}
	return ""
}

func stripNonCode(cypher string) string {
	return nonCode.ReplaceAllStringFunc(cypher, func(tok string) string {
		switch tok[0] {
		case '\'', '"':
			return "''"
		case '`':
			return "``"
		default:
			return " "
		}
	})
}
