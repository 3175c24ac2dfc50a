// Package company answers the fixed questions of the company knowledge base
// (who works where, who knows what, who is on which project) with
// parameterized read queries. Unlike the question-answering pipeline no
// language model is involved.
package company
