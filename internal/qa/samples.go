package qa

// SampleQuestions are questions the built-in sample dataset can answer.
var SampleQuestions = []string{
	"Which projects use Python and who worked on them?",
	"What technologies does Alice Johnson work with?",
	"Show me all active projects",
	"Who worked on the AI Chatbot project?",
	"What programming languages are used across all projects?",
	"Which person has worked on the most projects?",
	"What projects use React?",
	"List all people who are Full Stack Developers",
}

// Samples returns a copy of SampleQuestions.
func Samples() []string {
	out := make([]string, len(SampleQuestions))
	copy(out, SampleQuestions)
	return out
}
