package llm

import "strings"

const promptInstruction = "Please generate content based on the above information. " +
	"With strict adherence to the format and constraints. " +
	"without addition of the prefix suffix things like 'As an AI language model' or 'Here is the content you requested'. " +
	"And dont add the Misinformation detection part if not asked specifically.\n\n"

// ComposePrompt renders the user prompt. The constraints line, with its
// trailing blank line, is left out entirely when no constraints are given.
func ComposePrompt(param PromptParam) string {
	var b strings.Builder
	b.WriteString("Topic: ")
	b.WriteString(param.Topic)
	b.WriteString("\nFormat: ")
	b.WriteString(param.Format)
	b.WriteString("\n")
	if param.Constraints != "" {
		b.WriteString("Constraints: ")
		b.WriteString(param.Constraints)
		b.WriteString("\n\n")
	}
	b.WriteString(promptInstruction)
	return b.String()
}
