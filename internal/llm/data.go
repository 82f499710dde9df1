package llm

const DefaultModel = "gemini-2.5-flash"

// PromptParam carries the pieces a prompt is composed from.
// Constraints and Persona are optional.
type PromptParam struct {
	Topic       string
	Format      string
	Constraints string
	// Persona is sent as the system instruction, not as part of the prompt.
	Persona string
}

const (
	analysisFormat      = "a detailed analysis in markdown"
	analysisConstraints = "Be direct and specific. Use bullet points for clarity."
	analysisPersona     = "You are a meticulous content analyst and fact-checker."
)

// AnalysisPrompt builds the summarization request used for scraped pages
// and transcripts alike.
func AnalysisPrompt(text string) PromptParam {
	return PromptParam{
		Topic: "Analyze the following text:\n\n" +
			"Create a concise, easy-to-understand summary of the main points and key takeaways.\n\n" +
			"Text to analyze:\n\n" + text,
		Format:      analysisFormat,
		Constraints: analysisConstraints,
		Persona:     analysisPersona,
	}
}
