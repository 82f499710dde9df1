package llm_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/digester/internal/llm"
	"github.com/stretchr/testify/assert"
)

const instruction = "Please generate content based on the above information. With strict adherence to the format and constraints. without addition of the prefix suffix things like 'As an AI language model' or 'Here is the content you requested'. And dont add the Misinformation detection part if not asked specifically.\n\n"

func TestComposePrompt(t *testing.T) {
	tests := []struct {
		name  string
		param llm.PromptParam
		want  string
	}{
		{
			name:  "with constraints",
			param: llm.PromptParam{Topic: "gardening", Format: "a short blog post", Constraints: "use simple language"},
			want:  "Topic: gardening\nFormat: a short blog post\nConstraints: use simple language\n\n" + instruction,
		},
		{
			name:  "without constraints",
			param: llm.PromptParam{Topic: "gardening", Format: "a list"},
			want:  "Topic: gardening\nFormat: a list\n" + instruction,
		},
		{
			name:  "persona is not part of the prompt",
			param: llm.PromptParam{Topic: "x", Format: "y", Persona: "Act as a copywriter"},
			want:  "Topic: x\nFormat: y\n" + instruction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.ComposePrompt(tt.param))
		})
	}
}

func TestAnalysisPrompt(t *testing.T) {
	param := llm.AnalysisPrompt("Hello\nWorld")

	assert.True(t, strings.HasPrefix(param.Topic, "Analyze the following text:\n\n"))
	assert.True(t, strings.HasSuffix(param.Topic, "Text to analyze:\n\nHello\nWorld"))
	assert.Contains(t, param.Topic, "key takeaways")
	assert.Equal(t, "a detailed analysis in markdown", param.Format)
	assert.Equal(t, "Be direct and specific. Use bullet points for clarity.", param.Constraints)
	assert.Equal(t, "You are a meticulous content analyst and fact-checker.", param.Persona)
}
