package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
	"google.golang.org/genai"
)

/*
Responsibilities
- Compose the prompt from a PromptParam
- Send it to Gemini with the persona as system instruction
- Pull the generated text out of the first candidate

A missing API key is not a construction error. The client is still usable
and reports the problem on every Generate call, so that callers can do their
non-LLM work first.
*/

// Generator is what the rest of the program needs from a language model.
type Generator interface {
	Generate(ctx context.Context, param PromptParam) (string, failure.ClassifiedError)
}

// ContentGenerator is the slice of genai.Models used here.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	metadataSink metadata.MetadataSink
	models       ContentGenerator
	model        string
}

// NewGeminiClient connects to the Gemini API. An empty baseURL keeps the
// SDK default endpoint.
func NewGeminiClient(
	ctx context.Context,
	metadataSink metadata.MetadataSink,
	apiKey string,
	model string,
	baseURL string,
) (*GeminiClient, error) {
	if apiKey == "" {
		return NewGeminiClientWithGenerator(metadataSink, nil, model), nil
	}

	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{
			BaseURL: baseURL,
		}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, &LLMError{
			Message:   fmt.Sprintf("failed to create Gemini client: %v", err),
			Retryable: false,
			Cause:     ErrCauseClientInit,
		}
	}

	return NewGeminiClientWithGenerator(metadataSink, client.Models, model), nil
}

// NewGeminiClientWithGenerator wires an existing generator. A nil generator
// behaves like a client without an API key.
func NewGeminiClientWithGenerator(
	metadataSink metadata.MetadataSink,
	models ContentGenerator,
	model string,
) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{
		metadataSink: metadataSink,
		models:       models,
		model:        model,
	}
}

func (g *GeminiClient) Model() string {
	return g.model
}

func (g *GeminiClient) Generate(ctx context.Context, param PromptParam) (string, failure.ClassifiedError) {
	if g.models == nil {
		err := &LLMError{
			Message:   "Error: GEMINI_API_KEY environment variable not set. Please set it before running the script.",
			Retryable: false,
			Cause:     ErrCauseMissingAPIKey,
		}
		g.recordError(err)
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(ComposePrompt(param), genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{}
	if param.Persona != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: param.Persona}},
		}
	}

	startTime := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	g.metadataSink.RecordCall(
		"gemini",
		"GenerateContent",
		time.Since(startTime),
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrModel, g.model)},
	)
	if err != nil {
		llmErr := &LLMError{
			Message:   fmt.Sprintf("An error occurred with the API request: %v", err),
			Retryable: true,
			Cause:     ErrCauseRequest,
		}
		g.recordError(llmErr)
		return "", llmErr
	}

	text, ok := firstCandidateText(resp)
	if !ok {
		llmErr := &LLMError{
			Message:   "Could not parse the API response: no candidate content returned.",
			Retryable: false,
			Cause:     ErrCauseBadResponse,
		}
		g.recordError(llmErr)
		return "", llmErr
	}

	return text, nil
}

// firstCandidateText joins the text parts of the first candidate.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", false
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String(), true
}

func (g *GeminiClient) recordError(err *LLMError) {
	g.metadataSink.RecordError(
		time.Now(),
		"llm",
		"GeminiClient.Generate",
		mapLLMErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrModel, g.model),
		},
	)
}

// Render runs the generator and returns either the generated text or a
// printable error message. It never fails.
func Render(ctx context.Context, generator Generator, param PromptParam) string {
	text, err := generator.Generate(ctx, param)
	if err == nil {
		return text
	}
	if llmErr, ok := err.(*LLMError); ok {
		return llmErr.Message
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}
