package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rohmanhakim/digester/internal/config"
	"github.com/rohmanhakim/digester/internal/fetcher"
	"github.com/rohmanhakim/digester/internal/llm"
	"github.com/rohmanhakim/digester/internal/storage"
	"github.com/rohmanhakim/digester/internal/transcriber"
	"github.com/rohmanhakim/digester/pkg/failure"
	"github.com/rohmanhakim/digester/pkg/hashutil"
	"github.com/rohmanhakim/digester/pkg/timeutil"
)

/*
Responsibilities
- Drive the interactive menu and the one-shot subcommands
- Fetch pages, record and transcribe audio, then ask for an analysis
- Print every outcome, including failures, to the user

No failure ends an interactive session; only "3" or end of input does.
*/

const separator = "--------------------------------------------------"

// ErrFetchFailed is returned by one-shot commands whose page could not be
// fetched, after the failure message was printed.
var ErrFetchFailed = errors.New("fetch failed")

// ErrTranscriptionFailed is the audio counterpart of ErrFetchFailed.
var ErrTranscriptionFailed = errors.New("transcription failed")

type Recorder interface {
	Record(ctx context.Context, duration time.Duration, outputDir string) (string, failure.ClassifiedError)
}

type Transcriber interface {
	Transcribe(ctx context.Context, path string) ([]string, failure.ClassifiedError)
}

// Deps are the collaborators an App drives. Reports may be nil, which
// disables report files.
type Deps struct {
	Fetcher     fetcher.Fetcher
	Generator   llm.Generator
	Recorder    Recorder
	Transcriber Transcriber
	Reports     storage.Sink
	Clock       timeutil.Clock
}

type App struct {
	cfg  config.Config
	in   *bufio.Reader
	out  io.Writer
	deps Deps
}

func NewApp(cfg config.Config, in io.Reader, out io.Writer, deps Deps) *App {
	if deps.Clock == nil {
		deps.Clock = timeutil.SystemClock
	}
	return &App{
		cfg:  cfg,
		in:   bufio.NewReader(in),
		out:  out,
		deps: deps,
	}
}

// RunMenu loops over the main menu until the user exits or input ends.
func (a *App) RunMenu(ctx context.Context) error {
	for {
		a.println("\nSelect an option:")
		a.println("1. Analyze website content")
		a.println("2. Transcribe audio file (record or path) and analyze")
		a.println("3. Exit")
		choice, err := a.ask("Enter your choice (1/2/3): ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			err = a.websiteMenu(ctx)
		case "2":
			err = a.audioMenu(ctx)
		case "3":
			a.println("Exiting program. Goodbye!")
			return nil
		default:
			a.println("Invalid choice, please try again.")
		}
		if err != nil {
			return endOfInput(err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (a *App) websiteMenu(ctx context.Context) error {
	a.println("Welcome to the Web Content Analyzer!")
	url, err := a.ask("Please enter the URL of the website you want to analyze: ")
	if err != nil {
		return err
	}
	// a failed fetch was already reported; the menu carries on
	_ = a.AnalyzeURL(ctx, url)
	return nil
}

// AnalyzeURL fetches url, shows the start of its text and prints the
// analysis. A page without visible text counts as a failed scrape.
func (a *App) AnalyzeURL(ctx context.Context, url string) error {
	outcome := a.deps.Fetcher.Fetch(ctx, fetcher.FetchRequest{
		URL:        url,
		MaxRetries: a.cfg.MaxRetries(),
		RetryDelay: a.cfg.RetryDelay(),
	})
	if !outcome.IsSuccess() {
		a.printf("Failed to scrape content. %s\n", outcome.Message())
		return ErrFetchFailed
	}
	if strings.TrimSpace(outcome.Text()) == "" {
		a.println("Failed to scrape content. No text content found on the page.")
		return ErrFetchFailed
	}

	a.println("\n--- Scraped Content (Summary) ---")
	a.println(Truncate(outcome.Text(), a.cfg.DisplayLimit()))
	a.println(separator)

	a.analyze(ctx, storage.Report{
		Kind:           storage.SourceWeb,
		Source:         outcome.URL(),
		Text:           outcome.Text(),
		SourceMarkdown: outcome.Markdown(),
	}, "\n--- LLM Summarization ---")
	return nil
}

func (a *App) audioMenu(ctx context.Context) error {
	a.println("Welcome to the Audio Transcription Service!")
	a.println("Choose an option:")
	a.println("1. Record audio now")
	a.println("2. Provide path to existing audio file")
	choice, err := a.ask("Enter your choice (1/2): ")
	if err != nil {
		return err
	}

	var path string
	switch choice {
	case "1":
		defaultSeconds := int(a.cfg.RecordDuration().Seconds())
		answer, err := a.ask(fmt.Sprintf("Enter recording duration in seconds (default %d): ", defaultSeconds))
		if err != nil {
			return err
		}
		path, err = a.RecordAudio(ctx, ParseDuration(answer, a.cfg.RecordDuration()))
		if err != nil {
			return nil
		}
	case "2":
		path, err = a.ask("Please enter the path to the audio file you want to transcribe: ")
		if err != nil {
			return err
		}
		if !fileExists(path) {
			a.println("File does not exist. Exiting audio analysis.")
			return nil
		}
	default:
		a.println("Invalid choice. Returning to main menu.")
		return nil
	}

	_ = a.AnalyzeAudio(ctx, path)
	return nil
}

// RecordAudio records for duration and returns the written file.
func (a *App) RecordAudio(ctx context.Context, duration time.Duration) (string, error) {
	a.printf("Recording audio for %d seconds...\n", int(duration.Seconds()))
	path, err := a.deps.Recorder.Record(ctx, duration, a.cfg.RecordingsDir())
	if err != nil {
		a.printf("An error occurred during recording: %v\n", err)
		return "", err
	}
	a.printf("Audio recorded and saved to %s\n", path)
	return path, nil
}

// AnalyzeAudio transcribes the file at path and prints the analysis of the
// joined transcript.
func (a *App) AnalyzeAudio(ctx context.Context, path string) error {
	a.println("\nTranscribing audio...\n")
	transcripts, err := a.deps.Transcriber.Transcribe(ctx, path)
	if err != nil {
		a.printf("An error occurred during transcription: %v\n", err)
		return ErrTranscriptionFailed
	}

	a.println("--- Raw Transcription ---")
	for i, text := range transcripts {
		a.printf("Transcript %d: %s\n", i+1, text)
	}
	a.println(separator)

	combined := transcriber.JoinTranscripts(transcripts)
	if strings.TrimSpace(combined) == "" {
		a.println("No transcript text available for LLM processing.")
		return nil
	}

	a.analyze(ctx, storage.Report{
		Kind:   storage.SourceAudio,
		Source: path,
		Text:   combined,
	}, "\n--- LLM Summarization of Transcript ---")
	return nil
}

// analyze asks for the analysis of report.Text and saves the completed
// report when reports are enabled.
func (a *App) analyze(ctx context.Context, report storage.Report, heading string) {
	a.println("\nSending content to the LLM for analysis...\n")
	analysis, err := a.deps.Generator.Generate(ctx, llm.AnalysisPrompt(report.Text))
	a.println(heading)
	if err != nil {
		a.println(errorText(err))
		a.println(separator)
		return
	}
	a.println(analysis)
	a.println(separator)

	report.Analysis = analysis
	report.CreatedAt = a.deps.Clock()
	a.saveReport(report)
}

func (a *App) saveReport(report storage.Report) {
	if a.deps.Reports == nil || a.cfg.ReportDir() == "" {
		return
	}
	result, err := a.deps.Reports.Write(a.cfg.ReportDir(), report, hashutil.HashAlgoBLAKE3)
	if err != nil {
		a.printf("Could not save the report: %v\n", err)
		return
	}
	a.printf("Report saved to %s and %s\n", result.MarkdownPath(), result.HTMLPath())
}

// Prompt sends a free-form prompt and prints what comes back.
func (a *App) Prompt(ctx context.Context, param llm.PromptParam) {
	a.println("\nDrafting an effective prompt based on your input...\n")
	text := llm.Render(ctx, a.deps.Generator, param)
	a.println(separator)
	a.println("Generated Content:")
	a.println(text)
	a.println(separator)
}

// PromptInteractive asks for the prompt pieces one by one, then runs Prompt.
func (a *App) PromptInteractive(ctx context.Context) error {
	a.println("Welcome to the LLM Prompt Generator!")
	a.println("Let's build an effective prompt by gathering some details.\n")

	questions := []string{
		"1. Persona (e.g., 'Act as a professional copywriter'): ",
		"2. Topic/Main Subject (e.g., 'the benefits of gardening'): ",
		"3. Format (e.g., 'a short blog post', 'a bulleted list'): ",
		"4. Additional details/constraints (e.g., 'use simple language'): ",
	}
	answers := make([]string, len(questions))
	for i, q := range questions {
		answer, err := a.ask(q)
		if err != nil {
			return endOfInput(err)
		}
		answers[i] = answer
	}

	a.Prompt(ctx, llm.PromptParam{
		Persona:     answers[0],
		Topic:       answers[1],
		Format:      answers[2],
		Constraints: answers[3],
	})
	return nil
}

// ask prints prompt and returns the next input line without surrounding
// whitespace. A final line without newline is still returned.
func (a *App) ask(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func errorText(err failure.ClassifiedError) string {
	var llmErr *llm.LLMError
	if errors.As(err, &llmErr) {
		return llmErr.Message
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err)
}
