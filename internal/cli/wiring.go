package cmd

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rohmanhakim/digester/internal/config"
	"github.com/rohmanhakim/digester/internal/fetcher"
	"github.com/rohmanhakim/digester/internal/llm"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/internal/recorder"
	"github.com/rohmanhakim/digester/internal/recorder/mic"
	"github.com/rohmanhakim/digester/internal/storage"
	"github.com/rohmanhakim/digester/internal/transcriber"
	"github.com/rohmanhakim/digester/pkg/timeutil"
)

// NewRuntimeApp wires the production collaborators: the HTTP page fetcher,
// Gemini, the default microphone and Cloud Speech. Diagnostics go to errOut
// as zerolog events tagged with a fresh session id.
func NewRuntimeApp(
	ctx context.Context,
	cfg config.Config,
	in io.Reader,
	out io.Writer,
	errOut io.Writer,
) (*App, error) {
	logger, err := metadata.NewLogger(errOut, cfg.LogLevel())
	if err != nil {
		return nil, err
	}
	sessionRecorder := metadata.NewRecorder(logger, uuid.NewString())
	sink := &sessionRecorder

	pageFetcher := fetcher.NewPageFetcher(sink, timeutil.RealSleeper{}, cfg.UserAgent(), cfg.Timeout())

	generator, err := llm.NewGeminiClient(ctx, sink, cfg.GeminiAPIKey(), cfg.GeminiModel(), "")
	if err != nil {
		return nil, err
	}

	audioRecorder := recorder.NewRecorder(sink, mic.New(), cfg.SampleRate(), timeutil.SystemClock)
	speechTranscriber := transcriber.NewSpeechTranscriber(sink, transcriber.GoogleRecognizer, cfg.LanguageCode(), cfg.SampleRate())

	deps := Deps{
		Fetcher:     &pageFetcher,
		Generator:   generator,
		Recorder:    &audioRecorder,
		Transcriber: &speechTranscriber,
		Clock:       timeutil.SystemClock,
	}
	if cfg.ReportDir() != "" {
		reportSink := storage.NewLocalSink(sink)
		deps.Reports = &reportSink
	}

	logger.Debug().
		Str("session_id", sessionRecorder.SessionID()).
		Str("model", generator.Model()).
		Bool("reports", deps.Reports != nil).
		Msg("session started")

	return NewApp(cfg, in, out, deps), nil
}
