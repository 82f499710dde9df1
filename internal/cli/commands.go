package cmd

import (
	"fmt"
	"time"

	"github.com/rohmanhakim/digester/internal/build"
	"github.com/rohmanhakim/digester/internal/llm"
	"github.com/spf13/cobra"
)

var (
	audioFile         string
	audioDuration     time.Duration
	promptTopic       string
	promptFormat      string
	promptConstraints string
	promptPersona     string
)

var webCmd = &cobra.Command{
	Use:   "web <url>",
	Short: "Fetch one page and print its analysis.",
	Long: `web fetches the page, strips it down to visible text and prints the first
characters of that text followed by the language model's analysis.
A URL without scheme is fetched over https.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			return app.AnalyzeURL(cmd.Context(), args[0])
		})
	},
}

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Record or load audio, transcribe it and print its analysis.",
	Long: `audio records from the default microphone, or reads an existing LINEAR16 WAV
file with --file, transcribes it with Google Cloud Speech-to-Text and prints
the analysis of the transcript.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			path := audioFile
			if path != "" {
				if !fileExists(path) {
					return fmt.Errorf("audio file %s does not exist", path)
				}
			} else {
				duration := audioDuration
				if duration <= 0 {
					duration = app.cfg.RecordDuration()
				}
				recorded, err := app.RecordAudio(cmd.Context(), duration)
				if err != nil {
					return err
				}
				path = recorded
			}
			return app.AnalyzeAudio(cmd.Context(), path)
		})
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Compose a prompt from its parts and print the generated content.",
	Long: `prompt builds a prompt from a topic, a format and optional constraints, sends
it with an optional persona as system instruction and prints the result.
Without --topic and --format it asks for every part interactively.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			if promptTopic == "" && promptFormat == "" {
				return app.PromptInteractive(cmd.Context())
			}
			app.Prompt(cmd.Context(), llm.PromptParam{
				Topic:       promptTopic,
				Format:      promptFormat,
				Constraints: promptConstraints,
				Persona:     promptPersona,
			})
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version.",
	Args:  cobra.NoArgs,
	// no config or env needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.Banner("digester"))
	},
}

func init() {
	audioCmd.Flags().StringVar(&audioFile, "file", "", "existing audio file to transcribe instead of recording")
	audioCmd.Flags().DurationVar(&audioDuration, "duration", 0, "recording length (default from --record-duration)")

	promptCmd.Flags().StringVar(&promptTopic, "topic", "", "topic or main subject")
	promptCmd.Flags().StringVar(&promptFormat, "format", "", "desired output format, e.g. 'a bulleted list'")
	promptCmd.Flags().StringVar(&promptConstraints, "constraints", "", "additional details or constraints")
	promptCmd.Flags().StringVar(&promptPersona, "persona", "", "persona sent as system instruction")
}
