package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohmanhakim/digester/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfgFile        string
	envFile        string
	maxRetries     int
	retryDelay     time.Duration
	timeout        time.Duration
	userAgent      string
	geminiModel    string
	recordingsDir  string
	recordDuration time.Duration
	sampleRate     int
	languageCode   string
	displayLimit   int
	reportDir      string
	logLevel       string
)

// AppFactory builds the App a command runs against.
type AppFactory func(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, errOut io.Writer) (*App, error)

var appFactory AppFactory = NewRuntimeApp

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "digester",
	Short: "Summarize web pages and spoken audio with a language model.",
	Long: `digester fetches a web page or records and transcribes audio, then asks
Gemini for a concise analysis of the text.

Run it without a subcommand for the interactive menu, or use the web, audio
and prompt subcommands for one-shot runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			return app.RunMenu(cmd.Context())
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := ExecuteArgs(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// ExecuteArgs runs the command tree on args with the given streams.
func ExecuteArgs(ctx context.Context, args []string, in io.Reader, out io.Writer, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., /home/myuser/digester.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file holding GEMINI_API_KEY and GOOGLE_APPLICATION_CREDENTIALS")
	rootCmd.PersistentFlags().IntVar(&maxRetries, "max-retries", 0, "total fetch attempts per page (default 3)")
	rootCmd.PersistentFlags().DurationVar(&retryDelay, "retry-delay", 0, "fixed wait between fetch attempts (default 5s)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for one HTTP request (default 10s)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&geminiModel, "model", "", "Gemini model name (default gemini-2.5-flash)")
	rootCmd.PersistentFlags().StringVar(&recordingsDir, "recordings-dir", "", "directory for new recordings (default resources/audio_recordings)")
	rootCmd.PersistentFlags().DurationVar(&recordDuration, "record-duration", 0, "default recording length (default 5s)")
	rootCmd.PersistentFlags().IntVar(&sampleRate, "sample-rate", 0, "recording and recognition sample rate in Hz (default 16000)")
	rootCmd.PersistentFlags().StringVar(&languageCode, "language", "", "language of the spoken audio (default en-US)")
	rootCmd.PersistentFlags().IntVar(&displayLimit, "display-limit", 0, "characters of scraped text to echo (default 500)")
	rootCmd.PersistentFlags().StringVar(&reportDir, "report-dir", "", "write Markdown and HTML reports to this directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level on stderr (default info)")

	rootCmd.AddCommand(webCmd, audioCmd, promptCmd, versionCmd)
}

// loadEnvFile exports the variables of path that are not already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

func withApp(cmd *cobra.Command, run func(app *App) error) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}
	app, err := appFactory(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return run(app)
}

// InitConfigWithError reads in config file and ENV variables if set, returning any errors.
// Flags override values from the config file; GEMINI_API_KEY always comes
// from the environment.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = &cfg
	}

	// Override with CLI flag values where provided
	if maxRetries > 0 {
		configBuilder = configBuilder.WithMaxRetries(maxRetries)
	}

	// Zero is a valid delay, so only an explicitly set flag overrides.
	if rootCmd.PersistentFlags().Changed("retry-delay") {
		configBuilder = configBuilder.WithRetryDelay(retryDelay)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if geminiModel != "" {
		configBuilder = configBuilder.WithGeminiModel(geminiModel)
	}

	if recordingsDir != "" {
		configBuilder = configBuilder.WithRecordingsDir(recordingsDir)
	}

	if recordDuration > 0 {
		configBuilder = configBuilder.WithRecordDuration(recordDuration)
	}

	if sampleRate > 0 {
		configBuilder = configBuilder.WithSampleRate(sampleRate)
	}

	if languageCode != "" {
		configBuilder = configBuilder.WithLanguageCode(languageCode)
	}

	if displayLimit > 0 {
		configBuilder = configBuilder.WithDisplayLimit(displayLimit)
	}

	if reportDir != "" {
		configBuilder = configBuilder.WithReportDir(reportDir)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	configBuilder = configBuilder.WithGeminiAPIKey(os.Getenv("GEMINI_API_KEY"))

	return configBuilder.Build()
}

func ResetFlags() {
	cfgFile = ""
	envFile = ""
	maxRetries = 0
	retryDelay = 0
	timeout = 0
	userAgent = ""
	geminiModel = ""
	recordingsDir = ""
	recordDuration = 0
	sampleRate = 0
	languageCode = ""
	displayLimit = 0
	reportDir = ""
	logLevel = ""
	audioFile = ""
	audioDuration = 0
	promptTopic = ""
	promptFormat = ""
	promptConstraints = ""
	promptPersona = ""
	appFactory = NewRuntimeApp
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetEnvFileForTest(path string) {
	envFile = path
}

func SetMaxRetriesForTest(retries int) {
	maxRetries = retries
}

func SetRetryDelayForTest(delay time.Duration) {
	_ = rootCmd.PersistentFlags().Set("retry-delay", delay.String())
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetModelForTest(model string) {
	geminiModel = model
}

func SetRecordDurationForTest(d time.Duration) {
	recordDuration = d
}

func SetLanguageForTest(code string) {
	languageCode = code
}

func SetDisplayLimitForTest(limit int) {
	displayLimit = limit
}

func SetReportDirForTest(dir string) {
	reportDir = dir
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

func SetAppFactoryForTest(factory AppFactory) {
	appFactory = factory
}
