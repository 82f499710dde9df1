package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rohmanhakim/digester/pkg/fileutil"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//===============
	// Fetch
	//===============
	// Total number of attempts for one page, including the first
	maxRetries int
	// Fixed waiting time between two attempts
	retryDelay time.Duration
	// Maximum time of a single fetch request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Language model
	//===============
	geminiModel string
	// Never read from a config file; comes from GEMINI_API_KEY
	geminiAPIKey string

	//===============
	// Audio
	//===============
	// Directory in which new recordings are written
	recordingsDir string
	// Recording length used when the user gives none
	recordDuration time.Duration
	// Capture and recognition sample rate in Hz
	sampleRate int
	// BCP-47 language of the spoken audio
	languageCode string

	//===============
	// Output
	//===============
	// How many characters of scraped text are echoed before the analysis
	displayLimit int
	// Where analysis reports are stored. Empty disables reports
	reportDir string
	// zerolog level name for the diagnostic log on stderr
	logLevel string
}

type configDTO struct {
	MaxRetries     int           `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty"`
	RetryDelay     time.Duration `json:"retryDelay,omitempty" yaml:"retryDelay,omitempty"`
	Timeout        time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent      string        `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	GeminiModel    string        `json:"geminiModel,omitempty" yaml:"geminiModel,omitempty"`
	RecordingsDir  string        `json:"recordingsDir,omitempty" yaml:"recordingsDir,omitempty"`
	RecordDuration time.Duration `json:"recordDuration,omitempty" yaml:"recordDuration,omitempty"`
	SampleRate     int           `json:"sampleRate,omitempty" yaml:"sampleRate,omitempty"`
	LanguageCode   string        `json:"languageCode,omitempty" yaml:"languageCode,omitempty"`
	DisplayLimit   int           `json:"displayLimit,omitempty" yaml:"displayLimit,omitempty"`
	ReportDir      string        `json:"reportDir,omitempty" yaml:"reportDir,omitempty"`
	LogLevel       string        `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// Only override if non-zero value is provided
	if dto.MaxRetries != 0 {
		cfg.maxRetries = dto.MaxRetries
	}
	if dto.RetryDelay != 0 {
		cfg.retryDelay = dto.RetryDelay
	}
	if dto.Timeout != 0 {
		cfg.timeout = dto.Timeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.GeminiModel != "" {
		cfg.geminiModel = dto.GeminiModel
	}
	if dto.RecordingsDir != "" {
		cfg.recordingsDir = dto.RecordingsDir
	}
	if dto.RecordDuration != 0 {
		cfg.recordDuration = dto.RecordDuration
	}
	if dto.SampleRate != 0 {
		cfg.sampleRate = dto.SampleRate
	}
	if dto.LanguageCode != "" {
		cfg.languageCode = dto.LanguageCode
	}
	if dto.DisplayLimit != 0 {
		cfg.displayLimit = dto.DisplayLimit
	}
	// An empty reportDir is meaningful (reports off), so the file value always wins
	cfg.reportDir = dto.ReportDir
	if dto.LogLevel != "" {
		cfg.logLevel = dto.LogLevel
	}

	return cfg.Build()
}

// WithConfigFile loads a JSON file, or a YAML file when the extension is
// .yaml or .yml. Durations are nanoseconds in JSON and Go duration strings
// such as "5s" in YAML.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	switch strings.ToLower(fileutil.GetFileExtension(path)) {
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config holding the default value of every field.
func WithDefault() *Config {
	defaultConfig := Config{
		maxRetries:     3,
		retryDelay:     5 * time.Second,
		timeout:        10 * time.Second,
		userAgent:      DefaultUserAgent,
		geminiModel:    "gemini-2.5-flash",
		geminiAPIKey:   "",
		recordingsDir:  "resources/audio_recordings",
		recordDuration: 5 * time.Second,
		sampleRate:     16000,
		languageCode:   "en-US",
		displayLimit:   500,
		reportDir:      "",
		logLevel:       "info",
	}
	return &defaultConfig
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func (c *Config) WithMaxRetries(maxRetries int) *Config {
	c.maxRetries = maxRetries
	return c
}

func (c *Config) WithRetryDelay(delay time.Duration) *Config {
	c.retryDelay = delay
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithGeminiModel(model string) *Config {
	c.geminiModel = model
	return c
}

func (c *Config) WithGeminiAPIKey(key string) *Config {
	c.geminiAPIKey = key
	return c
}

func (c *Config) WithRecordingsDir(dir string) *Config {
	c.recordingsDir = dir
	return c
}

func (c *Config) WithRecordDuration(duration time.Duration) *Config {
	c.recordDuration = duration
	return c
}

func (c *Config) WithSampleRate(rate int) *Config {
	c.sampleRate = rate
	return c
}

func (c *Config) WithLanguageCode(code string) *Config {
	c.languageCode = code
	return c
}

func (c *Config) WithDisplayLimit(limit int) *Config {
	c.displayLimit = limit
	return c
}

func (c *Config) WithReportDir(dir string) *Config {
	c.reportDir = dir
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if c.maxRetries < 1 {
		return Config{}, fmt.Errorf("%w: maxRetries must be at least 1, got %d", ErrInvalidConfig, c.maxRetries)
	}
	if c.retryDelay < 0 {
		return Config{}, fmt.Errorf("%w: retryDelay cannot be negative", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.recordDuration <= 0 {
		return Config{}, fmt.Errorf("%w: recordDuration must be positive", ErrInvalidConfig)
	}
	if c.sampleRate <= 0 {
		return Config{}, fmt.Errorf("%w: sampleRate must be positive, got %d", ErrInvalidConfig, c.sampleRate)
	}
	if c.displayLimit < 0 {
		return Config{}, fmt.Errorf("%w: displayLimit cannot be negative", ErrInvalidConfig)
	}
	if c.recordingsDir == "" {
		return Config{}, fmt.Errorf("%w: recordingsDir cannot be empty", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.logLevel); err != nil {
		return Config{}, fmt.Errorf("%w: logLevel: %s", ErrInvalidConfig, err.Error())
	}

	return *c, nil
}

func (c Config) MaxRetries() int {
	return c.maxRetries
}

func (c Config) RetryDelay() time.Duration {
	return c.retryDelay
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) GeminiModel() string {
	return c.geminiModel
}

func (c Config) GeminiAPIKey() string {
	return c.geminiAPIKey
}

func (c Config) RecordingsDir() string {
	return c.recordingsDir
}

func (c Config) RecordDuration() time.Duration {
	return c.recordDuration
}

func (c Config) SampleRate() int {
	return c.sampleRate
}

func (c Config) LanguageCode() string {
	return c.languageCode
}

func (c Config) DisplayLimit() int {
	return c.displayLimit
}

func (c Config) ReportDir() string {
	return c.reportDir
}

func (c Config) LogLevel() string {
	return c.logLevel
}
