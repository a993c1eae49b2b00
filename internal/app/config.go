package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Default configuration values
const (
	DefaultDataSource        = "film.json"
	DefaultCredentialsFile   = "credentials.json"
	DefaultReportFile        = "film_report.json"
	DefaultLogFile           = "film_stats.log"
	DefaultDeployKeyFile     = "deploy.pem"
	DefaultCollationLanguage = "en"
	DefaultTopN              = 10
)

// Config holds application configuration
type Config struct {
	DataSource        string
	SpreadsheetID     string
	CredentialsFile   string
	DeployURL         string
	DeployKeyFile     string
	KnownHostsFile    string
	ReportFile        string
	LogFile           string
	CollationLanguage language.Tag
	TopN              int
}

// SheetsEnabled reports whether results should also be written to Google Sheets
func (c *Config) SheetsEnabled() bool {
	return c.SpreadsheetID != ""
}

// DeployEnabled reports whether the JSON report should be published over SSH
func (c *Config) DeployEnabled() bool {
	return c.DeployURL != ""
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// RedirectLogsToFile sends all further log output to the given file.
// The terminal UI owns stdout/stderr while it runs, so logs go to disk instead.
func RedirectLogsToFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	if os.Getenv("ENV") == "production" {
		log.Logger = log.Output(f)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true})
	}
	return f, nil
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	topN := DefaultTopN
	if raw := os.Getenv("TOP_N"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("TOP_N must be a positive integer, got %q", raw)
		}
		topN = n
	}

	langStr := envOrDefault("COLLATION_LANGUAGE", DefaultCollationLanguage)
	tag, err := language.Parse(langStr)
	if err != nil {
		return nil, fmt.Errorf("COLLATION_LANGUAGE %q is not a valid language tag: %w", langStr, err)
	}

	return &Config{
		DataSource:        envOrDefault("FILM_DATA_SOURCE", DefaultDataSource),
		SpreadsheetID:     os.Getenv("SPREADSHEET_ID"),
		CredentialsFile:   envOrDefault("GOOGLE_CREDENTIALS_FILE", DefaultCredentialsFile),
		DeployURL:         os.Getenv("DEPLOY_URL"),
		DeployKeyFile:     envOrDefault("DEPLOY_KEY_FILE", DefaultDeployKeyFile),
		KnownHostsFile:    os.Getenv("DEPLOY_KNOWN_HOSTS"),
		ReportFile:        envOrDefault("REPORT_FILE", DefaultReportFile),
		LogFile:           envOrDefault("LOG_FILE", DefaultLogFile),
		CollationLanguage: tag,
		TopN:              topN,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
