package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

var configEnvKeys = []string{
	"FILM_DATA_SOURCE",
	"SPREADSHEET_ID",
	"GOOGLE_CREDENTIALS_FILE",
	"DEPLOY_URL",
	"DEPLOY_KEY_FILE",
	"DEPLOY_KNOWN_HOSTS",
	"REPORT_FILE",
	"LOG_FILE",
	"COLLATION_LANGUAGE",
	"TOP_N",
}

func TestLoadConfig(t *testing.T) {
	// Save original environment
	original := make(map[string]string)
	for _, key := range configEnvKeys {
		original[key] = os.Getenv(key)
	}

	// Cleanup function
	defer func() {
		for key, value := range original {
			setOrUnset(key, value)
		}
	}()

	clearAll := func() {
		for _, key := range configEnvKeys {
			os.Unsetenv(key)
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		clearAll()

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if config.DataSource != "film.json" {
			t.Errorf("Expected DataSource to default to 'film.json', got '%s'", config.DataSource)
		}
		if config.CredentialsFile != "credentials.json" {
			t.Errorf("Expected CredentialsFile to default to 'credentials.json', got '%s'", config.CredentialsFile)
		}
		if config.ReportFile != DefaultReportFile {
			t.Errorf("Expected ReportFile %s, got %s", DefaultReportFile, config.ReportFile)
		}
		if config.TopN != 10 {
			t.Errorf("Expected TopN 10, got %d", config.TopN)
		}
		if config.CollationLanguage != language.English {
			t.Errorf("Expected English collation, got %v", config.CollationLanguage)
		}
		if config.SheetsEnabled() {
			t.Error("Expected sheets to be disabled without SPREADSHEET_ID")
		}
		if config.DeployEnabled() {
			t.Error("Expected deploy to be disabled without DEPLOY_URL")
		}
	})

	t.Run("ValidConfiguration", func(t *testing.T) {
		clearAll()
		os.Setenv("FILM_DATA_SOURCE", "https://example.com/film.json")
		os.Setenv("SPREADSHEET_ID", "test_spreadsheet_id")
		os.Setenv("GOOGLE_CREDENTIALS_FILE", "test_credentials.json")
		os.Setenv("DEPLOY_URL", "deploy@example.com:/var/www")
		os.Setenv("COLLATION_LANGUAGE", "sv")
		os.Setenv("TOP_N", "5")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if config.DataSource != "https://example.com/film.json" {
			t.Errorf("Unexpected DataSource '%s'", config.DataSource)
		}
		if config.SpreadsheetID != "test_spreadsheet_id" {
			t.Errorf("Expected SpreadsheetID to be 'test_spreadsheet_id', got '%s'", config.SpreadsheetID)
		}
		if config.CredentialsFile != "test_credentials.json" {
			t.Errorf("Expected CredentialsFile to be 'test_credentials.json', got '%s'", config.CredentialsFile)
		}
		if !config.SheetsEnabled() || !config.DeployEnabled() {
			t.Error("Expected sheets and deploy to be enabled")
		}
		if config.CollationLanguage != language.Swedish {
			t.Errorf("Expected Swedish collation, got %v", config.CollationLanguage)
		}
		if config.TopN != 5 {
			t.Errorf("Expected TopN 5, got %d", config.TopN)
		}
	})

	t.Run("InvalidTopN", func(t *testing.T) {
		for _, raw := range []string{"abc", "0", "-3"} {
			clearAll()
			os.Setenv("TOP_N", raw)

			_, err := LoadConfig()
			if err == nil {
				t.Fatalf("Expected error for TOP_N=%q, got nil", raw)
			}
			if !strings.Contains(err.Error(), "TOP_N") {
				t.Errorf("Expected error message to contain 'TOP_N', got '%s'", err.Error())
			}
		}
	})

	t.Run("InvalidLanguage", func(t *testing.T) {
		clearAll()
		os.Setenv("COLLATION_LANGUAGE", "not a language!")

		_, err := LoadConfig()
		if err == nil {
			t.Fatal("Expected error for invalid COLLATION_LANGUAGE, got nil")
		}
		if !strings.Contains(err.Error(), "COLLATION_LANGUAGE") {
			t.Errorf("Expected error message to contain 'COLLATION_LANGUAGE', got '%s'", err.Error())
		}
	})
}

func TestSetupEnvironment(t *testing.T) {
	// Save original environment
	originalENV := os.Getenv("ENV")
	originalLOGLEVEL := os.Getenv("LOGLEVEL")
	originalLevel := zerolog.GlobalLevel()

	// Cleanup function
	defer func() {
		setOrUnset("ENV", originalENV)
		setOrUnset("LOGLEVEL", originalLOGLEVEL)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	testCases := []struct {
		name          string
		env           string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{"ProductionDebug", "production", "debug", zerolog.DebugLevel},
		{"ProductionWarning", "production", "warning", zerolog.WarnLevel},
		{"ProductionError", "production", "error", zerolog.ErrorLevel},
		{"ProductionDisabled", "production", "disabled", zerolog.Disabled},
		{"ProductionDefault", "production", "", zerolog.WarnLevel},
		{"ProductionUnknown", "production", "unknown", zerolog.InfoLevel},
		{"DevelopmentDebug", "development", "debug", zerolog.DebugLevel},
		{"DevelopmentDefault", "development", "", zerolog.InfoLevel},
		{"DevelopmentUnknown", "", "unknown", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setOrUnset("ENV", tc.env)
			setOrUnset("LOGLEVEL", tc.logLevel)

			SetupEnvironment()

			if zerolog.GlobalLevel() != tc.expectedLevel {
				t.Errorf("Expected log level %v, got %v", tc.expectedLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestRedirectLogsToFile(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	path := filepath.Join(t.TempDir(), "film_stats.log")
	f, err := RedirectLogsToFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer f.Close()

	log.Error().Msg("redirected entry")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "redirected entry") {
		t.Errorf("Expected log file to contain entry, got %q", string(data))
	}
}

func TestBoxOfficeUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected BoxOffice
	}{
		{"FormattedString", `"1,234,567"`, "1,234,567"},
		{"PlainNumber", `2500000`, "2500000"},
		{"DecimalNumber", `12.5`, "12.5"},
		{"Null", `null`, ""},
		{"Bool", `true`, ""},
		{"NotAvailable", `"N/A"`, "N/A"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b BoxOffice
			if err := b.UnmarshalJSON([]byte(tc.input)); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if b != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, b)
			}
		})
	}
}

// Helper function to set environment variable or unset if value is empty
func setOrUnset(key, value string) {
	if value == "" {
		os.Unsetenv(key)
	} else {
		os.Setenv(key, value)
	}
}
