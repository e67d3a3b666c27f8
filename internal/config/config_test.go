package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/expenselens/expenselens/internal/logger"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if conf.Storage.Backend != BackendCSV {
		t.Errorf("default backend = %q, want csv", conf.Storage.Backend)
	}
	if conf.Storage.CSVFile != defaultCSVFile {
		t.Errorf("default CSV file = %q", conf.Storage.CSVFile)
	}
	if conf.OpenAI.Model != defaultModel {
		t.Errorf("default model = %q", conf.OpenAI.Model)
	}
	if conf.Budgets["Food"] != 1000 {
		t.Errorf("default Food budget = %d, want 1000", conf.Budgets["Food"])
	}
}

func TestParseTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenselens.toml")
	contents := `
[storage]
backend = "sqlite"
db_file = "test.db"

[openai]
model = "gpt-4o"

[budgets]
Food = 2500

[logger]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("unable to write config file: %v", err)
	}

	conf, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if conf.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, want sqlite", conf.Storage.Backend)
	}
	if conf.Storage.DBFile != "test.db" {
		t.Errorf("db file = %q", conf.Storage.DBFile)
	}
	if conf.OpenAI.Model != "gpt-4o" {
		t.Errorf("model = %q", conf.OpenAI.Model)
	}
	if conf.Budgets["Food"] != 2500 {
		t.Errorf("Food budget = %d, want 2500", conf.Budgets["Food"])
	}
	if conf.Logger.Level != logger.LevelDebug {
		t.Errorf("log level = %q", conf.Logger.Level)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("EXPENSELENS_STORAGE", "sqlite")
	t.Setenv("EXPENSES_CSV_PATH", "/tmp/other.csv")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("EXPENSELENS_LOG_LEVEL", "error")

	conf, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if conf.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, want sqlite", conf.Storage.Backend)
	}
	if conf.Storage.CSVFile != "/tmp/other.csv" {
		t.Errorf("CSV file = %q", conf.Storage.CSVFile)
	}
	if conf.OpenAI.APIKey != "sk-test" {
		t.Errorf("API key not picked up from env")
	}
	if conf.Logger.Level != logger.LevelError {
		t.Errorf("log level = %q", conf.Logger.Level)
	}
}

func TestParseUnsupportedBackend(t *testing.T) {
	t.Setenv("EXPENSELENS_STORAGE", "postgres")

	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestParseMissingFileIsFine(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "nope.toml")); err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
}
