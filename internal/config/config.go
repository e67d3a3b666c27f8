package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/expenselens/expenselens/internal/logger"
)

type StorageBackend string

const (
	BackendCSV    StorageBackend = "csv"
	BackendSQLite StorageBackend = "sqlite"
)

type StorageConfig struct {
	Backend StorageBackend `toml:"backend"`
	// CSVFile is the primary expenses file. ExtraCSVFiles are merged in
	// on every load, duplicates dropped (Date, Category, Amount).
	CSVFile       string   `toml:"csv_file"`
	ExtraCSVFiles []string `toml:"extra_csv_files"`
	DBFile        string   `toml:"db_file"`
}

type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type Config struct {
	Storage StorageConfig `toml:"storage"`
	OpenAI  OpenAIConfig  `toml:"openai"`
	// Budgets maps category name to a monthly limit in whole rupees.
	Budgets map[string]int64 `toml:"budgets"`
	Logger  logger.Config    `toml:"logger"`
}

const (
	defaultCSVFile = "data/expenses.csv"
	defaultDBFile  = "expenselens.db"
	defaultModel   = "gpt-4o-mini"
)

// DefaultBudgets mirrors the limits the original dashboard shipped with.
var DefaultBudgets = map[string]int64{
	"Food":     1000,
	"Travel":   500,
	"Bills":    1500,
	"Shopping": 800,
	"Other":    300,
}

func (c *Config) parseEnv() {
	if backend := os.Getenv("EXPENSELENS_STORAGE"); backend != "" {
		c.Storage.Backend = StorageBackend(backend)
	}

	if csvFile := os.Getenv("EXPENSES_CSV_PATH"); csvFile != "" {
		c.Storage.CSVFile = csvFile
	}

	if dbFile := os.Getenv("EXPENSELENS_DB"); dbFile != "" {
		c.Storage.DBFile = dbFile
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAI.APIKey = key
	}

	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		c.OpenAI.Model = model
	}

	if level := os.Getenv("EXPENSELENS_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("EXPENSELENS_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("EXPENSELENS_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendCSV
	}

	if c.Storage.CSVFile == "" {
		c.Storage.CSVFile = defaultCSVFile
	}

	if c.Storage.DBFile == "" {
		c.Storage.DBFile = defaultDBFile
	}

	if c.OpenAI.Model == "" {
		c.OpenAI.Model = defaultModel
	}

	if c.Budgets == nil {
		c.Budgets = DefaultBudgets
	}
}

// Parse reads the optional TOML configuration file and applies
// environment overrides on top. A missing file is not an error; the
// defaults cover it.
func Parse(path string) (*Config, error) {
	conf := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, decodeErr := toml.DecodeFile(path, conf); decodeErr != nil {
				return nil, fmt.Errorf("unable to decode %s: %w", path, decodeErr)
			}
		}
	}

	conf.parseEnv()
	conf.applyDefaults()

	if conf.Storage.Backend != BackendCSV && conf.Storage.Backend != BackendSQLite {
		return nil, fmt.Errorf("unsupported storage backend %q", conf.Storage.Backend)
	}

	return conf, nil
}
