package cli

import (
	"flag"
	"fmt"

	"github.com/expenselens/expenselens/internal/config"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/storage"
	"github.com/expenselens/expenselens/internal/storage/csvfile"
	"github.com/expenselens/expenselens/internal/storage/sqlite"
)

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(conf *config.Config, store storage.Storage, log *logger.Logger) error
}

// NewStorage opens the backend selected in the configuration.
func NewStorage(conf *config.Config) (storage.Storage, error) {
	switch conf.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.New(conf.Storage.DBFile)
	case config.BackendCSV:
		return csvfile.New(conf.Storage.CSVFile, conf.Storage.ExtraCSVFiles...), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", conf.Storage.Backend)
	}
}
