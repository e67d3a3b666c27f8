package importcmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/expenselens/expenselens/internal/cli"
	"github.com/expenselens/expenselens/internal/config"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/storage"
	"github.com/expenselens/expenselens/internal/storage/csvfile"
)

type importCommand struct {
	file string
}

func NewCommand() cli.Command {
	return &importCommand{}
}

func (c *importCommand) Description() string {
	return "Import expenses from a CSV file into the configured store"
}

func (c *importCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "CSV file to import (Date, Category, Amount, Note)")
}

func (c *importCommand) Run(conf *config.Config, store storage.Storage, log *logger.Logger) error {
	if c.file == "" {
		return fmt.Errorf("you must provide a CSV file with -f")
	}

	ctx := context.Background()

	records, err := csvfile.New(c.file).ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", c.file, err)
	}

	if len(records) == 0 {
		log.Info("nothing to import", "file", c.file)
		return nil
	}

	inserted, err := store.InsertExpenses(ctx, records)
	if err != nil {
		return fmt.Errorf("unable to import the expenses: %w", err)
	}

	log.Info("import finished", "file", c.file, "imported", inserted)
	fmt.Printf("Imported %d expenses from %s.\n", inserted, c.file)

	return nil
}
