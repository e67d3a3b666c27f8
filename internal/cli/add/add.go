package add

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/expenselens/expenselens/internal/category"
	"github.com/expenselens/expenselens/internal/cli"
	"github.com/expenselens/expenselens/internal/config"
	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/storage"
	"github.com/expenselens/expenselens/internal/util"
)

type addCommand struct {
	date     string
	category string
	amount   string
	note     string
}

func NewCommand() cli.Command {
	return &addCommand{}
}

func (c *addCommand) Description() string {
	return "Record a new expense"
}

func (c *addCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "expense date (YYYY-MM-DD, default today)")
	fs.StringVar(&c.category, "category", "", "category (suggested from the note when omitted)")
	fs.StringVar(&c.amount, "amount", "", "amount, e.g. 120.50")
	fs.StringVar(&c.note, "note", "", "free-text note")
}

func (c *addCommand) Run(conf *config.Config, store storage.Storage, log *logger.Logger) error {
	ctx := context.Background()

	amount, err := expense.ParseAmount(c.amount)
	if err != nil {
		return fmt.Errorf("invalid -amount: %w", err)
	}
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	date := expense.ParseDate(c.date)
	if c.date == "" {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		date = &today
	} else if date == nil {
		return fmt.Errorf("invalid -date %q, expected YYYY-MM-DD", c.date)
	}

	categoryName := c.category
	if categoryName == "" {
		known := knownCategories(ctx, store)
		categoryName = category.NewSuggester(known).Suggest(c.note)
		log.Debug("suggested category", "category", categoryName, "note", c.note)
	}

	record := expense.Record{
		Date:        date,
		Category:    categoryName,
		AmountMinor: amount,
		Note:        c.note,
	}

	if err = store.AppendExpense(ctx, record); err != nil {
		return fmt.Errorf("unable to save the expense: %w", err)
	}

	fmt.Printf("Recorded ₹%s under %s.\n",
		util.ColorOutput(util.FormatMoney(amount), "green", "bold"), categoryName)

	return nil
}

func knownCategories(ctx context.Context, store storage.Storage) []string {
	records, err := store.ListExpenses(ctx)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var names []string
	for _, record := range records {
		if record.Category != "" && !seen[record.Category] {
			seen[record.Category] = true
			names = append(names, record.Category)
		}
	}

	return names
}
