package report

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/expenselens/expenselens/internal/cli"
	"github.com/expenselens/expenselens/internal/config"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/report"
	"github.com/expenselens/expenselens/internal/storage"
	"github.com/expenselens/expenselens/internal/util"
)

type reportCommand struct {
	top       int
	recurring bool
}

func NewCommand() cli.Command {
	return &reportCommand{}
}

func (c *reportCommand) Description() string {
	return "Print spending totals, budget alerts and recurring expenses"
}

func (c *reportCommand) SetFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.top, "top", 5, "number of categories to list")
	fs.BoolVar(&c.recurring, "recurring", false, "include recurring expense detection")
}

func (c *reportCommand) Run(conf *config.Config, store storage.Storage, log *logger.Logger) error {
	ctx := context.Background()

	records, err := store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("unable to load the expenses: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No expense data available yet. Add some expenses first.")
		return nil
	}

	out := os.Stdout

	fmt.Fprintf(out, "Total spent: ₹%s\n\n",
		util.ColorOutput(util.FormatMoney(report.TotalMinor(records)), "bold"))

	fmt.Fprintln(out, "Top categories:")
	for _, ct := range report.TopCategories(records, c.top) {
		fmt.Fprintf(out, "  %s: ₹%s\n", ct.Name, util.FormatMoney(ct.TotalMinor))
	}

	fmt.Fprintln(out, "\nMonthly totals:")
	for _, mt := range report.MonthlyTotals(records) {
		fmt.Fprintf(out, "  %s %d: ₹%s\n",
			mt.Month.Month().String(), mt.Month.Year(), util.FormatMoney(mt.TotalMinor))
	}

	alerts := report.BudgetAlerts(records, conf.Budgets)
	if len(alerts) > 0 {
		fmt.Fprintln(out, "\nBudget alerts:")
		for _, alert := range alerts {
			line := fmt.Sprintf("  %s exceeded the limit of ₹%s (Spent: ₹%s)",
				alert.Category, util.FormatMoney(alert.LimitMinor), util.FormatMoney(alert.SpentMinor))
			fmt.Fprintln(out, util.ColorOutput(line, "red"))
		}
	} else {
		fmt.Fprintln(out, "\n"+util.ColorOutput("All categories are within budget.", "green"))
	}

	if c.recurring {
		recurring := report.RecurringExpenses(records)
		if len(recurring) == 0 {
			fmt.Fprintln(out, "\nNo major recurring expenses found.")
		} else {
			fmt.Fprintln(out, "\nRecurring expenses:")
			for _, r := range recurring {
				fmt.Fprintf(out, "  %s ₹%s x%d\n",
					r.Category, util.FormatMoney(r.AmountMinor), r.Count)
			}
		}
	}

	return nil
}
