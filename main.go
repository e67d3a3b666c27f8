package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/expenselens/expenselens/internal/cli"
	"github.com/expenselens/expenselens/internal/cli/add"
	"github.com/expenselens/expenselens/internal/cli/ask"
	"github.com/expenselens/expenselens/internal/cli/importcmd"
	"github.com/expenselens/expenselens/internal/cli/report"
	"github.com/expenselens/expenselens/internal/cli/web"
	"github.com/expenselens/expenselens/internal/config"
	"github.com/expenselens/expenselens/internal/logger"
)

var configPath string

var subcommands = map[string]cli.Command{
	"add":    add.NewCommand(),
	"ask":    ask.NewCommand(),
	"import": importcmd.NewCommand(),
	"report": report.NewCommand(),
	"web":    web.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	// Optional .env next to the binary, the way the original app read
	// its secrets file. Absence is fine.
	_ = godotenv.Load()

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", "expenselens.toml", "Configuration file")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "unsupported command %s.\nUse 'help' to print information about supported commands\n", commandName)
		os.Exit(1)
	}

	if err := subcommandsFlagSets[commandName].Parse(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "unable to parse the command flags: %s\n", err.Error())
		os.Exit(1)
	}

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration: %s\n", err.Error())
		os.Exit(1)
	}

	appLogger := logger.New(conf.Logger)

	store, err := cli.NewStorage(conf)
	if err != nil {
		appLogger.Fatal("Unable to open the expense store", "error", err.Error())
	}

	runErr := command.Run(conf, store, appLogger)

	if closeErr := store.Close(); closeErr != nil {
		appLogger.Error("Error closing storage", "error", closeErr.Error())
	}

	if runErr != nil {
		appLogger.Fatal("Command failed", "command", commandName, "error", runErr.Error())
	}
}

func printHelp() {
	printUsage()

	for c, cLogic := range subcommands {
		fmt.Printf("subcommand <%s>: %s\n", c, cLogic.Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: expenselens <subcommand> [flags]\n\n")
}
