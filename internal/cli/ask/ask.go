package ask

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/expenselens/expenselens/internal/assistant"
	"github.com/expenselens/expenselens/internal/cli"
	"github.com/expenselens/expenselens/internal/config"
	"github.com/expenselens/expenselens/internal/llm"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/storage"
)

type askCommand struct {
	question string
	ping     bool
}

func NewCommand() cli.Command {
	return &askCommand{}
}

func (c *askCommand) Description() string {
	return "Ask a natural-language question about your expenses"
}

func (c *askCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.question, "q", "", "question to ask")
	fs.BoolVar(&c.ping, "ping", false, "check AI connectivity and exit")
}

func (c *askCommand) Run(conf *config.Config, store storage.Storage, log *logger.Logger) error {
	ctx := context.Background()

	var client llm.Client
	provider := llm.NewOpenAI(conf.OpenAI.APIKey, conf.OpenAI.Model)
	if provider.Configured() {
		client = provider
	}

	if c.ping {
		if err := provider.Ping(ctx); err != nil {
			return fmt.Errorf("AI connectivity check failed: %w", err)
		}
		fmt.Println("AI OK: connectivity verified.")
		return nil
	}

	if strings.TrimSpace(c.question) == "" {
		return fmt.Errorf("you must provide a question with -q")
	}

	bot := assistant.New(store, client, log)
	fmt.Println(bot.Answer(ctx, c.question))

	return nil
}
