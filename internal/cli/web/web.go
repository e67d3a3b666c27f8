// Package web serves the expense dashboard: summary figures, budget
// alerts, an add-expense form and the chat box wired to the assistant.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/expenselens/expenselens/internal/assistant"
	"github.com/expenselens/expenselens/internal/cli"
	"github.com/expenselens/expenselens/internal/config"
	"github.com/expenselens/expenselens/internal/llm"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/storage"
)

type webCommand struct {
	addr string
}

func NewCommand() cli.Command {
	return &webCommand{}
}

func (c *webCommand) Description() string {
	return "Serve the expense dashboard"
}

func (c *webCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", ":8080", "address to listen on")
}

const shutdownTimeout = 5 * time.Second

func (c *webCommand) Run(conf *config.Config, store storage.Storage, log *logger.Logger) error {
	var client llm.Client
	provider := llm.NewOpenAI(conf.OpenAI.APIKey, conf.OpenAI.Model)
	if provider.Configured() {
		client = provider
	}

	bot := assistant.New(store, client, log)

	srv, err := newServer(store, bot, conf.Budgets, log)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("dashboard listening", "addr", c.addr)
		if serveErr := httpServer.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return fmt.Errorf("dashboard server: %w", err)
	}

	return nil
}
