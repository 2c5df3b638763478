package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/angelofallars/hyperinvoice/app"
	"github.com/angelofallars/hyperinvoice/internal/config"
	"github.com/angelofallars/hyperinvoice/internal/editor"
	"github.com/angelofallars/hyperinvoice/internal/logger"
	"github.com/angelofallars/hyperinvoice/internal/service"
	"github.com/angelofallars/hyperinvoice/pkg/bidsight"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hyperinvoice",
		Short:         "Serve the invoice editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	zl, err := logger.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("using invoice API",
		zap.String("url", cfg.InvoicesURL),
		zap.Duration("timeout", cfg.FetchTimeout),
	)

	client := bidsight.New(cfg.InvoicesURL, cfg.FetchTimeout)
	svcInvoice := service.NewInvoice(client, zl)
	registry := editor.NewRegistry(cfg.SessionTTL)

	return app.New(zl, svcInvoice, registry).
		WithHost(cfg.Host).
		WithPort(cfg.Port).
		Serve(ctx)
}
