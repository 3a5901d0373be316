// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/finbase/securemsg/cmd/app/commands"
	"github.com/finbase/securemsg/internal/app"
	"github.com/finbase/securemsg/internal/config"
	cryptoService "github.com/finbase/securemsg/internal/crypto/service"
	messageUsecase "github.com/finbase/securemsg/internal/message/usecase"
	"github.com/finbase/securemsg/internal/redact"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "securemsg",
		Usage:   "Security sidecar for financial messages on Kafka",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run audit store database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "keygen",
				Usage: "Generate message encryption and signing keys",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kms-provider",
						Usage: "KMS provider for key wrapping (gcpkms, awskms, azurekeyvault, hashivault, localsecrets)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Usage: "URI of the KMS key-wrapping key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunKeygen(
						ctx,
						cryptoService.NewKMSService(),
						os.Stdout,
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				},
			},
			{
				Name:  "seal",
				Usage: "Seal a JSON message read from stdin",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withSecureChannel(ctx, commands.RunSeal)
				},
			},
			{
				Name:  "open",
				Usage: "Open a sealed envelope read from stdin",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withSecureChannel(ctx, commands.RunOpen)
				},
			},
			{
				Name:  "redact",
				Usage: "Mask sensitive fields in a JSON object read from stdin",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunRedact(redact.New(), commands.DefaultIO())
				},
			},
			{
				Name:  "verify-audit-logs",
				Usage: "Verify the tamper-evidence signatures of stored audit logs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer shutdownContainer(ctx, container, logger)

					auditUseCase, err := container.AuditUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize audit use case: %w", err)
					}

					return commands.RunVerifyAuditLogs(ctx, auditUseCase, logger, os.Stdout, cmd.String("format"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// withSecureChannel builds the secure channel from configuration and hands it
// to the command body together with the default IO streams.
func withSecureChannel(
	ctx context.Context,
	run func(context.Context, messageUsecase.SecureChannelUseCase, *slog.Logger, commands.IOTuple) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer shutdownContainer(ctx, container, logger)

	channel, err := container.SecureChannel()
	if err != nil {
		return fmt.Errorf("failed to initialize secure channel: %w", err)
	}

	return run(ctx, channel, logger, commands.DefaultIO())
}

// shutdownContainer releases container resources, logging any failures.
func shutdownContainer(ctx context.Context, container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}
