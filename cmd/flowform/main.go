package main

import (
	"context"
	"os"

	"github.com/flowform/flowform-go/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "flowform",
		EnableShellCompletion: true,
		Usage:                 "Run workflows and inspect the catalog of a FlowForm organization",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "endpoint",
				Usage:    "URL of the remote query endpoint",
				Required: true,
				Sources:  cli.EnvVars("FLOWFORM_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:     "org-id",
				Usage:    "Organization identity sent with every operation",
				Required: true,
				Sources:  cli.EnvVars("FLOWFORM_ORG_ID"),
			},
			&cli.BoolFlag{
				Name:    "no-cache",
				Usage:   "Disable the result cache for this invocation",
				Sources: cli.EnvVars("FLOWFORM_NO_CACHE"),
			},
			&cli.BoolFlag{
				Name:    "trace",
				Usage:   "Export OpenTelemetry traces (OTLP over HTTP)",
				Sources: cli.EnvVars("FLOWFORM_TRACE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			log.Setup(command.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCommand(),
			workflowsCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.WithModule("flowform").Error("Command failed", "error", err)
		os.Exit(1)
	}
}
