package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/flowform/flowform-go/pkg/execution"
	"github.com/flowform/flowform-go/pkg/flowform"
	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/otelhelper"
)

func newClient(command *cli.Command) (*flowform.Client, error) {
	return flowform.New(flowform.Config{
		Endpoint:       command.String("endpoint"),
		OrganizationID: command.String("org-id"),
		DisableCache:   command.Bool("no-cache"),
	})
}

func setupTracing(ctx context.Context, command *cli.Command) error {
	if !command.Bool("trace") {
		return nil
	}

	_, err := otelhelper.NewTracer(ctx, "flowform")

	return err
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Execute a workflow and wait for its result",
		ArgsUsage: "<workflow-id>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "input",
				Usage: "Input parameter in key=value form (repeatable)",
			},
			&cli.StringFlag{
				Name:  "input-file",
				Usage: "Path to a JSON file with input parameters",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			workflowID := command.Args().First()
			if workflowID == "" {
				return fmt.Errorf("a workflow id is required")
			}

			if err := setupTracing(ctx, command); err != nil {
				return err
			}

			client, err := newClient(command)
			if err != nil {
				return err
			}

			input, err := parseInput(command)
			if err != nil {
				return err
			}

			logger := log.WithModule("flowform").With("workflowId", workflowID)
			logger.InfoContext(ctx, "Launching workflow")

			result, err := client.Launcher().Launch(ctx, workflowID, input,
				execution.WithProgress(func(status string, completedTasks int) {
					logger.InfoContext(ctx, "Execution progress", "status", status, "completedTasks", completedTasks)
				}))
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(encoded))

			return nil
		},
	}
}

func workflowsCommand() *cli.Command {
	return &cli.Command{
		Name:  "workflows",
		Usage: "List the workflows of the organization",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "option-generators",
				Usage: "List option-generator workflows instead",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			client, err := newClient(command)
			if err != nil {
				return err
			}

			list := client.Catalog().ListWorkflows
			if command.Bool("option-generators") {
				list = client.Catalog().ListOptionGeneratorWorkflows
			}

			workflows, err := list(ctx, false)
			if err != nil {
				return err
			}

			for _, workflow := range workflows {
				fmt.Printf("%s\t%s\n", workflow.ID, workflow.Name)
			}

			return nil
		},
	}
}

// parseInput merges --input key=value pairs over the contents of
// --input-file. Values that parse as JSON keep their type; everything else
// stays a string.
func parseInput(command *cli.Command) (map[string]any, error) {
	input := make(map[string]any)

	if file := command.String("input-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}

		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse input file as JSON: %w", err)
		}
	}

	for _, pair := range command.StringSlice("input") {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid input format %q (expected key=value)", pair)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}

		input[strings.TrimSpace(key)] = value
	}

	return input, nil
}
