package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
	"github.com/goliatone/go-orderform/pkg/state"
)

func newOrderCmd(a *app) *cobra.Command {
	var (
		endpoint string
		output   string
		name     string
		size     string
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order interactively from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("endpoint") {
				cfg.Endpoint = endpoint
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := gateway.New(
				gateway.WithEndpoint(cfg.Endpoint),
				gateway.WithFallbackMessage(a.schema.FallbackMessage()),
				gateway.WithLogger(a.logger.Named("gateway")),
			)
			if err != nil {
				return err
			}

			store := state.New(state.WithSchema(a.schema))
			if name != "" {
				store.SetFullName(name)
			}
			if size != "" {
				store.SetSize(model.Size(size))
			}

			session, err := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout(), survey.WithStdio(os.Stdin, os.Stdout, os.Stderr))),
				tui.WithStore(store),
				tui.WithSubmitter(client),
				tui.WithOutputFormat(tui.OutputFormat(output)),
			)
			if err != nil {
				return err
			}

			outcome, err := session.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "order cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			if !outcome.Submitted && outcome.Feedback.Failure != "" {
				return fmt.Errorf("order not placed: %s", outcome.Feedback.Failure)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&endpoint, "endpoint", "", "order endpoint URL")
	flags.StringVarP(&output, "output", "o", string(tui.OutputFormatPrettyText), "echo the placed order as pretty, json or none")
	flags.StringVar(&name, "name", "", "prefill the full name")
	flags.StringVar(&size, "size", "", "prefill the size (S, M or L)")
	return cmd
}
