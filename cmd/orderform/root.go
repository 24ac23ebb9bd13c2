package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/internal/config"
	"github.com/goliatone/go-orderform/internal/logging"
	"github.com/goliatone/go-orderform/pkg/schema"
)

// app carries what every subcommand shares once the root has run.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *zap.Logger
	schema *schema.Schema
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "orderform",
		Short:         "Bloom Pizza order form",
		Long:          "Serve the pizza order form, place an order from the terminal, or run a local order endpoint.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (json or console)")

	root.AddCommand(newServeCmd(a), newOrderCmd(a), newStubCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	a.schema = schema.Default()
	if cfg.CatalogPath != "" {
		sch, err := schema.LoadFile(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		a.schema = sch
	}
	return nil
}
