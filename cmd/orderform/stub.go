package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/internal/orderapi"
	"github.com/goliatone/go-orderform/internal/server"
)

func newStubCmd(a *app) *cobra.Command {
	var (
		addr       string
		outOfStock []string
	)

	cmd := &cobra.Command{
		Use:   "stub-api",
		Short: "Run a local order endpoint for development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("addr") {
				cfg.StubAddr = addr
			}
			if cmd.Flags().Changed("out-of-stock") {
				cfg.OutOfStock = outOfStock
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			handler, err := orderapi.New(cmd.Context(),
				orderapi.WithLogger(a.logger.Named("orderapi")),
				orderapi.WithSchema(a.schema),
				orderapi.WithOutOfStock(cfg.OutOfStockSizes()...),
			)
			if err != nil {
				return err
			}

			a.logger.Info("serving stub order API",
				zap.String("addr", cfg.StubAddr),
				zap.Strings("out_of_stock", cfg.OutOfStock),
			)
			return server.Run(cmd.Context(), &http.Server{
				Addr:              cfg.StubAddr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}, cfg.ShutdownGrace, a.logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "", "listen address (default :9009)")
	flags.StringSliceVar(&outOfStock, "out-of-stock", nil, "sizes to reject as out of stock, e.g. L")
	return cmd
}
