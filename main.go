package main

// POST /auth/register, /auth/login        - users
// POST /products, GET /products/...       - catalog (sellers create)
// POST /cart/add, GET /cart/view          - cart
// PATCH /cart/decrement/{id}, /cart/remove/{id}
// POST /order, GET /order/...             - orders
// GET /health, /api-docs/openapi.{yaml,json}

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API - users, catalog, cart and orders over HTTP",
	// with no subcommand the server starts
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a production logger, or a development one at debug level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
