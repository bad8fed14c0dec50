package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dsablic/codecheck/internal/aiestimate"
	"github.com/dsablic/codecheck/internal/api"
	"github.com/dsablic/codecheck/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var version = "dev"

var warnColor = color.New(color.FgYellow)

func main() {
	root := &cobra.Command{
		Use:           "codecheck",
		Short:         "Estimate whether a code snippet was AI-generated or human-written",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", config.DefaultPath(), "Path to the TOML config file")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newShareCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		if errors.Is(err, aiestimate.ErrEmptyInput) {
			fmt.Fprintln(os.Stderr, aiestimate.EmptyInputMessage)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func warn(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().Float64("rate", -1, "Requests per second per server (overrides server.req_per_sec, 0 disables)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if rate, _ := cmd.Flags().GetFloat64("rate"); rate >= 0 {
		cfg.Server.ReqPerSec = rate
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(ctx, api.Config{
		Estimator: aiestimate.New(),
		Origin:    cfg.Share.Origin,
		ReqPerSec: cfg.Server.ReqPerSec,
	})
	if err := server.Run(ctx, cfg.Server.Addr); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
