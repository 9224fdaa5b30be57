// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cosmicjs/mcp-server/pkg/cosmic"
	mcpserver "github.com/cosmicjs/mcp-server/pkg/mcp-server"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mcp-server",
		Short: "Cosmic MCP (Model Context Protocol) Server",
		Args:  cobra.OnlyValidArgs,
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the service",
		Args:  cobra.ExactArgs(0),
		RunE:  cmdRun,
	}
)

func init() {
	rootCmd.AddCommand(runCmd)
	bindFlags(runCmd.Flags())

	viper.SetEnvPrefix("COSMIC")
	viper.AutomaticEnv()

	// the three bucket settings come from the environment only
	cobra.CheckErr(viper.BindEnv("bucket_slug"))
	cobra.CheckErr(viper.BindEnv("read_key"))
	cobra.CheckErr(viper.BindEnv("write_key"))
}

func bindFlags(flags *pflag.FlagSet) {
	flags.String("transport", mcpserver.TransportStdio, "transport to serve MCP requests on (stdio or http)")
	flags.String("address", ":20210", "address to serve HTTP requests, http transport only")
	flags.Duration("idle-timeout", 60*time.Second, "maximum time to wait for the next request, http transport only")
	flags.Duration("shutdown-delay", time.Second, "time to delay shutdown while returning 503s on the health endpoint")
	flags.String("api-url", cosmic.DefaultBaseURL, "Cosmic API endpoint")
	flags.Duration("api-timeout", 30*time.Second, "how long to wait for a single Cosmic API request")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	cobra.CheckErr(viper.BindPFlags(flags))
}

func cmdRun(cmd *cobra.Command, _ []string) (err error) {
	log, err := newLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	config := mcpserver.Config{
		Transport:     viper.GetString("transport"),
		Address:       viper.GetString("address"),
		IdleTimeout:   viper.GetDuration("idle-timeout"),
		ShutdownDelay: viper.GetDuration("shutdown-delay"),
		Cosmic: cosmic.Config{
			BaseURL:    viper.GetString("api-url"),
			BucketSlug: viper.GetString("bucket_slug"),
			ReadKey:    viper.GetString("read_key"),
			WriteKey:   viper.GetString("write_key"),
			Timeout:    viper.GetDuration("api-timeout"),
		},
	}

	if config.Cosmic.BucketSlug == "" {
		return errs.New("COSMIC_BUCKET_SLUG environment variable is missing")
	}
	if config.Cosmic.ReadKey == "" {
		return errs.New("COSMIC_READ_KEY environment variable is missing")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	log.Info("Starting Cosmic MCP (Model Context Protocol) Server",
		zap.String("transport", config.Transport),
		zap.String("bucket", config.Cosmic.BucketSlug),
		zap.Bool("write-enabled", config.Cosmic.WriteKey != ""))

	client := cosmic.New(config.Cosmic)

	peer, err := mcpserver.New(log, client, config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// if peer.Run() fails, we want to ensure the context is canceled so we
	// don't hang on ctx.Done.
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return peer.Run(ctx)
	})

	return g.Wait()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errs.New("invalid log level %q: %v", level, err)
	}

	// MCP's stdio transport owns stdout, so logs always go to stderr.
	config := zap.NewProductionConfig()
	config.Level = lvl
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
