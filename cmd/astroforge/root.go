package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/astroforge/astroforge/internal/config"
	"github.com/astroforge/astroforge/internal/llm"
	"github.com/astroforge/astroforge/internal/profile"
	"github.com/astroforge/astroforge/internal/server"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "astroforge",
		Short:         "Creator analysis and growth insight service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.AddCommand(newServeCommand(&configFlag))

	return rootCmd
}

func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runServer(ctx, *configFlag)
		},
	}
}

func runServer(ctx context.Context, configPath string) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	analyzer, err := llm.NewClient(cfg.ClientConfig())
	if err != nil {
		return err
	}

	profiles := profile.NewProvider(&http.Client{Timeout: 15 * time.Second}, slog.Default())

	srv, err := server.New(cfg, analyzer, profiles)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
