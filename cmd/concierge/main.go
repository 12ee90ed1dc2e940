package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"concierge/internal/answer"
	"concierge/internal/assistant"
	"concierge/internal/config"
	"concierge/internal/mailer"
	"concierge/internal/notify"
	"concierge/internal/server"
)

var (
	// Global flags
	verbose    bool
	configPath string
	addr       string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "concierge - WebSocket conversational assistant",
	Long: `concierge serves a single-session conversational assistant over
WebSocket. Each connected client gets an isolated session; messages are
routed to intent handlers for greetings, notification listing, email-reply
drafting and yes/no confirmations, with everything else answered by the
Gemini API.

Run without arguments to start the server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// serveCmd starts the assistant server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebSocket assistant server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// configCmd groups configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

// configInitCmd writes a default config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", configPath)
		return nil
	},
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := answer.NewGemini(ctx, answer.GeminiConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.TimeoutDuration(),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize answer generator: %w", err)
	}

	source := notify.DemoSource()
	sender := mailer.NewStubSender(cfg.Mailer.LatencyDuration(), logger)

	factory := func(sessionID string) server.Handler {
		return assistant.New(assistant.Config{
			Source:      source,
			Sender:      sender,
			Generator:   generator,
			Logger:      logger.With(zap.String("session", sessionID)),
			CallTimeout: cfg.LLM.TimeoutDuration(),
		})
	}

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeoutDuration(),
	}, factory, logger)

	logger.Info("starting concierge",
		zap.String("version", cfg.Version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("model", cfg.LLM.Model))

	return srv.Run(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "concierge.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(serveCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
