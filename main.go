package main

import (
	"agentplugins/internal/agent"
	"agentplugins/internal/config"
	"agentplugins/internal/logger"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	debug := os.Getenv("DEBUG") == "true"
	logger.Initialize(debug, nil)
	logger.Get().Info().Bool("debug", debug).Msg("Logger initialized")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Error loading configuration")
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Get().Fatal().Err(err).Msg("Invalid configuration")
	}

	for _, tool := range cfg.Registry.Definitions() {
		logger.Get().Info().Str("tool", tool.QualifiedName()).Msg("Plugin tool registered")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agentInstance := agent.New(agent.Config{
		Client:         cfg.Client,
		GetUserMessage: cfg.GetUserMessage,
		Registry:       cfg.Registry,
		Model:          cfg.Model,
		MaxTokens:      cfg.MaxTokens,
	})

	if err := agentInstance.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Get().Fatal().Err(err).Msg("Agent run failed")
	}
}
