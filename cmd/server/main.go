package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-server/broadcast"
	"chat-server/logging"
	"chat-server/moderation"
	"chat-server/repositories"
	"chat-server/runtime/workers"
	"chat-server/server"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the listener and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	log := logging.GetLoggerFromString(config.LogLevel)

	// 2. Shared chat state
	users := repositories.NewUserRepository()
	messages := repositories.NewMessageRepository()
	broadcaster := broadcast.NewBroadcaster(log, config.SubscriberBufferSize)

	// 3. Optional moderation pipeline
	var moderator *moderation.Moderator
	if words := config.censoredWordList(); len(words) > 0 {
		char, err := characterRune(config.CensorCharacter)
		if err != nil {
			return err
		}
		m, err := moderation.NewModerator(words, char, log)
		if err != nil {
			return fmt.Errorf("moderation setup failed: %w", err)
		}
		moderator = &m
		log.Info("Moderation enabled", "dictionary_size", len(words))
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Listener & supervised workers
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		server.NewServer(log, listener, users, messages, broadcaster, moderator),
		workers.NewChatStatsWorker(log, users, messages, broadcaster, config.MetricInterval),
		workers.NewHeartbeatWorker(log, config.MetricInterval),
	)

	log.Info("Starting chat server", "address", address, "at", time.Now())
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
