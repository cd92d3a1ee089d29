package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"brewheaven-api/chatbot"
	"brewheaven-api/config"
	"brewheaven-api/events"
	"brewheaven-api/gemini"
	"brewheaven-api/handlers"
	"brewheaven-api/middleware"
	"brewheaven-api/routes"
)

var Version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "brewheaven",
		Short:         "BrewHeaven Cafe ordering and chat API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(seedCmd(&configPath))
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, newLogger())
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := openServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	kb, err := chatbot.DefaultKnowledgeBase()
	if err != nil {
		return err
	}
	var completer chatbot.Completer
	if cfg.GeminiEnabled() {
		completer = gemini.New(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.GeminiTimeout,
		}, log)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.EventsEnabled() {
		p, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Warn("order events disabled, broker unreachable", "error", err)
		} else {
			publisher = p
			defer p.Close()
		}
	}
	_, eventsOn := publisher.(*events.AMQPPublisher)

	staff, ok := cfg.Staff()
	if !ok {
		log.Warn("STAFF_EMAIL or STAFF_PASSWORD_HASH not set, staff routes are unreachable")
	}
	if cfg.UsingDevSecret() {
		log.Warn("JWT_SECRET not set, using the development secret")
	}

	h := handlers.New(handlers.Options{
		Data:      svc.resolver,
		Bot:       chatbot.NewComposer(kb, completer, log),
		Events:    publisher,
		EventsOn:  eventsOn,
		Staff:     staff,
		JWTSecret: []byte(cfg.JWTSecret),
		Timeout:   cfg.RequestTimeout,
		Logger:    log,
	})

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.CORS())
	routes.SetupRoutes(r, h, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			"addr", srv.Addr,
			"preference", cfg.Preference.String(),
			"backends", svc.resolver.Backends(),
			"generative", completer != nil,
			"events", eventsOn,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Copy the bundled menu into every enabled backend whose menu is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := newLogger()
			ctx := cmd.Context()

			svc, err := openServices(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer svc.Close()

			if len(svc.resolver.Backends()) == 0 {
				return errors.New("no backend is enabled, nothing to seed")
			}
			seeded, err := svc.resolver.Seed(ctx, svc.dataset.Items())
			for _, name := range svc.resolver.Backends() {
				if n, ok := seeded[name]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d items\n", name+":", n)
				}
			}
			return err
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for STAFF_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}
