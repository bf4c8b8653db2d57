package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/telop/internal/config"
	"github.com/ivlev/telop/internal/logging"
	"github.com/ivlev/telop/internal/player"
	"github.com/ivlev/telop/internal/renderer"
	"github.com/ivlev/telop/internal/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve caption lookups over HTTP for an external player clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if listenAddr != "" {
			cfg.Listen = listenAddr
		}

		set, effect, err := loadScript(cmd)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Listen,
			Handler:           server.New(set, effect, logging.WithComponent("server")).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		log.Info().Str("addr", cfg.Listen).Int("telops", len(set)).Msg("[*] Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play captions in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		set, effect, err := loadScript(cmd)
		if err != nil {
			return err
		}
		ease, err := renderer.EasingByName(cfg.Easing)
		if err != nil {
			return err
		}
		return player.Run(set, effect, ease)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (default from config, :8080)")
}
