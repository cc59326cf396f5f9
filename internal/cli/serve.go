package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaminalder/tictactoe-history/internal/app"
	"github.com/jaminalder/tictactoe-history/internal/config"
	"github.com/jaminalder/tictactoe-history/internal/web"
)

const shutdownTimeout = 5 * time.Second

func Serve() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Long: heredoc.Doc(`
			Serve the browser game. Every "New game" click creates an in-memory
			game that is dropped once it has been idle for games.ttl.
		`),
		Example: heredoc.Doc(`
			$ tictactoe serve
			$ HTTP_PORT=9000 LOG_FORMAT=console tictactoe serve --trace
			$ tictactoe serve --config config.yml
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := setup(cmd, os.Stdout)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), conf, log)
		},
	}
}

func serve(ctx context.Context, conf *config.Config, logger zerolog.Logger) error {
	log := logger.With().Str("component", "app").Logger()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := app.NewService()
	svc.SetLogger(logger)
	go svc.RunJanitor(ctx, conf.Games.SweepInterval, conf.Games.TTL)

	srv := &http.Server{
		Addr:        conf.HTTP.Addr(),
		Handler:     web.NewServer(svc, web.Options{Logger: logger, Heartbeat: conf.HTTP.Heartbeat}),
		ReadTimeout: conf.HTTP.ReadTimeout,
		IdleTimeout: conf.HTTP.IdleTimeout,
		// event streams end with the process context
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}
