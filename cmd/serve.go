package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tokenizer and highlighter over HTTP",
	Long: `Run an HTTP API exposing tokenization and highlighting.

Endpoints:
  POST /tokenize          {"text", "language"}
  POST /highlight         {"text", "language", "search", "case_sensitive", "theme"}
  GET  /languages
  GET  /themes
  GET  /themes/{name}.css
  GET  /health

Example:
  prism serve
  prism serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv, err := server.NewServer(server.ServerConfig{
		Addr: addr,
		Handler: server.HandlerConfig{
			Highlighter:  newHighlighter(),
			Tracer:       provider.Tracer(),
			Theme:        cfg.ThemeName(),
			Palettes:     palettes,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			CacheTTL:     cfg.Server.CacheTTL,
		},
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "prism listening on %s\n", srv.Addr())
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(out, "\nshutting down...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.ErrorErr(log.CatServer, "Error stopping API server", err)
		return fmt.Errorf("stopping server: %w", err)
	}
	return nil
}
