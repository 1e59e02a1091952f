package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/prism/internal/highlight"
	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/pubsub"
	"github.com/zjrosen/prism/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-render a file to HTML whenever it changes",
	Long: `Watch a source file and write a standalone highlighted HTML page each
time it is saved. Bursts of writes are debounced (watch.debounce).

Example:
  prism watch main.py --out main.html
  prism watch query.sql --search users --theme dark`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchOut           string
	watchLanguage      string
	watchSearch        string
	watchCaseSensitive bool
	watchTheme         string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output file (default: <file>.html)")
	watchCmd.Flags().StringVarP(&watchLanguage, "language", "l", "", "language tag (default: from file extension)")
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "highlight occurrences of this literal term")
	watchCmd.Flags().BoolVar(&watchCaseSensitive, "case-sensitive", false, "match the search term case-sensitively")
	watchCmd.Flags().StringVarP(&watchTheme, "theme", "t", "", "theme name (default: from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := filepath.Clean(args[0])
	out := watchOut
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
	}
	if filepath.Clean(out) == path {
		return fmt.Errorf("output %s would overwrite the watched file", out)
	}

	opts, err := renderOptions(cmd, watchTheme, watchSearch, watchCaseSensitive)
	if err != nil {
		return err
	}
	language := resolveLanguage(watchLanguage, path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := renderToFile(cmd, path, string(data), out, language, opts); err != nil {
		return err
	}

	w, err := watcher.New(watcher.Config{Path: path, Debounce: cfg.Watch.Debounce})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broker := pubsub.NewBroker[watcher.Content]()
	defer broker.Close()
	reloads := broker.Subscribe(ctx)
	go watcher.Reload(ctx, path, changes, broker)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "watching %s (Ctrl+C to stop)\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-reloads:
			if !ok {
				return nil
			}
			err := event.Payload.Err
			if event.Type == pubsub.ReloadedEvent {
				err = renderToFile(cmd, path, event.Payload.Text, out, language, opts)
			}
			if err != nil {
				// Keep watching; the next save may fix it.
				log.ErrorErr(log.CatWatcher, "re-render failed", err, "path", path)
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		}
	}
}

func renderToFile(cmd *cobra.Command, path, text, out, language string, opts highlight.Options) error {
	page, err := render(cmd, text, language, path, "html", true, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil { //nolint:gosec // G306: rendered HTML is meant to be shared
		return fmt.Errorf("writing %s: %w", out, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rendered %s -> %s\n", path, out)
	return nil
}
