package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/prism/internal/pubsub"
	"github.com/zjrosen/prism/internal/viewer"
	"github.com/zjrosen/prism/internal/watcher"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse a highlighted file in the terminal",
	Long: `Open a source file in a scrollable, highlighted terminal view that
reloads when the file changes.

Keys: j/k scroll, pgup/pgdn page, g/G top/bottom, / search, n toggle case,
t cycle theme, l line numbers, ? help, q quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

var (
	viewLanguage string
	viewTheme    string
	viewNoWatch  bool
)

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVarP(&viewLanguage, "language", "l", "", "language tag (default: from file extension)")
	viewCmd.Flags().StringVarP(&viewTheme, "theme", "t", "", "theme name (default: from config)")
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "do not reload the file when it changes")
}

func runView(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions(cmd, viewTheme, "", false)
	if err != nil {
		return err
	}

	path := filepath.Clean(args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	viewCfg := viewer.Config{
		Title:         path,
		Text:          string(data),
		Language:      resolveLanguage(viewLanguage, path),
		Theme:         opts.Theme,
		Palettes:      opts.Palettes,
		TabWidth:      cfg.Viewer.TabWidth,
		LineNumbers:   cfg.Viewer.LineNumbers,
		CaseSensitive: opts.CaseSensitive,
		Highlighter:   newHighlighter(),
	}

	if !viewNoWatch {
		w, err := watcher.New(watcher.Config{Path: path, Debounce: cfg.Watch.Debounce})
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		changes, err := w.Start()
		if err != nil {
			return err
		}

		broker := pubsub.NewBroker[watcher.Content]()
		defer broker.Close()
		viewCfg.Reloads = broker

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go watcher.Reload(ctx, path, changes, broker)
	}

	p := tea.NewProgram(viewer.New(viewCfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
