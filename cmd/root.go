package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/prism/internal/config"
	"github.com/zjrosen/prism/internal/highlight"
	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/theme"
	"github.com/zjrosen/prism/internal/tracing"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot race the input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       = config.Defaults()
	cfgErr    error
	palettes  = theme.Builtin()

	logCleanup = func() {}
	provider   = tracing.Disabled()
)

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Regex-driven source tokenizer and syntax highlighter",
	Long: `prism splits source text into classified tokens with per-language
regular expression rule sets and renders them as HTML markup or terminal
colors, optionally overlaying a search term.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		teardown()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .prism/config.yaml, then ~/.config/prism/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs to $PRISM_LOG (default: debug.log)")
}

// initConfig loads the config file. Errors surface from setup since
// cobra initializers cannot return them.
func initConfig() {
	palettes = theme.Builtin()
	cfg, cfgErr = config.Load(config.Resolve(cfgFile))
	if cfgErr != nil {
		cfg = config.Defaults()
		return
	}
	ps, err := theme.NewPalettes(cfg.Colors)
	if err != nil {
		cfgErr = fmt.Errorf("building palettes: %w", err)
		return
	}
	palettes = ps
}

func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() != initCmd.Name() && cfgErr != nil {
		return cfgErr
	}

	if debugFlag || os.Getenv("PRISM_DEBUG") != "" {
		logPath := os.Getenv("PRISM_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatConfig, "prism starting", "command", cmd.Name(), "config", config.Resolve(cfgFile))
	}

	p, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	provider = p
	return nil
}

func teardown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "Failed to flush traces", err)
	}
	provider = tracing.Disabled()

	logCleanup()
	logCleanup = func() {}
}

// newHighlighter builds a highlighter honoring the configured limits.
func newHighlighter() *highlight.Highlighter {
	return highlight.New(lexer.New(cfg.LexerOptions()))
}

// readInput returns the text named by args: a file path, "-" or nothing
// for stdin. name is the path, or "" for stdin.
func readInput(cmd *cobra.Command, args []string) (text, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}

	path := filepath.Clean(args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}

// resolveLanguage picks the --language flag when given, otherwise the
// language implied by the file name.
func resolveLanguage(flag, path string) string {
	if flag != "" {
		return flag
	}
	if path == "" {
		return lexer.Unrecognized.String()
	}
	return cfg.LanguageFor(path).String()
}

// configPath is where commands that persist settings write.
func configPath() string {
	if path := config.Resolve(cfgFile); path != "" {
		return path
	}
	return config.DefaultConfigPath
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
