package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/prism/internal/highlight"
	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/theme"
	"github.com/zjrosen/prism/internal/tracing"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [file|-]",
	Short: "Render a source file as HTML markup or terminal colors",
	Long: `Render a source file (or stdin) with syntax highlighting.

HTML output wraps typed tokens in spans classed "<theme>-token <type>" and
joins lines with <br/>. Search matches are wrapped in a searchHighlight
span. The language tag "unknown" skips tokenization.

Example:
  prism highlight main.go --format ansi
  prism highlight app.tsx --search useState --standalone > app.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHighlight,
}

var (
	highlightLanguage      string
	highlightSearch        string
	highlightCaseSensitive bool
	highlightTheme         string
	highlightFormat        string
	highlightStandalone    bool
)

func init() {
	rootCmd.AddCommand(highlightCmd)

	highlightCmd.Flags().StringVarP(&highlightLanguage, "language", "l", "", "language tag (default: from file extension)")
	highlightCmd.Flags().StringVarP(&highlightSearch, "search", "s", "", "highlight occurrences of this literal term")
	highlightCmd.Flags().BoolVar(&highlightCaseSensitive, "case-sensitive", false, "match the search term case-sensitively (default: from config)")
	highlightCmd.Flags().StringVarP(&highlightTheme, "theme", "t", "", "theme name (default: from config)")
	highlightCmd.Flags().StringVarP(&highlightFormat, "format", "f", "html", "output format: html or ansi")
	highlightCmd.Flags().BoolVar(&highlightStandalone, "standalone", false, "wrap HTML output in a page with the theme stylesheet")
}

// renderOptions merges flags over config defaults.
func renderOptions(cmd *cobra.Command, themeFlag, search string, caseSensitive bool) (highlight.Options, error) {
	opts := highlight.Options{
		Search:        search,
		CaseSensitive: cfg.Search.CaseSensitive,
		Theme:         cfg.ThemeName(),
		Palettes:      palettes,
	}
	if cmd.Flags().Changed("case-sensitive") {
		opts.CaseSensitive = caseSensitive
	}
	if themeFlag != "" {
		name, err := theme.ParseStrict(themeFlag)
		if err != nil {
			return opts, err
		}
		opts.Theme = name
	}
	return opts, nil
}

func runHighlight(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions(cmd, highlightTheme, highlightSearch, highlightCaseSensitive)
	if err != nil {
		return err
	}
	text, path, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	language := resolveLanguage(highlightLanguage, path)

	out, err := render(cmd, text, language, path, highlightFormat, highlightStandalone, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// render produces highlighted output for text in format.
func render(cmd *cobra.Command, text, language, path, format string, standalone bool, opts highlight.Options) (string, error) {
	_, span := tracing.Start(cmd.Context(), provider.Tracer(), tracing.SpanHighlight,
		attribute.String(tracing.AttrLanguage, language),
		attribute.String(tracing.AttrTheme, string(opts.Theme)),
		attribute.Int(tracing.AttrInputBytes, len(text)),
		attribute.Int(tracing.AttrLines, lexer.LineCount(text)),
		attribute.Bool(tracing.AttrSearch, opts.Search != ""),
	)
	defer tracing.End(span, nil)

	hl := newHighlighter()
	switch format {
	case "html":
		markup := hl.SyntaxHighlight(text, language, opts)
		if standalone {
			title := "prism"
			if path != "" {
				title = filepath.Base(path)
			}
			return opts.Palettes.Document(opts.Theme, title, markup), nil
		}
		return markup, nil
	case "ansi":
		return hl.ANSI(text, language, opts), nil
	default:
		return "", fmt.Errorf("unknown format %q (want html or ansi)", format)
	}
}
