package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/prism/internal/config"
	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes [name]",
	Short: "List themes, preview one, or print its stylesheet",
	Long: `Without arguments, list the built-in themes. With a theme name, show a
color preview of every token class, or print the theme's CSS with --css.

Example:
  prism themes
  prism themes dark --css > dark.css
  prism themes light --set`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThemes,
}

var (
	themesCSS bool
	themesSet bool
)

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().BoolVar(&themesCSS, "css", false, "print the theme stylesheet")
	themesCmd.Flags().BoolVar(&themesSet, "set", false, "make the theme the configured default")
}

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if themesCSS || themesSet {
			return fmt.Errorf("--css and --set need a theme name")
		}
		current := cfg.ThemeName()
		for _, name := range theme.Names {
			marker := " "
			if name == current {
				marker = "*"
			}
			if _, err := fmt.Fprintf(out, "%s %-8s %s\n", marker, name, palettes.Get(name).Description); err != nil {
				return err
			}
		}
		return nil
	}

	name, err := theme.ParseStrict(args[0])
	if err != nil {
		return err
	}

	switch {
	case themesSet:
		path := configPath()
		if err := config.SaveTheme(path, string(name)); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}
		cfg.Theme = string(name)
		_, err = fmt.Fprintf(out, "theme set to %s in %s\n", name, path)
		return err
	case themesCSS:
		_, err = fmt.Fprint(out, palettes.Stylesheet(name))
		return err
	default:
		for _, typ := range lexer.Types() {
			swatch := palettes.Style(typ, name).Render(string(typ))
			if _, err := fmt.Fprintf(out, "%-16s %s %s\n", typ, palettes.Color(typ, name), swatch); err != nil {
				return err
			}
		}
		return nil
	}
}
