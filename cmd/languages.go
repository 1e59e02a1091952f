package cmd

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/prism/internal/config"
	"github.com/zjrosen/prism/internal/lexer"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their tags",
	Long: `List every language with a rule set and the tags that select it.

Use --map to persist file extension overrides in the config file.

Example:
  prism languages
  prism languages --map .mc="monkey c" --map .h=c++`,
	Args: cobra.NoArgs,
	RunE: runLanguages,
}

var languagesMap []string

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().StringArrayVar(&languagesMap, "map", nil, "save an extension override, ext=tag (repeatable)")
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	if len(languagesMap) > 0 {
		return saveExtensionMap(cmd)
	}

	out := cmd.OutOrStdout()
	for _, l := range lexer.Languages() {
		tags := l.Tags()
		if _, err := fmt.Fprintf(out, "%-12s %s\n", tags[0], strings.Join(tags[1:], ", ")); err != nil {
			return err
		}
	}
	return nil
}

func saveExtensionMap(cmd *cobra.Command) error {
	extensions := maps.Clone(cfg.Extensions)
	if extensions == nil {
		extensions = map[string]string{}
	}

	for _, entry := range languagesMap {
		ext, tag, ok := strings.Cut(entry, "=")
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !ok || ext == "" {
			return fmt.Errorf("invalid --map %q: want ext=tag", entry)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = strings.TrimSpace(tag)
	}

	if err := config.ValidateExtensions(extensions); err != nil {
		return err
	}

	path := configPath()
	if err := config.SaveExtensions(path, extensions); err != nil {
		return fmt.Errorf("saving extensions: %w", err)
	}
	cfg.Extensions = extensions

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved %d extension override(s) to %s\n", len(extensions), path)
	return err
}
