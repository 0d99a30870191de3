package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/i18n"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes and locales",
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	resolver := rendering.NewResolver(cfg.TemplatesDir)
	themes := resolver.ListThemes()
	if len(themes) == 0 {
		return fmt.Errorf("no themes found in %s", cfg.TemplatesDir)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Themes:\n")
	for _, theme := range themes {
		_, _ = fmt.Fprintf(os.Stdout, "  %s\n", theme)
	}

	bundle, err := i18n.Load(cfg.LocalesDir)
	if err != nil {
		return fmt.Errorf("failed to load locales: %w", err)
	}
	locales := bundle.Locales()
	if len(locales) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Locales:\n")
		for _, locale := range locales {
			_, _ = fmt.Fprintf(os.Stdout, "  %s\n", locale)
		}
	}

	return nil
}
