package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var bulkExportCmd = &cobra.Command{
	Use:   "bulk-export [resume.json ...]",
	Short: "Export multiple resumes into a zip archive",
	Long:  "Exports each resume JSON file to PDF and packages the artifacts into a single zip archive in the exports directory.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBulkExport,
}

var (
	bulkTheme     string
	bulkLocale    string
	bulkWatermark bool
	bulkBrand     string
)

func init() {
	bulkExportCmd.Flags().StringVarP(&bulkTheme, "theme", "t", "", "Theme to render with (default from config)")
	bulkExportCmd.Flags().StringVarP(&bulkLocale, "locale", "l", "", "Locale to render with (default from config)")
	bulkExportCmd.Flags().BoolVarP(&bulkWatermark, "watermark", "w", false, "Stamp the watermark text on every page")
	bulkExportCmd.Flags().StringVar(&bulkBrand, "brand", "", "Brand prefix for archive member names")

	rootCmd.AddCommand(bulkExportCmd)
}

func runBulkExport(_ *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	exporter, err := buildExporter(cfg, log)
	if err != nil {
		return err
	}

	docs := make([]*types.Resume, 0, len(args))
	for _, path := range args {
		doc, err := loadResumeFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	opts := export.DefaultOptions()
	opts.Theme = cfg.Theme
	opts.Locale = cfg.Locale
	if bulkTheme != "" {
		opts.Theme = bulkTheme
	}
	if bulkLocale != "" {
		opts.Locale = bulkLocale
	}
	opts.Watermark = bulkWatermark
	opts.WatermarkText = cfg.WatermarkText
	opts.Brand = bulkBrand

	archive, err := exporter.GenerateBulk(context.Background(), docs, opts)
	if err != nil {
		return fmt.Errorf("bulk export failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully exported %d resumes\n", len(docs))
	_, _ = fmt.Fprintf(os.Stdout, "Archive: %s\n", archive)
	return nil
}
