package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume to PDF or PNG",
	Long:  "Renders a resume JSON file through its theme template and converts it to a PDF or PNG artifact in the exports directory.",
	RunE:  runExport,
}

var (
	exportResumeFile string
	exportFormat     string
	exportTheme      string
	exportLocale     string
	exportWatermark  bool
	exportLogo       string
	exportBrand      string
	exportLandscape  bool
	exportRTL        bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf or png")
	exportCmd.Flags().StringVarP(&exportTheme, "theme", "t", "", "Theme to render with (default from config)")
	exportCmd.Flags().StringVarP(&exportLocale, "locale", "l", "", "Locale to render with (default from config)")
	exportCmd.Flags().BoolVarP(&exportWatermark, "watermark", "w", false, "Stamp the watermark text on every page")
	exportCmd.Flags().StringVar(&exportLogo, "logo", "", "Path to a logo image stamped on the first page")
	exportCmd.Flags().StringVar(&exportBrand, "brand", "", "Footer brand text injected into the document")
	exportCmd.Flags().BoolVar(&exportLandscape, "landscape", false, "Use landscape page orientation")
	exportCmd.Flags().BoolVar(&exportRTL, "rtl", false, "Render with right-to-left direction")
	_ = exportCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	doc, err := loadResumeFile(exportResumeFile)
	if err != nil {
		return err
	}

	exporter, err := buildExporter(cfg, log)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Format = exportFormat
	opts.Theme = cfg.Theme
	opts.Locale = cfg.Locale
	if exportTheme != "" {
		opts.Theme = exportTheme
	}
	if exportLocale != "" {
		opts.Locale = exportLocale
	}
	opts.Watermark = exportWatermark
	opts.WatermarkText = cfg.WatermarkText
	opts.Logo = exportLogo
	opts.Brand = exportBrand
	opts.RTL = exportRTL
	if exportLandscape {
		opts.Orientation = pdf.OrientationLandscape
	}

	path, err := exporter.Generate(context.Background(), doc, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully exported resume\n")
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", path)
	return nil
}
