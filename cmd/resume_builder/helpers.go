package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/i18n"
	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// loadCLIConfig combines the config file (if any), environment variables,
// and built-in defaults. Precedence: env > file > defaults.
func loadCLIConfig() (config.Config, error) {
	cfg := config.Config{}
	if rootConfigFile != "" {
		loaded, err := config.LoadConfig(rootConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	if rootVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// loadResumeFile validates a resume JSON file against the schema and
// unmarshals it.
func loadResumeFile(path string) (*types.Resume, error) {
	if err := schemas.ValidateResumeFile(path); err != nil {
		return nil, fmt.Errorf("resume file %s failed validation: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	var r types.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return &r, nil
}

// buildExporter wires the full export pipeline from configuration.
func buildExporter(cfg config.Config, log *logrus.Logger) (*export.Exporter, error) {
	bundle, err := i18n.Load(cfg.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}
	if cfg.ChromePath != "" {
		if err := os.Setenv("CHROME_PATH", cfg.ChromePath); err != nil {
			return nil, fmt.Errorf("failed to set browser path: %w", err)
		}
	}
	renderer := rendering.NewRenderer(cfg.TemplatesDir, bundle, rendering.NewMemoryTemplateCache(), log)
	engine := pdf.NewEngine(log)
	cache := export.NewMemoryCache(cfg.CacheSize)
	return export.NewExporter(renderer, engine, cache, cfg.ExportsDir, log), nil
}

// openService connects to the database and returns a resume service backed
// by it. The caller must Close the returned DB.
func openService(ctx context.Context, cfg config.Config, log *logrus.Logger) (*resume.Service, *db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL not set and 'database_url' not configured")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := db.NewResumeStore(database)
	return resume.NewService(store, log), database, nil
}
