package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanupDraftsCmd = &cobra.Command{
	Use:   "cleanup-drafts",
	Short: "Delete stale draft resumes",
	Long:  "Soft-deletes draft resumes that have not been updated within the retention window.",
	RunE:  runCleanupDrafts,
}

var cleanupDraftsDays int

func init() {
	cleanupDraftsCmd.Flags().IntVarP(&cleanupDraftsDays, "days", "d", 30, "Delete drafts not updated in this many days")

	rootCmd.AddCommand(cleanupDraftsCmd)
}

func runCleanupDrafts(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if cleanupDraftsDays <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	ctx := context.Background()
	service, database, err := openService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	deleted, err := service.CleanupDrafts(ctx, cleanupDraftsDays)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully cleaned up %d stale drafts\n", deleted)
	return nil
}
