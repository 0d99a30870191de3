package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate",
	Short: "Duplicate a resume as a fresh document",
	Long:  "Copies an existing resume under a new ID with a unique slug. The copy starts with no version history or generated files.",
	RunE:  runDuplicate,
}

var (
	duplicateID     string
	duplicateStatus string
)

func init() {
	duplicateCmd.Flags().StringVar(&duplicateID, "id", "", "Resume UUID to duplicate (required)")
	duplicateCmd.Flags().StringVarP(&duplicateStatus, "status", "s", "draft", "Status for the copy: draft, published, or archived")
	_ = duplicateCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(duplicateCmd)
}

func runDuplicate(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	id, err := uuid.Parse(duplicateID)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}

	ctx := context.Background()
	service, database, err := openService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	dup, err := service.Duplicate(ctx, id, duplicateStatus)
	if err != nil {
		return fmt.Errorf("failed to duplicate resume: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully duplicated resume\n")
	_, _ = fmt.Fprintf(os.Stdout, "ID:   %s\n", dup.ID)
	_, _ = fmt.Fprintf(os.Stdout, "Slug: %s\n", dup.Slug)
	return nil
}
