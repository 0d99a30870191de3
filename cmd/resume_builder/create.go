package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a resume in the database from a JSON file",
	RunE:  runCreate,
}

var (
	createResumeFile string
	createOwnerID    string
)

func init() {
	createCmd.Flags().StringVarP(&createResumeFile, "resume", "r", "", "Path to resume JSON file (required)")
	createCmd.Flags().StringVarP(&createOwnerID, "owner-id", "u", "", "Owner UUID (required)")
	_ = createCmd.MarkFlagRequired("resume")
	_ = createCmd.MarkFlagRequired("owner-id")

	rootCmd.AddCommand(createCmd)
}

func runCreate(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ownerID, err := uuid.Parse(createOwnerID)
	if err != nil {
		return fmt.Errorf("invalid owner-id: %w", err)
	}

	doc, err := loadResumeFile(createResumeFile)
	if err != nil {
		return err
	}
	doc.OwnerID = ownerID

	ctx := context.Background()
	service, database, err := openService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	created, err := service.Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully created resume\n")
	_, _ = fmt.Fprintf(os.Stdout, "ID:   %s\n", created.ID)
	_, _ = fmt.Fprintf(os.Stdout, "Slug: %s\n", created.Slug)
	return nil
}
