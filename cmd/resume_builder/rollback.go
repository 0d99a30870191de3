package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Restore a resume to a previous version",
	Long:  "Replaces the live document content with the snapshot stored in the named version. The version history itself is preserved.",
	RunE:  runRollback,
}

var (
	rollbackID        string
	rollbackVersionID string
)

func init() {
	rollbackCmd.Flags().StringVar(&rollbackID, "id", "", "Resume UUID (required)")
	rollbackCmd.Flags().StringVar(&rollbackVersionID, "version-id", "", "Version UUID to restore (required)")
	_ = rollbackCmd.MarkFlagRequired("id")
	_ = rollbackCmd.MarkFlagRequired("version-id")

	rootCmd.AddCommand(rollbackCmd)
}

func runRollback(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	id, err := uuid.Parse(rollbackID)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	versionID, err := uuid.Parse(rollbackVersionID)
	if err != nil {
		return fmt.Errorf("invalid version-id: %w", err)
	}

	ctx := context.Background()
	service, database, err := openService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	restored, err := service.Rollback(ctx, id, versionID)
	if err != nil {
		return fmt.Errorf("failed to roll back resume: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully rolled back resume %s\n", restored.ID)
	_, _ = fmt.Fprintf(os.Stdout, "Updated: %s\n", restored.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
