package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the version history of a resume",
	RunE:  runVersions,
}

var (
	versionsID      string
	versionsSave    bool
	versionsComment string
)

func init() {
	versionsCmd.Flags().StringVar(&versionsID, "id", "", "Resume UUID (required)")
	versionsCmd.Flags().BoolVar(&versionsSave, "save", false, "Record a new version snapshot before listing")
	versionsCmd.Flags().StringVarP(&versionsComment, "comment", "m", "", "Comment for the new version (with --save)")
	_ = versionsCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(versionsCmd)
}

func runVersions(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	id, err := uuid.Parse(versionsID)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}

	ctx := context.Background()
	service, database, err := openService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	if versionsSave {
		if _, err := service.AddVersion(ctx, id, versionsComment); err != nil {
			return fmt.Errorf("failed to save version: %w", err)
		}
	}

	doc, err := service.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	if len(doc.Versions) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Resume %s has no versions\n", doc.ID)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Versions of %s (%d):\n", doc.ID, len(doc.Versions))
	for _, version := range doc.Versions {
		line := fmt.Sprintf("  %s  %s", version.ID, version.CreatedAt.Format("2006-01-02 15:04:05"))
		if version.Comment != "" {
			line += "  " + version.Comment
		}
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
