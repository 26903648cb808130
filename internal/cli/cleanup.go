package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/orbitlabs/formgate/internal/seeder"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove rows created by 'fgctl seed'",
	Long:  `Delete all inquiries and newsletter signups tagged with source '` + seeder.SeedTag + `'.`,
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	store, err := newStoreClient()
	if err != nil {
		return err
	}
	ctx := context.Background()
	filter := map[string]string{"source": seeder.SeedTag}

	inquiries, err := store.Delete(ctx, "inquiries", filter)
	if err != nil {
		return fmt.Errorf("clean inquiries: %w", err)
	}

	signups, err := store.Delete(ctx, "newsletter_signups", filter)
	if err != nil {
		return fmt.Errorf("clean newsletter_signups: %w", err)
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s removed %d inquiries and %d newsletter signups tagged %q\n",
		yellow("cleanup"), len(inquiries), len(signups), seeder.SeedTag)
	return nil
}
