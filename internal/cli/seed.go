package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/orbitlabs/formgate/internal/seeder"
)

var (
	seedInquiries        int
	seedSignups          int
	seedSkipServiceTypes bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert tagged sample data into the backend",
	Long: `Insert service types plus generated sample inquiries and newsletter
signups. Every row is tagged with source '` + seeder.SeedTag + `' so
'fgctl cleanup' can remove it again.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedInquiries, "inquiries", 3, "number of sample inquiries to insert")
	seedCmd.Flags().IntVar(&seedSignups, "signups", 2, "number of sample newsletter signups to insert")
	seedCmd.Flags().BoolVar(&seedSkipServiceTypes, "skip-service-types", false, "do not upsert the canonical service types")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	store, err := newStoreClient()
	if err != nil {
		return err
	}
	ctx := context.Background()

	green := color.New(color.FgGreen).SprintFunc()

	if !seedSkipServiceTypes {
		for _, row := range seeder.ServiceTypes() {
			// Skip slugs the backend already has so seeding stays
			// re-runnable.
			existing, err := store.Select(ctx, "service_types", "id", map[string]string{"slug": row["slug"].(string)})
			if err != nil {
				return fmt.Errorf("check service type %q: %w", row["slug"], err)
			}
			if len(existing) > 0 {
				continue
			}
			if _, err := store.Insert(ctx, "service_types", row); err != nil {
				return fmt.Errorf("insert service type %q: %w", row["slug"], err)
			}
			fmt.Printf("%s service_types %s\n", green("seeded"), row["slug"])
		}
	}

	for _, row := range seeder.Inquiries(seedInquiries) {
		inserted, err := store.Insert(ctx, "inquiries", row)
		if err != nil {
			return fmt.Errorf("insert inquiry: %w", err)
		}
		fmt.Printf("%s inquiries id=%v\n", green("seeded"), inserted["id"])
	}

	for _, row := range seeder.NewsletterSignups(seedSignups) {
		inserted, err := store.Insert(ctx, "newsletter_signups", row)
		if err != nil {
			return fmt.Errorf("insert newsletter signup: %w", err)
		}
		fmt.Printf("%s newsletter_signups id=%v\n", green("seeded"), inserted["id"])
	}

	return nil
}
