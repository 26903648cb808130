package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var serviceTypesCmd = &cobra.Command{
	Use:   "service-types",
	Short: "List the service types the pipeline resolves against",
	RunE:  runServiceTypes,
}

func init() {
	rootCmd.AddCommand(serviceTypesCmd)
}

func runServiceTypes(cmd *cobra.Command, args []string) error {
	store, err := newStoreClient()
	if err != nil {
		return err
	}

	rows, err := store.Select(context.Background(), "service_types", "id,slug,name", nil)
	if err != nil {
		return fmt.Errorf("list service types: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("no service types found (run 'fgctl seed' to create them)")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%-6s %-20s %s\n", bold("ID"), bold("SLUG"), bold("NAME"))
	for _, row := range rows {
		fmt.Printf("%-6v %-20v %v\n", row["id"], row["slug"], row["name"])
	}
	return nil
}
