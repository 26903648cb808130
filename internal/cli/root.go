// Package cli implements the fgctl admin commands for the formgate data
// backend: seeding sample data, cleaning it up, and inspecting lookup
// tables.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitlabs/formgate/internal/storeclient"
)

var (
	supabaseURL string
	serviceKey  string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "fgctl",
	Short: "formgate admin CLI",
	Long: `fgctl is the admin command-line interface for the formgate backend.

Seed local development data, clean it up again, and inspect the lookup
tables the webhook pipeline resolves against.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&supabaseURL, "supabase-url", "", "data API base URL (default: $FORMGATE_SUPABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&serviceKey, "service-key", "", "data API service credential (default: $FORMGATE_SUPABASE_SERVICE_KEY)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")
}

// newStoreClient resolves credentials from flags or environment and fails
// with a usage error when neither is set.
func newStoreClient() (*storeclient.Client, error) {
	url := supabaseURL
	if url == "" {
		url = os.Getenv("FORMGATE_SUPABASE_URL")
	}
	key := serviceKey
	if key == "" {
		key = os.Getenv("FORMGATE_SUPABASE_SERVICE_KEY")
	}

	if url == "" || key == "" {
		return nil, fmt.Errorf("set --supabase-url and --service-key (or FORMGATE_SUPABASE_URL and FORMGATE_SUPABASE_SERVICE_KEY)")
	}

	return storeclient.New(url, key, timeout), nil
}
