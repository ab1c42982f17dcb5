// Command station-registry builds and serves the canonical Singapore rail
// station registry.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	registry "github.com/sgraildata/station-registry"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "station-registry",
	Short: "Canonical Singapore rail station registry builder",
	Long: `station-registry reconciles the data.gov.sg station-exits dataset with
the OneMap place directory into a deduplicated station registry: each
physical station once, with all of its line codes and normalized exits.`,
	SilenceUsage: true,
}

func main() {
	// A missing .env is fine; the OneMap key is optional.
	_ = godotenv.Load()
	registry.InitLogging()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "path to the configuration file")
	rootCmd.AddCommand(buildCmd, consolidateCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
