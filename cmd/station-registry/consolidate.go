package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sgraildata/station-registry/config"
	"github.com/sgraildata/station-registry/consolidate"
	"github.com/sgraildata/station-registry/station"
	"github.com/sgraildata/station-registry/storage"
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Re-run consolidation over the saved raw matches",
	Long: `Replays the merge stage from the raw_matches.json artifact of a previous
build, without touching the network. Useful after changing consolidator
thresholds.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		store, err := storage.NewStore(cfg.Output.Dir)
		if err != nil {
			return err
		}

		var matches []station.RawMatch
		if err := store.LoadJSON(&matches, rawMatchesFile); err != nil {
			return err
		}

		c := consolidate.New(consolidate.Config{
			ThresholdMeters: cfg.Consolidator.ThresholdMeters,
			ExactNameMeters: cfg.Consolidator.ExactNameMeters,
		})
		stations := c.Consolidate(matches)

		if err := store.SaveJSON(stations, cfg.Output.RegistryFile); err != nil {
			return err
		}
		log.Printf("consolidated %d matches into %d stations", len(matches), len(stations))
		return nil
	},
}
