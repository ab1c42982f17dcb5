package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	registry "github.com/sgraildata/station-registry"
	"github.com/sgraildata/station-registry/config"
	"github.com/sgraildata/station-registry/consolidate"
	"github.com/sgraildata/station-registry/datagov"
	"github.com/sgraildata/station-registry/matcher"
	"github.com/sgraildata/station-registry/onemap"
	"github.com/sgraildata/station-registry/storage"
)

const rawMatchesFile = "raw_matches.json"

var (
	noBackfill   bool
	noCheckpoint bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch both sources and build the consolidated registry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		store, err := storage.NewStore(cfg.Output.Dir)
		if err != nil {
			return err
		}

		om := onemap.NewClient(onemap.Config{
			BaseURL:           cfg.OneMap.BaseURL,
			APIKey:            os.Getenv("ONEMAP_API_KEY"),
			RequestsPerSecond: cfg.OneMap.RequestsPerSecond,
			MaxRetries:        cfg.OneMap.MaxRetries,
			Timeout:           time.Duration(cfg.OneMap.TimeoutMS) * time.Millisecond,
		})
		dg := datagov.NewClient(datagov.Config{
			BaseURL:   cfg.DataGov.BaseURL,
			DatasetID: cfg.DataGov.DatasetID,
			Timeout:   time.Duration(cfg.DataGov.TimeoutMS) * time.Millisecond,
		})

		m, err := matcher.New(om, om, matcher.Config{
			EpsilonMeters:  cfg.Matcher.EpsilonMeters,
			FuzzyThreshold: cfg.Matcher.FuzzyThreshold,
			CodePrefixes:   cfg.Matcher.CodePrefixes,
		})
		if err != nil {
			return err
		}

		p := &registry.Pipeline{
			Exits:   dg,
			Matcher: m,
			Consolidator: consolidate.New(consolidate.Config{
				ThresholdMeters: cfg.Consolidator.ThresholdMeters,
				ExactNameMeters: cfg.Consolidator.ExactNameMeters,
			}),
		}
		if !noBackfill {
			p.Directory = om
		}
		if !noCheckpoint && cfg.Output.CheckpointFile != "" {
			cp, err := storage.LoadCheckpoint(store, cfg.Output.CheckpointFile)
			if err != nil {
				return fmt.Errorf("load checkpoint: %w", err)
			}
			p.Checkpoint = cp
		}

		res, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}

		if err := store.SaveJSON(res.RawMatches, rawMatchesFile); err != nil {
			return err
		}
		if err := store.SaveJSON(res.Stations, cfg.Output.RegistryFile); err != nil {
			return err
		}

		log.Printf("registry written to %s (%d stations, %d groups, %d unmatched, %d backfilled)",
			store.Path(cfg.Output.RegistryFile), len(res.Stations), res.Groups, res.Unmatched, res.Backfilled)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&noBackfill, "no-backfill", false, "skip the OneMap scan for stations missing from the exits feed")
	buildCmd.Flags().BoolVar(&noCheckpoint, "no-checkpoint", false, "ignore and do not write the resume checkpoint")
}
