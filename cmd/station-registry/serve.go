package main

import (
	"github.com/spf13/cobra"

	registry "github.com/sgraildata/station-registry"
	"github.com/sgraildata/station-registry/config"
	"github.com/sgraildata/station-registry/station"
	"github.com/sgraildata/station-registry/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a previously built registry over HTTP",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		store, err := storage.NewStore(cfg.Output.Dir)
		if err != nil {
			return err
		}

		var stations []station.Consolidated
		if err := store.LoadJSON(&stations, cfg.Output.RegistryFile); err != nil {
			return err
		}

		srv := registry.NewServer(cfg.Server.Port, stations)
		srv.Start()
		srv.WaitForShutdown()
		return nil
	},
}
