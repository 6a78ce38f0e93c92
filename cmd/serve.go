package cmd

import (
	"github.com/spf13/cobra"

	"github.com/beeport/incentiviz/api"
	"github.com/beeport/incentiviz/config"
	"github.com/beeport/incentiviz/log"
	"github.com/beeport/incentiviz/orm"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP for interactive viewing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			logger := log.NewLogger(cfg)

			db, err := orm.OpenDB(cfg.GetDBConfig(), logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Migrate(); err != nil {
				return err
			}

			return api.New(cfg, logger, db).Start()
		},
	}

	return cmd
}
