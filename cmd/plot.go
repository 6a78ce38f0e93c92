package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/beeport/incentiviz/config"
	"github.com/beeport/incentiviz/log"
	"github.com/beeport/incentiviz/orm"
	"github.com/beeport/incentiviz/plot"
	"github.com/beeport/incentiviz/store"
	"github.com/beeport/incentiviz/types"
)

func plotCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the storage incentives dashboard to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			logger := log.NewLogger(cfg)

			if output == "" {
				output = cfg.GetChartConfig().ExportPath
			}

			return runPlot(cmd.Context(), cfg, logger, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "export file path (default EXPORT_PATH)")

	return cmd
}

func runPlot(ctx context.Context, cfg *config.Config, logger *slog.Logger, output string) error {
	db, err := orm.OpenDB(cfg.GetDBConfig(), logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		return err
	}

	queryCtx, cancel := context.WithTimeout(ctx, cfg.GetQueryTimeout())
	defer cancel()

	st := store.New(db, logger)
	dash, err := plot.BuildDashboard(queryCtx, st, plot.DefaultCatalog(cfg.GetFreezeBuckets()), logger)
	if err != nil {
		return err
	}
	dash.Title = "Storage Incentives Metrics"
	dash.Subtitle = fmt.Sprintf("Database: %s", cfg.GetDBName())

	cc := cfg.GetChartConfig()
	f, err := os.Create(output)
	if err != nil {
		return types.NewExportError(output, err)
	}

	renderErr := dash.Render(f, plot.RenderOptions{
		Width:  cc.Width,
		Height: cc.Height,
		Scale:  float64(cc.ExportScale),
	})
	closeErr := f.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return types.NewExportError(output, closeErr)
	}

	logger.Info("dashboard exported",
		slog.String("path", output),
		slog.Int("scale", cc.ExportScale))
	return nil
}
