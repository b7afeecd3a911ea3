package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mapstack/geoviz-cli/internal/mapspec"
	"github.com/mapstack/geoviz-cli/internal/render"
	"github.com/mapstack/geoviz-cli/internal/viz"
)

var (
	renderMapPath string
	renderOut     string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a map document to GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		v, err := buildSession(ctx, renderMapPath)
		if err != nil {
			return err
		}

		out := renderOut
		if out == "" {
			out = cfg.Render.Out
		}

		f, err := os.Create(out)
		if err != nil {
			return eris.Wrapf(err, "create %s", out)
		}
		defer f.Close()

		if err := v.Render(ctx, render.NewGeoJSON(f)); err != nil {
			return err
		}

		zap.L().Info("map rendered",
			zap.String("out", out),
			zap.Int("layers", len(v.Layers())),
		)
		return nil
	},
}

// buildSession loads the map document and builds every declared layer.
func buildSession(ctx context.Context, mapPath string) (*viz.Visualizer, error) {
	doc, err := mapspec.Load(mapPath)
	if err != nil {
		return nil, err
	}

	v := viz.New()
	if err := v.AddAll(ctx, doc.Layers, cfg.Build.Concurrency); err != nil {
		return nil, err
	}
	if err := v.ApplyExtent(doc.Extent); err != nil {
		return nil, err
	}

	for _, rep := range v.Reports() {
		for _, recErr := range rep.RecordErrors {
			zap.L().Warn("record skipped",
				zap.String("layer", rep.Layer),
				zap.Error(recErr),
			)
		}
	}

	return v, nil
}

func init() {
	renderCmd.Flags().StringVar(&renderMapPath, "map", "", "map document (YAML)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output file (default from config)")
	renderCmd.MarkFlagRequired("map")
	rootCmd.AddCommand(renderCmd)
}
