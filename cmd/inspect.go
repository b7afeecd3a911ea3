package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mapstack/geoviz-cli/internal/viz"
)

var inspectMapPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Build a map document and report layer statistics without rendering",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := buildSession(cmd.Context(), inspectMapPath)
		if err != nil {
			return err
		}

		formatInspect(os.Stdout, v)
		return nil
	},
}

func formatInspect(out io.Writer, v *viz.Visualizer) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Z\tLAYER\tFEATURES\tSKIPPED\tEXTENTS")
	_, _ = fmt.Fprintln(w, "-\t-----\t--------\t-------\t-------")

	reports := v.Reports()
	for i, l := range v.Layers() {
		extents := "(empty)"
		if b := l.Extents(); b != nil {
			extents = fmt.Sprintf("[%.4f, %.4f] .. [%.4f, %.4f]", b.MinLng, b.MinLat, b.MaxLng, b.MaxLat)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
			i+1, l.LayerName(), l.FeatureCount(), len(reports[i].RecordErrors), extents)
	}
	_ = w.Flush()

	if b := v.Extents(); b != nil {
		fmt.Fprintf(out, "\nMap extents: [%.4f, %.4f] .. [%.4f, %.4f]\n", b.MinLng, b.MinLat, b.MaxLng, b.MaxLat)
	}
}

func init() {
	inspectCmd.Flags().StringVar(&inspectMapPath, "map", "", "map document (YAML)")
	inspectCmd.MarkFlagRequired("map")
	rootCmd.AddCommand(inspectCmd)
}
