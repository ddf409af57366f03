package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/gdesim/internal/analysis"
	"github.com/san-kum/gdesim/internal/export"
	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/storage"
	"github.com/san-kum/gdesim/internal/viz"
)

var (
	svgOut    string
	svgWidth  int
	svgHeight int
)

// runCommands are the commands that read the run store.
func runCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot initial and final profiles of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "profile moments and effective diffusion coefficient",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run profiles as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	return []*cobra.Command{listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tEND\tDT\tPOINTS\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%gs\t%gs\t%d\t%d\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Time,
			run.Dt,
			run.Points,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}
	if len(profile.Z) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("points: %d\n\n", len(profile.Z))

	fmt.Println(viz.PlotProfiles("concentration: initial (green) / final (cyan)", 80, 12, profile.Initial, profile.Final))
	fmt.Println()
	fmt.Println(viz.PlotProfiles("diffusion coefficient [m²/s]", 80, 8, profile.Coefficient))

	snaps, err := st.LoadSnapshots(args[0])
	if err != nil || len(snaps) < 2 {
		return nil
	}
	peaks := make([]float64, len(snaps))
	for i, snap := range snaps {
		peaks[i] = snap.Profile.Max()
	}
	fmt.Println()
	fmt.Println(viz.PlotProfiles(fmt.Sprintf("peak concentration over %d snapshots", len(snaps)), 80, 8, peaks))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}
	g, err := field.NewGrid(profile.Z)
	if err != nil {
		return err
	}

	before := analysis.ComputeMoments(g, profile.Initial)
	after := analysis.ComputeMoments(g, profile.Final)
	elapsed := float64(meta.Steps) * meta.Dt

	fmt.Printf("profile analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s, %d steps, %g s\n\n", meta.Mode, meta.Steps, elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tINITIAL\tFINAL")
	fmt.Fprintf(w, "dose\t%.6g\t%.6g\n", before.Dose, after.Dose)
	fmt.Fprintf(w, "centroid [m]\t%.6g\t%.6g\n", before.Centroid, after.Centroid)
	fmt.Fprintf(w, "rms width [m]\t%.6g\t%.6g\n", before.Width, after.Width)
	if err := w.Flush(); err != nil {
		return err
	}

	dEff := analysis.EffectiveCoefficient(before, after, elapsed)
	dMax := field.Profile(profile.Coefficient).Max()
	fmt.Printf("\neffective D: %.6g m²/s\n", dEff)
	fmt.Printf("diffusion length at max D: %.6g m\n", analysis.DiffusionLength(dMax, elapsed))

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for _, name := range sortedKeys(meta.Metrics) {
			fmt.Printf("  %s: %.6g\n", name, meta.Metrics[name])
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	profile, err := storage.New(dataDir).LoadProfile(args[0])
	if err != nil {
		return err
	}

	svg := export.ProfilesToSVG(profile.Z, []export.Series{
		{Label: "initial", Color: "#00ff88", Values: profile.Initial},
		{Label: "final", Color: "#00ccff", Values: profile.Final},
	}, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	out := svgOut
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
