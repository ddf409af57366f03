package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/gdesim/internal/config"
	"github.com/san-kum/gdesim/internal/experiment"
	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/metrics"
	"github.com/san-kum/gdesim/internal/sim"
	"github.com/san-kum/gdesim/internal/storage"
	"github.com/san-kum/gdesim/internal/viz"
)

var (
	dataDir string
	verbose bool
	logger  = slog.Default()

	dt              float64
	coeff           float64
	tFinal          float64
	mode            string
	configFile      string
	preset          string
	inputFile       string
	coefficientFile string
	outputFile      string
	snapshotEvery   int
	metricsFile     string
	noSave          bool

	stepsPerFrame int
	sweepDts      []float64
)

// main registers the commands and exits with status 1 if the selected one
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "gdesim",
		Short:        "general diffusion equation simulator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gdesim", "run store directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "diffuse the profile in x.r and write X.r",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run in the store")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal plot",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 1, "updates applied per frame")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "repeat a run over several time steps",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", nil, "time steps to try [s]")
	_ = sweepCmd.MarkFlagRequired("dts")

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets for a mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for mode: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list coefficient modes and time-dependent update laws",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			r := experiment.NewRegistry()
			fmt.Printf("modes: %s\n", strings.Join(r.ListModels(), ", "))
			fmt.Printf("laws:  %s\n", strings.Join(r.ListLaws(), ", "))
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, presetsCmd, modesCmd)
	rootCmd.AddCommand(runCommands()...)
	rootCmd.AddCommand(efxvCommand(), poissonCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step [s]")
	cmd.Flags().Float64Var(&coeff, "coeff", config.DefaultCoeff, "constant diffusion coefficient [Å²/s]")
	cmd.Flags().Float64Var(&tFinal, "time", config.DefaultTime, "end time [s]")
	cmd.Flags().StringVar(&mode, "mode", config.DefaultMode, "coefficient mode: constant, file, concentration-dependent, depth-dependent or time")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration of the selected mode")
	cmd.Flags().StringVar(&inputFile, "input", config.DefaultInput, "initial concentration table")
	cmd.Flags().StringVar(&coefficientFile, "coefficient-file", config.DefaultCoefficientFile, "diffusion coefficient table for file and time modes")
	cmd.Flags().StringVar(&outputFile, "output", config.DefaultOutput, "final concentration table")
	cmd.Flags().IntVar(&snapshotEvery, "snapshot-every", 0, "record the profile every n steps")
}

// buildConfig layers preset, config file and explicitly set flags, in that
// order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(mode, preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset: %s (available: %v)", field.ErrConfiguration, preset, config.ListPresets(mode))
		}
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("coeff") {
		cfg.Coeff = coeff
	}
	if flags.Changed("time") {
		cfg.Time = tFinal
	}
	if flags.Changed("input") {
		cfg.Input = inputFile
	}
	if flags.Changed("coefficient-file") {
		cfg.CoefficientFile = coefficientFile
	}
	if flags.Changed("output") {
		cfg.Output = outputFile
	}
	if flags.Changed("snapshot-every") {
		cfg.SnapshotEvery = snapshotEvery
	}

	logger.Debug("configuration", "mode", cfg.Mode, "dt", cfg.Dt, "time", cfg.Time, "coeff", cfg.Coeff, "params", cfg.Params)
	return cfg, nil
}

func setup(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp := experiment.New(cfg, experiment.WithLogger(logger))
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	var collector *metrics.Collector
	if metricsFile != "" {
		collector = metrics.NewCollector(exp.Grid(), cfg.Mode)
		exp.GetSimulator().AddObserver(collector)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s diffusion...\n", cfg.Mode)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		var se *field.StabilityError
		if errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "reduce dt below %g s or lower the diffusion coefficient\n", se.DtMax)
		}
		return err
	}
	elapsed := time.Since(start)

	runID := "-"
	if !noSave {
		if runID, err = saveRun(exp, result); err != nil {
			return err
		}
	}

	if collector != nil {
		if err := collector.WriteToTextfile(metricsFile); err != nil {
			return err
		}
	}

	// written last so a failed run emits nothing
	if err := storage.WriteTable(cfg.Output, exp.Grid().Positions(), result.Final); err != nil {
		return err
	}

	rows := []viz.Row{
		{Label: "Run", Value: runID},
		{Label: "Output", Value: cfg.Output},
		{Label: "Points", Value: fmt.Sprintf("%d", exp.Grid().Len())},
		{Label: "Steps", Value: fmt.Sprintf("%d", result.Steps)},
		{Label: "Sim time", Value: fmt.Sprintf("%g s", result.Time)},
		{Label: "Wall time", Value: elapsed.String()},
	}
	for _, name := range sortedKeys(result.Metrics) {
		rows = append(rows, viz.Row{Label: name, Value: fmt.Sprintf("%.6g", result.Metrics[name])})
	}
	fmt.Println(viz.RenderSummary(strings.ToUpper(cfg.Mode), rows))
	return nil
}

func saveRun(exp *experiment.Experiment, result *sim.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}

	cfg := exp.Config()
	meta := storage.RunMetadata{
		Mode:  cfg.Mode,
		Input: cfg.Input,
		Dt:    cfg.Dt,
		Time:  cfg.Time,
		Coeff: cfg.Coeff,
		Dz:    exp.Grid().Dz(),
	}
	if c, ok := exp.Model().(sim.Configurable); ok {
		meta.Params = c.GetParams()
	}
	return st.Save(meta, exp.Grid().Positions(), result)
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}
	sess, err := exp.Start()
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(viz.NewLiveModel(sess, exp.Config().Mode, stepsPerFrame), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if lm, ok := final.(viz.LiveModel); ok && lm.Err() != nil {
		return lm.Err()
	}

	if sess.Done() {
		return storage.WriteTable(exp.Config().Output, exp.Grid().Positions(), sess.Profile())
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	exp, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := exp.Sweep(ctx, sweepDts)
	if err != nil {
		return err
	}

	fmt.Printf("sweep of %s over %d time steps\n\n", exp.Config().Mode, len(results))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tPEAK\tSPREAD\tDOSE DRIFT\tSTATUS")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%g\t-\t-\t-\t-\t%v\n", r.Dt, r.Err)
			continue
		}
		m := r.Result.Metrics
		fmt.Fprintf(w, "%g\t%d\t%.4g\t%.4g\t%.2e\tok\n", r.Dt, r.Result.Steps, m["peak"], m["spread"], m["dose_drift"])
	}
	return w.Flush()
}
