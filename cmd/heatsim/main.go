package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/heatsim/internal/analysis"
	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/export"
	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/solver"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
)

var (
	dataDir       string
	length        float64
	alpha         float64
	nodes         int
	dt            float64
	duration      float64
	initialName   string
	boundaryType  string
	leftTemp      float64
	rightTemp     float64
	recordEvery   int
	configFile    string
	preset        string
	allowUnstable bool
	autoDt        bool
	// Live view
	frameRate    int
	stepsPerTick int
	// SVG export
	snapshotIdx int
	heatmap     bool
	outFile     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heatsim",
		Short: "1-D heat conduction simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a profile or heatmap as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&snapshotIdx, "snapshot", -1, "snapshot index (default: final)")
	exportSVGCmd.Flags().BoolVar(&heatmap, "heatmap", false, "render the full space-time heatmap")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "decay analysis against the closed-form solution",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-frame", 5, "simulation steps per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the solver across grid sizes",
		RunE:  benchSolver,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, exportSVGCmd, analyzeCmd, liveCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "rod length")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "thermal diffusivity")
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "spatial node count")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "total simulated time")
	cmd.Flags().StringVar(&initialName, "initial", config.DefaultInitial, "initial temperature profile")
	cmd.Flags().StringVar(&boundaryType, "boundary", "fixed", "boundary type (fixed|insulated)")
	cmd.Flags().Float64Var(&leftTemp, "left", 0, "left fixed-end temperature")
	cmd.Flags().Float64Var(&rightTemp, "right", 0, "right fixed-end temperature")
	cmd.Flags().IntVar(&recordEvery, "record-every", 1, "snapshot recording cadence")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&allowUnstable, "allow-unstable", false, "proceed despite r > 0.5")
	cmd.Flags().BoolVar(&autoDt, "auto-dt", false, "shrink dt to the largest stable step when r > 0.5")
}

// buildConfig resolves preset, config file, and CLI flags in increasing
// precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	fl := cmd.Flags()
	if fl.Changed("length") {
		cfg.Length = length
	}
	if fl.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if fl.Changed("nodes") {
		cfg.Nodes = nodes
	}
	if fl.Changed("dt") {
		cfg.Dt = dt
	}
	if fl.Changed("time") {
		cfg.Duration = duration
	}
	if fl.Changed("initial") {
		cfg.Initial = initialName
	}
	if fl.Changed("boundary") {
		cfg.Boundary.Type = boundaryType
	}
	if fl.Changed("left") {
		v := leftTemp
		cfg.Boundary.Left = &v
	}
	if fl.Changed("right") {
		v := rightTemp
		cfg.Boundary.Right = &v
	}
	if fl.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if cfg.RecordEvery < 1 {
		cfg.RecordEvery = 1
	}
	return cfg, nil
}

// buildSolver constructs a solver from the config, resolving a stability
// warning per the --auto-dt / --allow-unstable flags.
func buildSolver(cfg *config.Config) (*solver.Solver, error) {
	ic, err := cfg.InitialField()
	if err != nil {
		return nil, err
	}
	bc, err := cfg.MakeBoundary(ic)
	if err != nil {
		return nil, err
	}

	s, err := solver.New(cfg.Params(), ic, bc)
	if err != nil {
		var stab *solver.StabilityError
		if !errors.As(err, &stab) {
			return nil, err
		}
		switch {
		case autoDt:
			newDt, serr := s.StabilizeDt()
			if serr != nil {
				return nil, serr
			}
			fmt.Printf("warning: r=%.4f exceeds 0.5, dt reduced to %g\n", stab.Ratio, newDt)
		case allowUnstable:
			fmt.Printf("warning: proceeding with unstable r=%.4f, expect divergence\n", stab.Ratio)
		default:
			return nil, fmt.Errorf("%w (rerun with --auto-dt or --allow-unstable)", err)
		}
	}
	return s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	ms := []metrics.Metric{metrics.NewTotalHeat(), metrics.NewPeak(), metrics.NewFinite()}
	for _, m := range ms {
		s.AddObserver(m)
	}

	fmt.Printf("running heat simulation: %s, %s ends, r=%.4f...\n",
		cfg.Initial, cfg.BoundaryLabel(), s.Ratio())
	start := time.Now()

	result, err := s.Run(context.Background(), cfg.RecordEvery)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Length:   cfg.Length,
		Alpha:    cfg.Alpha,
		Nodes:    cfg.Nodes,
		Dt:       result.Dt,
		Duration: cfg.Duration,
		Initial:  cfg.Initial,
		Boundary: cfg.BoundaryLabel(),
		Ratio:    s.Ratio(),
		Metrics:  metrics.Collect(ms),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, snapshots: %d\n", result.StepsTaken, len(result.Fields))
	fmt.Println("\nmetrics:")
	for name, val := range metrics.Collect(ms) {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	for _, m := range ms {
		if fin, ok := m.(*metrics.Finite); ok {
			if t, seen := fin.FirstBadTime(); seen {
				fmt.Printf("\nwarning: field went non-finite at t=%.4f\n", t)
			}
		}
	}
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tINITIAL\tBOUNDARY\tNODES\tALPHA\tDT\tDURATION\tR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%g\t%g\t%.2fs\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Initial,
			run.Boundary,
			run.Nodes,
			run.Alpha,
			run.Dt,
			run.Duration,
			run.Ratio,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fields, times, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("initial: %s, boundary: %s\n", meta.Initial, meta.Boundary)
	fmt.Printf("snapshots: %d\n\n", len(fields))

	for _, k := range []int{0, len(fields) / 2, len(fields) - 1} {
		graph := asciigraph.Plot(fields[k],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("u(x) at t=%.4fs", times[k])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	mid := make([]float64, len(fields))
	for k := range fields {
		mid[k] = fields[k][len(fields[k])/2]
	}
	graph := asciigraph.Plot(mid,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("midpoint temperature vs time"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	fields, times, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range fields[0] {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for k, f := range fields {
		row := make([]string, 0, len(f)+1)
		row = append(row, strconv.FormatFloat(times[k], 'g', -1, 64))
		for _, v := range f {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fields, times, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		Times  []float64            `json:"times"`
		Fields []solver.Field       `json:"fields"`
	}{meta, times, fields}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fields, times, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("no data to export")
	}

	var svg string
	if heatmap {
		res := &solver.Result{Fields: fields, Times: times}
		svg = export.HeatmapToSVG(res, 800, 400)
	} else {
		k := snapshotIdx
		if k < 0 || k >= len(fields) {
			k = len(fields) - 1
		}
		g, err := solver.NewGrid(meta.Nodes, meta.Length)
		if err != nil {
			return err
		}
		svg = export.ProfileToSVG(g.Points(), fields[k], 800, 400, "#ff6030")
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fields, times, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(fields) < 2 {
		return fmt.Errorf("not enough snapshots to analyze")
	}

	res := &solver.Result{Fields: fields, Times: times}

	fmt.Printf("decay analysis: %s\n", meta.ID)
	fmt.Printf("initial: %s, boundary: %s\n\n", meta.Initial, meta.Boundary)

	rate := analysis.DecayRate(res)
	fmt.Printf("fitted peak decay rate: %.6f /s\n", rate)

	// The fundamental sine mode has a closed-form solution to compare with.
	if meta.Initial == "sin(pi*x)" && meta.Boundary == "fixed(0,0)" {
		want := analysis.SineDecayRate(meta.Alpha, meta.Length)
		fmt.Printf("analytic decay rate:    %.6f /s\n", want)

		g, err := solver.NewGrid(meta.Nodes, meta.Length)
		if err != nil {
			return err
		}
		errs := analysis.CompareSine(res, g, meta.Alpha)

		worst := 0.0
		for _, e := range errs {
			if e > worst {
				worst = e
			}
		}
		fmt.Printf("max deviation from closed form: %.2e\n\n", worst)

		graph := asciigraph.Plot(errs,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("max error vs closed-form solution"),
		)
		fmt.Println(graph)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	factory := func() (*solver.Solver, error) { return buildSolver(cfg) }
	return viz.Run(s, factory, frameRate, stepsPerTick)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINITIAL\tBOUNDARY\tALPHA\tNODES\tDT\tDURATION")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%d\t%g\t%gs\n",
			name, p.Initial, p.BoundaryLabel(), p.Alpha, p.Nodes, p.Dt, p.Duration)
	}
	return w.Flush()
}

func benchSolver(cmd *cobra.Command, args []string) error {
	nodeCounts := []int{51, 101, 201}
	dts := []float64{0.001, 0.0005, 0.0001}

	fmt.Println("benchmarking solver")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODES\tDT\tR\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range nodeCounts {
		for _, d := range dts {
			cfg := config.DefaultConfig()
			cfg.Nodes = n
			cfg.Dt = d
			cfg.RecordEvery = 1 << 30 // keep only the endpoints

			if cfg.Params().StabilityRatio() > solver.StabilityLimit {
				fmt.Fprintf(w, "%d\t%g\t%.4f\tskipped (unstable)\t\t\n", n, d, cfg.Params().StabilityRatio())
				continue
			}

			s, err := buildSolver(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Run(context.Background(), cfg.RecordEvery)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%g\t%.4f\t%d\t%v\t%.0f\n",
				n, d, s.Ratio(), result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
