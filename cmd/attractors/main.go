package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/export"
	"github.com/san-kum/attractors/internal/gui"
	"github.com/san-kum/attractors/internal/metrics"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/storage"
	"github.com/san-kum/attractors/internal/viz"
)

var (
	dataDir string

	// run
	frames      int
	metricNames []string
	saveRun     bool

	// analyze
	analyzeSteps int
	xAxis        string
	yAxis        string
	section      string
	svgPath      string
	bifParam     string
	bifRange     string
	bifPoints    int

	// export
	format string
	output string
)

// main registers the commands and runs the menu TUI when no subcommand is
// given. It exits with status 1 if the command returns an error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "attractors",
		Short:         "strange attractor particle visualizer",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontend(cmd, true, func(ctx context.Context, e *sim.Engine, o viz.Options) error {
				return viz.RunInteractive(ctx, e, o, false)
			})
		},
	}
	bindSessionFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attractors", "snapshot directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the terminal view without the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontend(cmd, true, func(ctx context.Context, e *sim.Engine, o viz.Options) error {
				return viz.RunInteractive(ctx, e, o, true)
			})
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the windowed view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontend(cmd, false, gui.Run)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "advance the field headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", metrics.Names(), "metrics to collect")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save a snapshot of the final frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [attractor...]",
		Short: "lyapunov exponent, dominant frequency and phase portrait",
		RunE:  analyzeAttractors,
	}
	analyzeCmd.Flags().IntVar(&analyzeSteps, "steps", analysis.DefaultOptions().Steps, "integration steps")
	analyzeCmd.Flags().StringVar(&xAxis, "x-axis", "x", "portrait x axis")
	analyzeCmd.Flags().StringVar(&yAxis, "y-axis", "z", "portrait y axis")
	analyzeCmd.Flags().StringVar(&section, "section", "", "also plot a poincare section crossing this axis at 0")
	analyzeCmd.Flags().StringVar(&svgPath, "svg", "", "write the phase portrait of the first attractor as SVG")
	analyzeCmd.Flags().StringVar(&bifParam, "bifurcation", "", "sweep this parameter of the first attractor")
	analyzeCmd.Flags().StringVar(&bifRange, "range", "", "sweep range as lo:hi")
	analyzeCmd.Flags().IntVar(&bifPoints, "points", 60, "sweep points")

	exportCmd := &cobra.Command{
		Use:   "export [snapshot_id]",
		Short: "export a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSnapshot,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv or svg")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tATTRACTORS\tPARTICLES\tTRAIL\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				active := "all"
				if len(p.Attractors) > 0 {
					active = strings.Join(p.Attractors, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", name, active, p.Particles, p.TrailLength, p.Theme)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, listCmd, analyzeCmd, exportCmd, presetsCmd)
	return rootCmd
}

// lastFrame keeps the most recent frame of a headless run.
type lastFrame struct{ fr sim.Frame }

func (l *lastFrame) OnFrame(fr sim.Frame) { l.fr = fr }

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	for _, name := range metricNames {
		m, err := metrics.New(name)
		if err != nil {
			return err
		}
		engine.AddMetric(m)
	}
	last := &lastFrame{}
	engine.AddObserver(last)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s for %d frames...\n", engine.Attractor().Name, frames)
	start := time.Now()
	result, err := engine.Run(cmd.Context(), frames, cfg.FrameDuration(), nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "steps: %d  reseeds: %d\n\n", result.Steps, result.Reseeds)

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(out, asciigraph.Plot(result.Series[name],
			asciigraph.Height(8),
			asciigraph.Width(72),
			asciigraph.Caption(name),
		))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "metrics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}

	if !saveRun {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	snap := storage.NewSnapshot(last.fr, engine.Integrator().Name(), cfg.Seed, result.Metrics)
	id, err := st.Save(snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nsnapshot id: %s\n", id)
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tATTRACTOR\tTIME\tPARTICLES\tTRAIL\tSTEPS\tRESEEDS")
	for _, m := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			m.ID,
			m.Attractor,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Particles,
			m.Trail,
			m.Steps,
			m.Reseeds,
		)
	}
	return w.Flush()
}

func analyzeAttractors(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Attractors = args
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}
	integ, err := cfg.GetIntegrator()
	if err != nil {
		return err
	}
	xa, ok := analysis.ParseAxis(xAxis)
	if !ok {
		return fmt.Errorf("unknown axis %q", xAxis)
	}
	ya, ok := analysis.ParseAxis(yAxis)
	if !ok {
		return fmt.Errorf("unknown axis %q", yAxis)
	}
	var cross analysis.Axis
	if section != "" {
		if cross, ok = analysis.ParseAxis(section); !ok {
			return fmt.Errorf("unknown axis %q", section)
		}
	}

	if bifParam != "" {
		return bifurcation(cmd, catalog[0], integ, xa)
	}

	opts := analysis.DefaultOptions()
	opts.Steps = analyzeSteps
	opts.Axis = xa
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ATTRACTOR\tLYAPUNOV\tCHAOTIC\tFREQ\tPERIOD")
	for _, att := range catalog {
		r := analysis.Analyze(att, integ, opts)
		fmt.Fprintf(w, "%s\t%.4f\t%v\t%.4f\t%.3f\n", r.Attractor, r.Lyapunov, r.Chaotic(), r.DominantFreq, r.Period())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for i, att := range catalog {
		traj := analysis.Trajectory(att, integ, att.Initial, att.Step, opts.Steps, opts.Transient)
		portrait := analysis.GeneratePhasePortrait(traj, xa, ya)
		fmt.Fprintf(out, "\n%s (%s vs %s)\n", att.Name, ya, xa)
		fmt.Fprintln(out, analysis.PhasePortraitToASCII(portrait, 72, 24))

		if section != "" {
			fmt.Fprintf(out, "\n%s poincare section (%s = 0)\n", att.Name, cross)
			fmt.Fprintln(out, analysis.PoincareSectionToASCII(analysis.GeneratePoincareSection(traj, cross, 0, xa, ya), 72, 24))
		}

		if i == 0 && svgPath != "" {
			svg := export.TrajectoryToSVG(portrait.Points, 800, 800, string(viz.GetTheme(cfg.Theme).Primary))
			if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", svgPath)
		}
	}
	return nil
}

// bifurcation plots the local maxima of axis while sweeping one parameter.
func bifurcation(cmd *cobra.Command, att physics.Attractor, integ dynamo.Integrator, axis analysis.Axis) error {
	if bifRange == "" {
		return errors.New("--bifurcation needs --range lo:hi")
	}
	lo, hi, err := analysis.ParseRange(bifRange)
	if err != nil {
		return err
	}
	build, err := analysis.ParamSweep(att, bifParam)
	if err != nil {
		return err
	}
	opts := analysis.DefaultOptions()
	data := analysis.BifurcationDiagram(build, integ, lo, hi, bifPoints, axis, opts.Transient, analyzeSteps)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s bifurcation: %s in [%g, %g], maxima of %s\n", att.Name, bifParam, lo, hi, axis)
	fmt.Fprintln(out, analysis.BifurcationToASCII(data, 72, 24))
	return nil
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snap, err := st.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case "json":
		if output != "" {
			return storage.ExportJSON(output, snap)
		}
		return storage.WriteJSON(w, snap)
	case "csv":
		if output != "" {
			return storage.ExportCSV(output, snap)
		}
		return storage.WriteCSV(w, snap)
	case "svg":
		cam := viz.NewCamera(config.DefaultFPS)
		cam.Update(snap.Metadata.Transform)
		svg := export.SnapshotToSVG(snap, cam, 800, 800, 2)
		if output != "" {
			return os.WriteFile(output, []byte(svg), 0644)
		}
		_, err := fmt.Fprint(w, svg)
		return err
	}
	return errors.New("unknown format: " + format + " (json, csv, svg)")
}
