package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/gui"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/tui"
	"github.com/san-kum/ballpit/internal/viz"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	frames     int
	fps        int
	script     string
	themeName  string
	// Physics overrides
	gain        float64
	restitution float64
	damping     float64
	deadzone    float64
	// Output
	trace     bool
	plot      bool
	outFile   string
	trails    bool
	trailStep int
	// Sweep
	sweepParam  string
	sweepValues string
)

// main registers the commands and runs the root command. With no
// subcommand it opens the window on the preset menu.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ballpit",
		Short:         "soft collision particle sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := baseConfig()
			if err != nil {
				return err
			}
			return gui.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "open a window and drag balls with the mouse",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addPhysicsFlags(guiCmd)
	guiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui [preset]",
		Short: "terminal UI with mouse drag; without a preset opens the menu",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	addPhysicsFlags(tuiCmd)
	tuiCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")
	tuiCmd.Flags().StringVar(&themeName, "theme", "", fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run headless for a fixed number of frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	addPhysicsFlags(runCmd)
	addScriptFlags(runCmd)
	runCmd.Flags().BoolVar(&trace, "trace", false, "write per-frame particle CSV to stdout")
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot kinetic energy")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "play a scripted run as ASCII art in real time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	addScriptFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "render the final frame of a run to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	addPhysicsFlags(snapshotCmd)
	addScriptFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "ballpit.svg", "output file")
	snapshotCmd.Flags().BoolVar(&trails, "trails", false, "draw particle trails")
	snapshotCmd.Flags().IntVar(&trailStep, "trail-step", 2, "keep one trail point every n frames")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run the same scene under several values of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScriptFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "parameter to vary (gain, restitution, damping, deadzone)")
	sweepCmd.Flags().StringVar(&sweepValues, "values", "0.9,0.95,0.99", "comma separated values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and scripts",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, liveCmd, snapshotCmd, sweepCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error("ballpit failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer) {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "ballpit",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&gain, "gain", physics.DefaultGain, "overlap correction gain")
	cmd.Flags().Float64Var(&restitution, "restitution", physics.DefaultRestitution, "wall bounce factor")
	cmd.Flags().Float64Var(&damping, "damping", physics.DefaultDamping, "per-frame velocity factor")
	cmd.Flags().Float64Var(&deadzone, "deadzone", physics.DefaultDeadzone, "speed below which an axis snaps to zero")
}

func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	cmd.Flags().StringVar(&script, "script", "none", "pointer script (see presets)")
}

func baseConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveConfig builds the scene config: preset (or defaults), then the
// config file on top, then any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "triangle"
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		name = args[0]
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("gain") {
		cfg.Physics.Gain = gain
	}
	if flags.Changed("restitution") {
		cfg.Physics.Restitution = restitution
	}
	if flags.Changed("damping") {
		cfg.Physics.Damping = damping
	}
	if flags.Changed("deadzone") {
		cfg.Physics.Deadzone = deadzone
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		if !slices.Contains(viz.ThemeNames(), themeName) {
			return nil, "", fmt.Errorf("unknown theme: %s (available: %v)", themeName, viz.ThemeNames())
		}
		cfg.Style.Theme = themeName
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(cfg, name)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal is taken over by the UI; logs go to a file or nowhere.
	if verbose {
		f, err := os.OpenFile("ballpit.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		setupLogging(f)
	} else {
		setupLogging(io.Discard)
	}

	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return viz.RunInteractive(cfg)
	}
	return viz.RunLive(cfg, name)
}

func newExperiment(cmd *cobra.Command, args []string) (*experiment.Experiment, *experiment.Registry, *config.Config, string, error) {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, nil, "", err
	}
	if cfg.Frames <= 0 {
		return nil, nil, nil, "", fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	registry := experiment.NewRegistry()
	exp := experiment.New(experiment.Config{App: cfg, Script: script, Frames: cfg.Frames})
	return exp, registry, cfg, name, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	exp, registry, cfg, name, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	if err := exp.Setup(registry, nil, registry.DefaultMetrics()); err != nil {
		return err
	}

	var csvTrace *export.CSVTrace
	if trace {
		csvTrace = export.NewCSVTrace(os.Stdout)
		exp.GetSimulator().AddObserver(csvTrace)
	}

	log.Info("running", "preset", name, "script", script, "frames", cfg.Frames)
	start := time.Now()
	result, runErr := exp.Run(cmd.Context())
	elapsed := time.Since(start)

	if csvTrace != nil {
		if err := csvTrace.Flush(); err != nil {
			return err
		}
		return runErr
	}
	if result == nil {
		return runErr
	}

	fmt.Printf("preset:  %s\n", name)
	fmt.Printf("script:  %s (%d cues)\n", script, result.CuesPlayed)
	fmt.Printf("frames:  %d in %v\n\n", result.FramesRun, elapsed)

	printParticles(os.Stdout, result.Final)

	fmt.Println("\nmetrics:")
	for _, m := range registry.DefaultMetrics() {
		fmt.Printf("  %-15s %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	if plot && len(result.Energy) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(result.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy per frame"),
		)
		fmt.Println(graph)
	}

	return runErr
}

func printParticles(out io.Writer, ps []particle.Particle) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tX\tY\tVX\tVY\tRADIUS")
	for i, p := range ps {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.3f\t%.3f\t%.1f\n", i, p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y, p.Radius())
	}
	w.Flush()
}

// stopAfter cancels the live loop once the requested frames are shown.
type stopAfter struct {
	frames int
	cancel context.CancelFunc
}

func (s stopAfter) OnFrame(frame int, ps []particle.Particle) {
	if frame >= s.frames {
		s.cancel()
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, registry, cfg, name, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	if err := exp.Setup(registry, nil, nil); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := exp.GetSimulator()
	renderer := tui.NewLiveRenderer(fmt.Sprintf("%s/%s", name, script), cfg.Width, cfg.Height)
	feeder := experiment.NewFeeder(exp.Cues())
	s.AddObserver(feeder)
	s.AddObserver(renderer)
	s.AddObserver(stopAfter{frames: cfg.Frames, cancel: cancel})

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	renderer.Start()
	defer renderer.Stop()

	feeder.Prime()
	err = s.Loop(ctx, ticker.C, feeder.Events())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	exp, registry, cfg, name, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	style, err := cfg.RenderStyle()
	if err != nil {
		return err
	}

	svg := export.NewSVG(cfg.Width, cfg.Height, style.Background)
	if err := exp.Setup(registry, svg, nil); err != nil {
		return err
	}

	var tr *export.Trails
	if trails {
		tr = export.NewTrails(trailStep)
		exp.GetSimulator().AddObserver(tr)
	}

	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}
	if tr != nil {
		svg.AddTrails(tr.Paths, "#888888")
	}

	if err := os.WriteFile(outFile, []byte(svg.String()), 0644); err != nil {
		return err
	}
	log.Info("snapshot written", "preset", name, "path", outFile, "frames", cfg.Frames)
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	values, err := parseValues(sweepValues)
	if err != nil {
		return err
	}

	params := make([]physics.Params, len(values))
	for i, v := range values {
		w := physics.World{Params: cfg.Physics}
		if err := w.SetParam(sweepParam, v); err != nil {
			return err
		}
		params[i] = w.Params
	}

	layout, err := cfg.InitialParticles()
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	sc, err := registry.GetScript(script)
	if err != nil {
		return err
	}

	sweep := sim.NewSweep(layout, cfg.Width, cfg.Height, registry.DefaultMetrics)
	simCfg := sim.Config{Frames: cfg.Frames, Script: sc(layout), ValidateState: true}

	log.Info("sweeping", "preset", name, "param", sweepParam, "runs", len(values))
	results, err := sweep.Run(cmd.Context(), params, simCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN E\tPEAK OVERLAP\tREST FRAME\n", strings.ToUpper(sweepParam))
	for i, r := range results {
		rest := "-"
		if f := r.Metrics["rest_frame"]; f >= 0 {
			rest = strconv.Itoa(int(f))
		}
		fmt.Fprintf(w, "%g\t%.4f\t%.3f\t%s\n", values[i], r.Metrics["kinetic_energy"], r.Metrics["peak_overlap"], rest)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES")
	for _, name := range config.ListPresets() {
		ps, err := config.GetPreset(name).InitialParticles()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\n", name, len(ps))
	}
	w.Flush()

	fmt.Println("\nscripts:")
	for _, name := range experiment.NewRegistry().ListScripts() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "ballpit.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
