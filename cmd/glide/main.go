package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/glide/internal/config"
	"github.com/san-kum/glide/internal/export"
	"github.com/san-kum/glide/internal/game"
	"github.com/san-kum/glide/internal/input"
	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/report"
	"github.com/san-kum/glide/internal/sim"
	"github.com/san-kum/glide/internal/storage"
	"github.com/san-kum/glide/internal/trace"
	"github.com/san-kum/glide/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	logFile    string

	force    float64
	mass     float64
	maxSpeed float64
	dt       float64
	fps      int
	theme    string

	script      string
	simDuration float64
	csvOut      string
	jsonOut     string
	plot        bool
	plotSeries  []string
	svgOut      string
	save        bool

	savePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "glide",
		Short:         "steer a block around the terminal under constant force",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glide", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Float64Var(&force, "force", kinematics.DefaultForce, "push force")
	rootCmd.PersistentFlags().Float64Var(&mass, "mass", kinematics.DefaultMass, "entity mass")
	rootCmd.PersistentFlags().Float64Var(&maxSpeed, "max-speed", kinematics.DefaultMaxSpeed, "per-axis speed limit")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "physics timestep in seconds")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "target frame rate")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "steer the entity with arrow keys or wasd",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	playCmd.Flags().StringVar(&logFile, "log", "glide.log", "log file used with --debug")
	playCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme,
		fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "replay a key script headless on simulated time",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	simulateCmd.Flags().StringVar(&script, "script", "", `key script, e.g. "east:0.5,stop:0.2,quit"`)
	simulateCmd.Flags().Float64Var(&simDuration, "duration", 0, "simulated seconds (0 = until the script ends)")
	simulateCmd.Flags().StringVar(&csvOut, "csv", "", "write the trace as csv (- for stdout)")
	simulateCmd.Flags().StringVar(&jsonOut, "json", "", "write the trace as json (- for stdout)")
	simulateCmd.Flags().BoolVar(&plot, "plot", false, "plot the trace")
	simulateCmd.Flags().StringSliceVar(&plotSeries, "series", []string{"x", "y", "speed"},
		fmt.Sprintf("series to plot (%s)", strings.Join(trace.SeriesNames(), ", ")))
	simulateCmd.Flags().StringVar(&svgOut, "svg", "", "write the path as svg")
	simulateCmd.Flags().BoolVar(&save, "save", false, "keep the run in the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summarize and plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringSliceVar(&plotSeries, "series", []string{"x", "y", "speed"}, "series to plot")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(report.Presets(config.ListPresets(), func(name string) kinematics.Params {
				return config.GetPreset(name).EntityParams()
			}))
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&savePath, "save", "", "also write the configuration to this file")

	rootCmd.AddCommand(playCmd, simulateCmd, runsCmd, showCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("force") {
		cfg.Entity.Force = force
	}
	if flags.Changed("mass") {
		cfg.Entity.Mass = mass
	}
	if flags.Changed("max-speed") {
		cfg.Entity.MaxSpeed = maxSpeed
	}
	if flags.Changed("dt") {
		cfg.Loop.Dt = dt
	}
	if flags.Changed("fps") {
		cfg.Loop.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.World.Theme = theme
	}
	if flags.Changed("duration") {
		cfg.Loop.Duration = simDuration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		FullTimestamp:   true,
	})
	log.SetOutput(out)
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	th, ok := viz.GetTheme(cfg.World.Theme)
	if !ok {
		return fmt.Errorf("unknown theme %q (have %s)", cfg.World.Theme, strings.Join(viz.ThemeNames(), ", "))
	}

	// The terminal is in raw mode while playing, so logs go to a file.
	var out io.Writer = io.Discard
	if debug {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := newLogger(out)

	entity, err := kinematics.New(cfg.Start(), cfg.EntityParams())
	if err != nil {
		return err
	}
	loop, err := sim.NewLoop(cfg.LoopConfig())
	if err != nil {
		return err
	}
	loop.SetLogger(log)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	finish := sync.OnceFunc(screen.Fini)
	defer finish()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := input.NewTerminalSource(screen, sim.SystemTimer{}, cfg.Input.ReleaseDelay, log)
	ctrl := game.NewController(entity, src, cfg.Input.PollTimeout, log)
	renderer := viz.NewRenderer(screen, ctrl, cfg.World.Width, cfg.World.Height)
	renderer.SetTheme(th)

	err = loop.Run(ctx, ctrl, renderer)
	finish()

	switch {
	case sim.IsQuit(err):
		fmt.Println(ctrl.QuitReason())
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Println("interrupted")
		return nil
	}
	return err
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(os.Stderr)

	var src *input.Script
	switch {
	case script != "":
		src, err = input.ParseScript(script)
	case len(cfg.Script) > 0:
		src, err = input.NewScript(cfg.Script)
	default:
		return errors.New("no script: pass --script or use a config or preset with one (try --preset demo)")
	}
	if err != nil {
		return err
	}

	res, err := game.Simulate(cmd.Context(), cfg, src, log)
	if err != nil {
		return err
	}

	name := preset
	if name == "" {
		name = "custom"
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.Run{
			Name:    name,
			Config:  cfg,
			Trace:   res.Trace,
			Stats:   res.Stats,
			Metrics: res.Metrics,
			Reason:  res.Reason,
		})
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved run %s\n", runID)
	}

	if svgOut != "" {
		opts := export.DefaultOptions()
		opts.WorldW, opts.WorldH = cfg.World.Width, cfg.World.Height
		err := writeOutput(svgOut, func(w io.Writer) error {
			return export.WritePathSVG(w, res.Trace.Samples(), opts)
		})
		if err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}

	// trace on stdout replaces the summary
	quiet := csvOut == "-" || jsonOut == "-"
	if csvOut != "" {
		if err := writeOutput(csvOut, res.Trace.WriteCSV); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if jsonOut != "" {
		err := writeOutput(jsonOut, func(w io.Writer) error {
			return res.Trace.WriteJSON(w, cfg.Loop.Dt)
		})
		if err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if quiet {
		return nil
	}

	if plot {
		if err := printPlots(res.Trace); err != nil {
			return err
		}
	}

	sum, err := res.Trace.Summary()
	if err != nil {
		return err
	}
	fmt.Println(report.Render(report.Run{
		Name:    name,
		Params:  cfg.EntityParams(),
		Loop:    cfg.LoopConfig(),
		Stats:   res.Stats,
		Summary: sum,
		Metrics: res.Metrics,
		Reason:  res.Reason,
	}))
	return nil
}

func printPlots(rec *trace.Recorder) error {
	for _, s := range plotSeries {
		graph, err := rec.Plot(s, 80, 10)
		if err != nil {
			return err
		}
		fmt.Println(graph)
		fmt.Println()
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tDISTANCE\tFINAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t(%.0f, %.0f)\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stats.Steps,
			run.Summary.Distance,
			run.Summary.Final.Position.X(),
			run.Summary.Final.Position.Y(),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rec, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if err := printPlots(rec); err != nil {
		return err
	}
	fmt.Println(report.Render(report.Run{
		Name:    meta.Name,
		Params:  meta.Params,
		Loop:    sim.Config{Dt: meta.Dt},
		Stats:   meta.Stats,
		Summary: meta.Summary,
		Metrics: meta.Metrics,
		Reason:  meta.Reason,
	}))
	return nil
}

func writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if savePath != "" {
		if err := config.Save(savePath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved to %s\n", savePath)
	}
	return nil
}
