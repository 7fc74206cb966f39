package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ryanmcf10/three-body-simulation/internal/config"
	"github.com/ryanmcf10/three-body-simulation/internal/integrators"
	"github.com/ryanmcf10/three-body-simulation/internal/metrics"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"github.com/ryanmcf10/three-body-simulation/internal/storage"
	"github.com/ryanmcf10/three-body-simulation/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	integrator string
	dt         float64
	steps      int
	rate       int
	seed       int64
	realtime   bool
	interval   int
	outPath    string
	svgWidth   int
	svgHeight  int

	perturbation float64
	analyzeSteps int
	canvasMode   bool
)

var logger = slog.New(slog.DiscardHandler)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trisim",
		Short:         "gravitational three-body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trisim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation headless and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace steps at --rate instead of running flat out")
	runCmd.Flags().IntVar(&interval, "record-every", 1, "record every n-th step")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same initial conditions",
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	exportSVGCmd.Flags().BoolVar(&canvasMode, "canvas", false, "draw the final frame as the live view shows it")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate the largest Lyapunov exponent of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&analyzeSteps, "steps", 0, "steps to follow (default: the run's length)")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial offset of the shadow trajectory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s  %d steps, dt=%.3f\n", name, p.Steps, p.Dt)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file from defaults or a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	addSimFlags(initCmd)

	placeCmd := &cobra.Command{
		Use:   "place [path]",
		Short: "place three bodies from typed pointer positions and write a config",
		Args:  cobra.ExactArgs(1),
		RunE:  placeCommand,
	}
	addSimFlags(placeCmd)

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, presetsCmd, initCmd, placeCmd)
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	cmd.Flags().Float64Var(&dt, "dt", sim.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps (0 runs until interrupted)")
	cmd.Flags().IntVar(&rate, "rate", sim.DefaultRate, "steps per second")
	cmd.Flags().Int64Var(&seed, "seed", 1, "colour seed")
}

// loadConfig resolves defaults, then a preset, then a config file, then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("rate") {
		cfg.Rate = rate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, cfg.Validate()
}

func newSimulation(cfg *config.Config, integName string) (*sim.Simulation, error) {
	bodies, err := cfg.InitialBodies()
	if err != nil {
		return nil, err
	}
	integ, err := integrators.Get(integName)
	if err != nil {
		return nil, err
	}
	simCfg := cfg.SimConfig()
	simCfg.Logger = logger
	return sim.New(bodies, integ, simCfg)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !realtime {
		cfg.Rate = 0
	}

	s, err := newSimulation(cfg, cfg.Integrator)
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	rec := sim.NewRecorder(interval)
	s.AddObserver(rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runErr := s.Run(ctx)
	elapsed := time.Since(start)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Warn("run stopped early", "err", runErr)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "run"
	}
	result := rec.Result(s)
	snap := s.Snapshot()
	info := storage.RunInfo{Name: name, Integrator: cfg.Integrator, Dt: cfg.Dt, Seed: cfg.Seed, Steps: snap.Step}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("steps: %d  t=%.2f  (%s)\n", snap.Step, snap.Time, elapsed.Round(time.Millisecond))
	for _, name := range []string{"energy_drift", "momentum_residual", "min_separation"} {
		fmt.Printf("%-18s %.6e\n", name, result.Metrics[name])
	}
	if result.Err != nil {
		fmt.Printf("stopped: %v\n", result.Err)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := liveSimulation(cfg)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(viz.NewModel(s, cfg.Rate, cfg.Steps), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		fmt.Printf("stopped: %v\n", m.Err())
	}
	return nil
}

// liveSimulation builds a run whose logs cannot reach the alt screen.
func liveSimulation(cfg *config.Config) (*sim.Simulation, error) {
	logger = slog.New(slog.DiscardHandler)
	return newSimulation(cfg, cfg.Integrator)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}
	if cfg.Steps == 0 {
		return fmt.Errorf("compare needs a bounded run, set --steps")
	}
	cfg.Rate = 0

	fmt.Printf("comparing integrators (dt=%.4f, steps=%d)\n\n", cfg.Dt, cfg.Steps)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "energy_drift", "momentum", "min_sep", "time_ms")
	fmt.Println(strings.Repeat("-", 68))

	for _, name := range names {
		s, err := newSimulation(cfg, name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}
		for _, m := range metrics.Default() {
			s.AddMetric(m)
		}

		start := time.Now()
		runErr := s.Run(context.Background())
		elapsed := time.Since(start)

		vals := s.Metrics()
		fmt.Printf("%-12s  %12.2e  %12.2e  %12.4f  %12.2f\n", name,
			vals["energy_drift"], vals["momentum_residual"], vals["min_separation"],
			float64(elapsed.Microseconds())/1000)
		if runErr != nil {
			fmt.Printf("%-12s  stopped: %v\n", "", runErr)
		}
	}
	return nil
}
