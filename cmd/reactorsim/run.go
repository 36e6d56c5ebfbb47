package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/report"
	"github.com/san-kum/reactorsim/internal/scenario"
	"github.com/san-kum/reactorsim/internal/sim"
	"github.com/san-kum/reactorsim/internal/store"
	"github.com/san-kum/reactorsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runFlags are shared by every command that builds a run configuration.
type runFlags struct {
	preset     string
	configFile string
	dt         float64
	duration   float64
	realtime   float64
	rods       float64
	pump       float64
	cooling    float64
	noSafety   bool
	controller string
	kp, ki, kd float64
	target     float64
}

func (f *runFlags) register(cmd *cobra.Command) {
	def := config.DefaultConfig()
	gains := control.DefaultGains()

	fl := cmd.Flags()
	fl.StringVar(&f.preset, "preset", "", "start from a named preset (list with the presets command)")
	fl.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fl.Float64Var(&f.dt, "dt", def.Dt, "timestep in seconds")
	fl.Float64Var(&f.duration, "time", def.Duration, "simulated duration in seconds")
	fl.Float64Var(&f.realtime, "realtime", 0, "pace the run at this multiple of real time (0 = as fast as possible)")
	fl.Float64Var(&f.rods, "rods", def.Controls.RodsPos, "rod insertion percent")
	fl.Float64Var(&f.pump, "pump", def.Controls.PumpSpeed, "pump speed percent")
	fl.Float64Var(&f.cooling, "cooling", def.Controls.CoolingEff, "cooling efficiency percent")
	fl.BoolVar(&f.noSafety, "no-safety", false, "bypass the automatic interlocks")
	fl.StringVar(&f.controller, "controller", def.Controller, fmt.Sprintf("rod controller %v", control.List()))
	fl.Float64Var(&f.kp, "kp", gains.Kp, "pid kp")
	fl.Float64Var(&f.ki, "ki", gains.Ki, "pid ki")
	fl.Float64Var(&f.kd, "kd", gains.Kd, "pid kd")
	fl.Float64Var(&f.target, "target", gains.TargetMW, "pid power target in MW")
}

// resolve layers the run configuration: preset, then config file, then any
// flag set explicitly on the command line.
func (f *runFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.preset != "" {
		p, err := config.GetPreset(f.preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if f.configFile != "" {
		data, err := os.ReadFile(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg, err = config.Parse(data, cfg)
		if err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("dt") {
		cfg.Dt = f.dt
	}
	if changed("time") {
		cfg.Duration = f.duration
	}
	if changed("realtime") {
		cfg.Realtime = f.realtime
	}
	if changed("rods") {
		cfg.Controls.RodsPos = f.rods
	}
	if changed("pump") {
		cfg.Controls.PumpSpeed = f.pump
	}
	if changed("cooling") {
		cfg.Controls.CoolingEff = f.cooling
	}
	if changed("no-safety") {
		cfg.Controls.SafetyEnabled = !f.noSafety
	}
	if changed("controller") {
		cfg.Controller = f.controller
	}
	if changed("kp") {
		cfg.ControllerParams.Kp = f.kp
	}
	if changed("ki") {
		cfg.ControllerParams.Ki = f.ki
	}
	if changed("kd") {
		cfg.ControllerParams.Kd = f.kd
	}
	if changed("target") {
		cfg.ControllerParams.TargetMW = f.target
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext is canceled on interrupt so long runs stop cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func newRunCmd() *cobra.Command {
	var (
		f        runFlags
		out      string
		incident string
		noSave   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and archive the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			if out != "" {
				cfg.HistoryOut = out
			}
			name := f.preset
			if name == "" {
				name = "run"
			}
			return runScenario(cfg.Scenario(name), f.preset, cfg.HistoryOut, incident, noSave)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write history to a .csv, .json or .svg file")
	cmd.Flags().StringVar(&incident, "incident", "", "write an incident report to this file")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")
	return cmd
}

func newScenarioCmd() *cobra.Command {
	var (
		out      string
		incident string
		noSave   bool
	)
	cmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a scripted scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			if s.Name == "" {
				s.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			return runScenario(s, s.Name, out, incident, noSave)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write history to a .csv, .json or .svg file")
	cmd.Flags().StringVar(&incident, "incident", "", "write an incident report to this file")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")
	return cmd
}

func runScenario(s *scenario.Scenario, preset, out, incident string, noSave bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s...\n", s.Name)
	start := time.Now()
	outcome, err := s.Run(ctx, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	controller := s.Controller
	if controller == "" {
		controller = "none"
	}
	sum := report.NewSummary(preset, controller, sim.Config{Dt: s.Dt, Duration: s.Duration}, outcome.Result)

	fmt.Printf("completed in %v\n", elapsed)
	printSummary(&sum)
	for _, e := range outcome.Errors {
		fmt.Printf("  action error: %v\n", e)
	}

	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(sum)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}
	if out != "" {
		if err := writeHistory(out, &sum); err != nil {
			return err
		}
		fmt.Printf("history written to %s\n", out)
	}
	if incident != "" {
		if err := writeIncident(incident, &sum); err != nil {
			return err
		}
		fmt.Printf("incident report written to %s\n", incident)
	}
	return nil
}

func printSummary(sum *report.Summary) {
	tel := sum.Telemetry
	fmt.Printf("unit: %s (%s)\n", sum.UnitName, sum.UnitID)
	fmt.Printf("steps: %d  t=%.1fs\n", sum.Steps, sum.Time)
	fmt.Printf("final: %s  %.0f MW  %.1f °C  %+.0f pcm  period %s\n",
		tel.Status, tel.PowerMW, tel.Temp, report.PCM(tel.Reactivity), report.FormatPeriod(tel.Period))

	if sum.FirstTrip >= 0 {
		fmt.Printf("tripped at t=%.1fs:\n", sum.FirstTrip)
		for _, line := range report.FormatTrips(sum.Trips) {
			fmt.Printf("  %s\n", line)
		}
	}

	names := make([]string, 0, len(sum.Metrics))
	for name := range sum.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.3f\n", name, sum.Metrics[name])
	}
	w.Flush()

	if chart := report.Chart(sum.History, report.Power, 70, 10); chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}
}

func writeHistory(path string, sum *report.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = report.WriteCSV(f, sum.History)
	case ".json":
		err = report.WriteJSON(f, sum)
	case ".svg":
		_, err = f.WriteString(report.HistorySVG(sum.History, 800, 400, report.Power, report.Temperature))
	default:
		err = fmt.Errorf("unsupported history format %q (want .csv, .json or .svg)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func writeIncident(path string, sum *report.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := report.WriteIncident(f, sum, time.Now()); err != nil {
		return err
	}
	return f.Close()
}

func newLiveCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "live",
		Short: "open the control room for one unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return viz.RunConfig(cfg, logger)
		},
	}
	f.register(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDURATION\tCONTROLLER\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.0fs\t%s\t%s\n", name, p.Duration, p.Controller, p.Description)
			}
			return w.Flush()
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file from a preset and flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			logger.Info("config written", zap.String("path", args[0]))
			fmt.Printf("config written to %s\n", args[0])
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
