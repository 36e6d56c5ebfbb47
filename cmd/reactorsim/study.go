package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/optim"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/report"
	"github.com/san-kum/reactorsim/internal/safety"
	"github.com/san-kum/reactorsim/internal/scenario"
	"github.com/san-kum/reactorsim/internal/sim"
	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	var (
		f              runFlags
		param          string
		from, to, step float64
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one independent unit per value of a control input",
		Long: "sweep runs the same configuration once per value of --param in parallel.\n" +
			"Scheduled actions are not played; each unit holds its controls for the whole run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			set, err := controlSetter(param)
			if err != nil {
				return err
			}
			if step <= 0 || to < from {
				return fmt.Errorf("need --step > 0 and --to >= --from")
			}
			var values []float64
			for v := from; v <= to+1e-9; v += step {
				values = append(values, v)
			}

			build := func(v float64) (*reactor.Unit, *sim.Runner, error) {
				u := reactor.New(fmt.Sprintf("%s-%s=%g", cfg.Unit.ID, param, v), fmt.Sprintf("%s %s=%g", cfg.Unit.Name, param, v))
				c := cfg.Controls
				set(&c, v)
				if err := u.SetControls(c); err != nil {
					return nil, nil, err
				}
				ctrl, err := control.New(cfg.Controller, cfg.ControllerParams)
				if err != nil {
					return nil, nil, err
				}
				r := sim.New(ctrl)
				r.SetLogger(logger)
				metrics.Attach(r)
				return u, r, nil
			}

			ctx, cancel := signalContext()
			defer cancel()
			results, err := sim.Sweep(ctx, values, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}, build)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tSTATUS\tTRIP\tPEAK TEMP\tPEAK MW\tFINAL MW\n", strings.ToUpper(param))
			for _, r := range results {
				res := r.Result
				trip := "-"
				if res.Tripped() {
					trip = fmt.Sprintf("%.1fs %s", res.FirstTrip, tripKinds(res.Trips))
				}
				fmt.Fprintf(w, "%g\t%s\t%s\t%.1f\t%.0f\t%.0f\n",
					r.Value, res.Final.Telemetry.Status, trip,
					res.Metrics["peak_temp_c"], res.Metrics["peak_power_mw"], res.Final.Telemetry.PowerMW)
			}
			return w.Flush()
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&param, "param", "rods", "input to sweep (rods, pump, cooling)")
	cmd.Flags().Float64Var(&from, "from", 0, "first value")
	cmd.Flags().Float64Var(&to, "to", 50, "last value")
	cmd.Flags().Float64Var(&step, "step", 5, "increment")
	return cmd
}

func controlSetter(param string) (func(*reactor.Controls, float64), error) {
	switch param {
	case "rods":
		return func(c *reactor.Controls, v float64) { c.RodsPos = v }, nil
	case "pump":
		return func(c *reactor.Controls, v float64) { c.PumpSpeed = v }, nil
	case "cooling":
		return func(c *reactor.Controls, v float64) { c.CoolingEff = v }, nil
	}
	return nil, fmt.Errorf("unknown sweep parameter %q (want rods, pump or cooling)", param)
}

func tripKinds(trips []safety.Trip) string {
	kinds := make([]string, len(trips))
	for i, t := range trips {
		kinds[i] = t.Kind.String()
	}
	return strings.Join(kinds, ",")
}

func newMonteCarloCmd() *cobra.Command {
	var (
		f       runFlags
		trials  int
		perturb float64
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "randomize rod position around the configured point and count trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()
			results, err := scenario.RunMonteCarlo(ctx, scenario.MonteCarloConfig{
				Base:         cfg.Controls,
				Perturbation: perturb,
				Trials:       trials,
				Dt:           cfg.Dt,
				Duration:     cfg.Duration,
				Seed:         seed,
			})
			if err != nil {
				return err
			}

			tripped, held := scenario.MonteCarloStats(results)
			fmt.Printf("trials: %d  rods %.1f ± %.1f%%\n", len(results), cfg.Controls.RodsPos, perturb)
			fmt.Printf("tripped: %d (%.1f%%)  held: %d\n", tripped, 100*float64(tripped)/float64(len(results)), held)

			sort.Slice(results, func(i, j int) bool { return results[i].RodsPos < results[j].RodsPos })
			peaks := make([]float64, len(results))
			worst := math.Inf(-1)
			for i, r := range results {
				peaks[i] = r.PeakTemp
				worst = math.Max(worst, r.PeakTemp)
			}
			fmt.Printf("worst peak temperature: %.1f °C\n\n", worst)
			if len(peaks) > 1 {
				fmt.Println(asciigraph.Plot(peaks,
					asciigraph.Height(8),
					asciigraph.Width(60),
					asciigraph.Caption("peak temp °C by rod position (ascending)"),
				))
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	cmd.Flags().Float64Var(&perturb, "perturb", 10, "uniform rod perturbation in percent")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	return cmd
}

func newTuneCmd() *cobra.Command {
	var (
		f          runFlags
		kps        []float64
		kis        []float64
		kds        []float64
		settle     float64
		writeGains string
	)
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search PID gains for the configured power target",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			grid, err := optim.NewGridSearch([]string{"Kp", "Ki", "Kd"}, [][]float64{kps, kis, kds})
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("time") && cfg.Duration <= settle {
				cfg.Duration = 2 * settle
			}
			if settle >= cfg.Duration {
				return fmt.Errorf("--settle %.0fs must be shorter than the run (%.0fs)", settle, cfg.Duration)
			}

			ctx, cancel := signalContext()
			defer cancel()
			base := *cfg.Scenario("tune")
			gains, trials, err := optim.TunePID(ctx, base, grid, settle)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KP\tKI\tKD\tERROR MW")
			for _, t := range trials {
				score := fmt.Sprintf("%.2f", t.Score)
				if t.Err != nil {
					score = t.Err.Error()
				}
				fmt.Fprintf(w, "%g\t%g\t%g\t%s\n", t.Params["Kp"], t.Params["Ki"], t.Params["Kd"], score)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nbest: kp=%g ki=%g kd=%g (target %.0f MW)\n", gains.Kp, gains.Ki, gains.Kd, gains.TargetMW)

			if writeGains != "" {
				file, err := os.Create(writeGains)
				if err != nil {
					return err
				}
				defer file.Close()
				if err := report.WriteJSON(file, gains); err != nil {
					return err
				}
				return file.Close()
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().Float64SliceVar(&kps, "kp-grid", []float64{5, 10, 20, 40}, "kp values to try")
	cmd.Flags().Float64SliceVar(&kis, "ki-grid", []float64{0.5, 1, 2, 4}, "ki values to try")
	cmd.Flags().Float64SliceVar(&kds, "kd-grid", []float64{0}, "kd values to try")
	cmd.Flags().Float64Var(&settle, "settle", 150, "seconds to ignore before scoring")
	cmd.Flags().StringVar(&writeGains, "write", "", "write the best gains to a json file")
	return cmd
}
