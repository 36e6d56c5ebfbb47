package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/report"
	"github.com/san-kum/reactorsim/internal/store"
	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := store.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUNIT\tTIME\tDURATION\tCTRL\tSTATUS\tTRIP")
			for _, run := range runs {
				trip := "-"
				if run.FirstTrip >= 0 {
					trip = fmt.Sprintf("%.1fs", run.FirstTrip)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%s\t%s\t%s\n",
					run.ID,
					run.UnitName,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Duration,
					run.Controller,
					run.Status,
					trip,
				)
			}
			return w.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	var series []string
	cmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summarize and plot an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := store.New(dataDir).LoadSummary(args[0])
			if err != nil {
				return err
			}
			printSummary(sum)

			for _, name := range series {
				s, err := report.ParseSeries(name)
				if err != nil {
					return err
				}
				if s == report.Power {
					continue
				}
				fmt.Println()
				fmt.Println(report.Chart(sum.History, s, 70, 10))
			}

			if len(sum.Events) > 0 {
				fmt.Println("\nevents:")
				for _, e := range sum.Events {
					fmt.Printf("  %s\n", report.FormatEvent(e))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&series, "series", []string{"temp"}, "extra series to plot (temp, reactivity)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export an archived run to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(dataDir)
			switch format {
			case "meta":
				meta, err := st.Load(args[0])
				if err != nil {
					return err
				}
				return report.WriteJSON(os.Stdout, meta)
			case "csv":
				history, err := st.LoadHistory(args[0])
				if err != nil {
					return err
				}
				return report.WriteCSV(os.Stdout, history)
			}

			sum, err := st.LoadSummary(args[0])
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return report.WriteJSON(os.Stdout, sum)
			case "svg":
				_, err = fmt.Fprint(os.Stdout, report.HistorySVG(sum.History, 800, 400, report.Power, report.Temperature))
				return err
			case "incident":
				return report.WriteIncident(os.Stdout, sum, time.Now())
			}
			return fmt.Errorf("unknown format %q (want meta, json, csv, svg or incident)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "meta, json, csv, svg or incident")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var seriesName string
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "find the dominant oscillation in an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := report.ParseSeries(seriesName)
			if err != nil {
				return err
			}
			history, err := store.New(dataDir).LoadHistory(args[0])
			if err != nil {
				return err
			}

			values, dt := analysis.Trace(history, s)
			o, err := analysis.DominantOscillation(values, dt)
			if err != nil {
				return err
			}

			fmt.Printf("run: %s\n", args[0])
			fmt.Printf("series: %s, %d samples every %.3fs\n", s, len(values), dt)
			if o.FrequencyHz == 0 {
				fmt.Println("no oscillation found")
				return nil
			}
			fmt.Printf("dominant frequency: %.4f Hz\n", o.FrequencyHz)
			fmt.Printf("period: %.1f s\n", o.PeriodS)
			fmt.Printf("amplitude: %.2f %s\n", o.Amplitude, s.Unit())
			return nil
		},
	}
	cmd.Flags().StringVar(&seriesName, "series", "power", "series to analyze (power, temp, reactivity)")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	var axes string
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot one series against another for an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := strings.Split(axes, ",")
			if len(names) != 2 {
				return fmt.Errorf("--axes wants two series, got %q", axes)
			}
			x, err := report.ParseSeries(strings.TrimSpace(names[0]))
			if err != nil {
				return err
			}
			y, err := report.ParseSeries(strings.TrimSpace(names[1]))
			if err != nil {
				return err
			}
			history, err := store.New(dataDir).LoadHistory(args[0])
			if err != nil {
				return err
			}

			p := analysis.NewPhasePortrait(history, x, y)
			fmt.Printf("%s (%s) vs %s (%s); o = start, @ = end\n", y, y.Unit(), x, x.Unit())
			fmt.Print(p.ASCII(70, 20))
			return nil
		},
	}
	cmd.Flags().StringVar(&axes, "axes", "power,temp", "x,y series")
	return cmd
}
