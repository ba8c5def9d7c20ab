package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/statewatt/statewatt/internal/api"
	"github.com/statewatt/statewatt/pkg/energy"
	"github.com/statewatt/statewatt/pkg/source"
)

type opts struct {
	// characterization
	tableSpec    string
	defaultPower float64

	// validation
	ref float64
	tol float64

	// outputs
	csvPath  string
	jsonPath string
	pretty   bool
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:           "statewatt",
		Short:         "State-transition energy accountant",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `statewatt estimates a device's cumulative energy consumption from a
stream of timestamped operating-state transitions. Each state carries a
characterized constant power draw; energy is the time-integral of that
piecewise-constant power function. The result can be validated against a
measured ground-truth figure within a tolerance.

Examples:
  statewatt replay run.csv --ref 4262.89 --tol 0.01
  statewatt simulate --horizon 1296000 --json report.json
  statewatt watch --broker tcp://localhost:1883 --listen :8081`,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.tableSpec, "table", "", "state→power overrides as k=v pairs (e.g. 0=1.0357,1=1.0215); empty means the reference characterization")
	pf.Float64Var(&o.defaultPower, "default-power", 1.0, "power in Watts billed to uncharacterized states")
	pf.Float64Var(&o.ref, "ref", 0, "ground-truth total energy in Joules to validate against (0 = skip validation)")
	pf.Float64Var(&o.tol, "tol", 0.01, "relative error tolerance for validation")
	pf.StringVar(&o.csvPath, "csv", "", "write the per-state breakdown to a CSV file")
	pf.StringVar(&o.jsonPath, "json", "", "write the full report to a JSON file")
	pf.BoolVar(&o.pretty, "pretty", true, "format output as a table instead of CSV-like lines")

	var end float64
	replay := &cobra.Command{
		Use:   "replay <log.csv>",
		Short: "Replay a transition log and report its energy",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runReplay(o, args[0], end)
		},
	}
	replay.Flags().Float64Var(&end, "end", math.NaN(), "finalize timestamp in seconds (default: the last logged timestamp)")

	var horizon float64
	simulate := &cobra.Command{
		Use:   "simulate",
		Short: "Run the cyclic reference schedule and report its energy",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSimulate(o, horizon)
		},
	}
	simulate.Flags().Float64Var(&horizon, "horizon", 1296000, "virtual-time horizon in seconds")

	var broker, topic, clientID, listen string
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Account live MQTT transitions until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), o, broker, topic, clientID, listen)
		},
	}
	watch.Flags().StringVar(&broker, "broker", "tcp://localhost:1883", "MQTT broker URL")
	watch.Flags().StringVar(&topic, "topic", "energy/device/transitions", "MQTT topic carrying transition payloads")
	watch.Flags().StringVar(&clientID, "client-id", "statewatt", "MQTT client identifier")
	watch.Flags().StringVar(&listen, "listen", "", "serve the running report over HTTP on this address (empty = disabled)")

	root.AddCommand(replay, simulate, watch)

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func runReplay(o opts, path string, end float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := source.NewCSVSource(f)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer src.Close()

	table, err := buildTable(o)
	if err != nil {
		return err
	}
	in := energy.NewIntegrator(table)

	last := math.NaN()
	for {
		tr, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := in.OnTransition(tr.State, tr.TimeSec); err != nil {
			return err
		}
		last = tr.TimeSec
	}

	if math.IsNaN(end) {
		if math.IsNaN(last) {
			return fmt.Errorf("log %s has no transitions", path)
		}
		end = last
	}
	if err := in.Finalize(end); err != nil {
		return err
	}
	return emit(o, in)
}

func runSimulate(o opts, horizon float64) error {
	src, err := source.NewScheduleSource(source.ReferenceSchedule(), horizon)
	if err != nil {
		return err
	}
	defer src.Close()

	table, err := buildTable(o)
	if err != nil {
		return err
	}
	in := energy.NewIntegrator(table)

	for {
		tr, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := in.OnTransition(tr.State, tr.TimeSec); err != nil {
			return err
		}
	}
	if err := in.Finalize(horizon); err != nil {
		return err
	}
	return emit(o, in)
}

func runWatch(ctx context.Context, o opts, broker, topic, clientID, listen string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	table, err := buildTable(o)
	if err != nil {
		return err
	}
	g := newLockedIntegrator(energy.NewIntegrator(table))

	src, err := source.NewMQTTSource(broker, topic, clientID)
	if err != nil {
		return err
	}
	defer src.Close()

	if listen != "" {
		go func() {
			if err := api.ListenAndServe(listen, g); err != nil {
				slog.Error("report api", "err", err)
			}
		}()
		slog.Info("report api listening", "addr", listen)
	}

	events := make(chan source.Transition)
	go func() {
		defer close(events)
		for {
			tr, err := src.Next()
			if err != nil {
				return
			}
			select {
			case events <- tr:
			case <-ctx.Done():
				return
			}
		}
	}()

	slog.Info("accounting transitions", "broker", broker, "topic", topic)
	start := time.Now()
loop:
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted")
			break loop
		case tr, ok := <-events:
			if !ok {
				break loop
			}
			if err := g.OnTransition(tr.State, tr.TimeSec); err != nil {
				slog.Warn("event rejected", "state", tr.State, "time_s", tr.TimeSec, "err", err)
			}
		}
	}

	// Close the trailing interval at whichever is later: wall-clock elapsed
	// time or the last event's own timestamp.
	end := math.Max(time.Since(start).Seconds(), g.Report().EndTimeSec)
	if err := g.Finalize(end); err != nil {
		return err
	}
	return emit(o, g)
}
