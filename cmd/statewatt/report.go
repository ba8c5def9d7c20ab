package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/statewatt/statewatt/pkg/energy"
	"github.com/statewatt/statewatt/pkg/types"
)

// reporter is what emit needs from the accountant; satisfied by both the raw
// integrator and the locked wrapper.
type reporter interface {
	Report() energy.Report
	Validate(referenceJ, tolerance float64) (energy.Validation, error)
}

// emit renders the final report to stdout and the requested files, then runs
// validation when a reference figure was given. A failed validation is
// returned as an error so the process exits nonzero.
func emit(o opts, r reporter) error {
	rep := r.Report()

	if o.pretty {
		printTable(rep)
	} else {
		printCsvLike(rep)
	}
	printSummary(rep)

	if rep.UnknownLookups > 0 {
		slog.Warn("uncharacterized states billed at default power",
			"lookups", rep.UnknownLookups)
	}

	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, rep); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, rep); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}

	if o.ref > 0 {
		v, err := r.Validate(o.ref, o.tol)
		if err != nil {
			return err
		}
		printValidation(v)
		if !v.Pass {
			return fmt.Errorf("validation failed: computed %.4f J vs reference %.4f J (rel err %.4f%%, tolerance %.2f%%)",
				v.ComputedJ, v.ReferenceJ, v.RelError*100, v.Tolerance*100)
		}
	}
	return nil
}

func printTable(rep energy.Report) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tPOWER (W)\tDURATION (s)\tENERGY (J)\tSHARE")
	fmt.Fprintln(tw, "-----\t---------\t------------\t----------\t-----")
	for _, row := range rep.States {
		fmt.Fprintf(tw, "%d\t%.4f\t%.1f\t%.3f\t%.1f%%\n",
			row.State, row.PowerW, row.DurationSec, row.EnergyJ, row.Share*100)
	}
	tw.Flush()
}

func printCsvLike(rep energy.Report) {
	fmt.Println("# state, power_w, duration_sec, energy_j, share")
	for _, row := range rep.States {
		fmt.Printf("%d, %.4f, %.1f, %.3f, %.4f\n",
			row.State, row.PowerW, row.DurationSec, row.EnergyJ, row.Share)
	}
}

func printSummary(rep energy.Report) {
	fmt.Println()
	fmt.Printf("total energy : %s (%.4f Wh)\n",
		types.Joules(rep.TotalEnergyJ).Humanized(), types.Joules(rep.TotalEnergyJ).WattHours())
	fmt.Printf("final power  : %s\n", types.Watts(rep.CurrentPowerW).Humanized())
	fmt.Printf("elapsed      : %.1f s over %d transitions\n", rep.ElapsedSec, rep.Transitions)
	if rep.UnknownLookups > 0 {
		fmt.Printf("data quality : %d unknown-state lookups\n", rep.UnknownLookups)
	}
}

func printValidation(v energy.Validation) {
	verdict := "PASS"
	if !v.Pass {
		verdict = "FAIL"
	}
	fmt.Println()
	fmt.Printf("validation   : %s\n", verdict)
	fmt.Printf("computed     : %.4f J\n", v.ComputedJ)
	fmt.Printf("reference    : %.4f J\n", v.ReferenceJ)
	fmt.Printf("abs error    : %.4f J\n", v.AbsErrorJ)
	fmt.Printf("rel error    : %.4f%% (tolerance %.2f%%)\n", v.RelError*100, v.Tolerance*100)
}

func writeCSV(path string, rep energy.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"state", "power_w", "duration_sec", "energy_j", "share"}); err != nil {
		return err
	}
	for _, row := range rep.States {
		rec := []string{
			strconv.Itoa(row.State),
			fmtFloat(row.PowerW),
			fmtFloat(row.DurationSec),
			fmtFloat(row.EnergyJ),
			fmtFloat(row.Share),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, rep energy.Report) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
