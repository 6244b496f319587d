package main

import (
	"fmt"

	"github.com/mscrnt/canbaud/pkg/sweep"
	"github.com/spf13/cobra"
)

var (
	sweepFile   string
	sweepOutput string
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve a whole set of baud rates from a plan file",
		Long: `Solve the best bit-timing configuration for every baud rate in a YAML
plan file. Baud rates without a valid configuration are reported inline;
they do not abort the rest of the sweep.

The plan file looks like:

  f_cpu: 16000000
  baudrates: [100000, 125000, 250000, 500000]

Examples:
  canbaud sweep --file plan.yaml
  canbaud sweep --file plan.yaml --out timings.txt`,
		RunE: runSweep,
	}

	cmd.Flags().StringVarP(&sweepFile, "file", "f", "", "YAML sweep plan")
	cmd.Flags().StringVarP(&sweepOutput, "out", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSweep(_ *cobra.Command, _ []string) error {
	plan, err := sweep.Load(sweepFile)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(sweepOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	fmt.Fprintf(out, "CPU frequency %d hz\n\n", plan.CPUFrequency)
	fmt.Fprintf(out, "%-10s  %-9s  %-4s  %-10s  %-9s  %s\n",
		"baudrate", "prescaler", "Tbit", "segments", "sample pt", "error")

	for _, e := range plan.Run() {
		switch {
		case e.Err != nil:
			fmt.Fprintf(out, "%-10d  %v\n", e.BaudRate, e.Err)
		case !e.Found:
			fmt.Fprintf(out, "%-10d  no valid configuration\n", e.BaudRate)
		default:
			c := e.Config
			fmt.Fprintf(out, "%-10d  %-9d  %-4d  %d/%d/%d/%d%5s  %7.1f%%  %g\n",
				e.BaudRate, c.Prescaler, c.Tbit,
				c.SyncSeg, c.PropSeg, c.PhaseSeg1, c.PhaseSeg2, "",
				c.SamplePoint(), c.ErrorRate)
		}
	}

	return nil
}
