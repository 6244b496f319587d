package main

import (
	"fmt"

	"github.com/mscrnt/canbaud/pkg/bittiming"
	"github.com/spf13/cobra"
)

var (
	configFCPU       int
	configBaudRate   int
	configCandidates bool
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the best bit-timing configuration",
		Long: `Search all valid bit-timing configurations for the baudrate at the
given cpu frequency and print the one with the smallest quantization error.

Examples:
  # Best configuration for 100 kbps on a 16 MHz clock
  canbaud config --f-cpu 16000000 --baudrate 100000

  # Also list every candidate that passed the search
  canbaud config --f-cpu 16000000 --baudrate 100000 --candidates`,
		RunE: runConfig,
	}

	cmd.Flags().IntVar(&configFCPU, "f-cpu", 0, "Clock frequency of the system clock in Hz")
	cmd.Flags().IntVar(&configBaudRate, "baudrate", 0, "The desired CAN baudrate in bps")
	cmd.Flags().BoolVar(&configCandidates, "candidates", false, "List every valid candidate, not just the best")
	_ = cmd.MarkFlagRequired("f-cpu")
	_ = cmd.MarkFlagRequired("baudrate")

	return cmd
}

func runConfig(_ *cobra.Command, _ []string) error {
	configs, err := bittiming.Search(configBaudRate, configFCPU)
	if err != nil {
		return err
	}

	best, ok := bittiming.Best(configs)
	if !ok {
		return fmt.Errorf("no valid configuration for %d bps at %d Hz", configBaudRate, configFCPU)
	}

	fmt.Printf("CPU frequency %d hz, CAN baudrate %d bps, error rate: %g%%\n",
		best.CPUFrequency, best.BaudRate, best.ErrorRate)
	printConfig(best)

	if configCandidates {
		fmt.Printf("\n%d candidate(s):\n", len(configs))
		for _, c := range configs {
			fmt.Printf("  Tbit %2d  prescaler %2d  segments %d/%d/%d/%d  sample point %.1f%%  error %g\n",
				c.Tbit, c.Prescaler, c.SyncSeg, c.PropSeg, c.PhaseSeg1, c.PhaseSeg2, c.SamplePoint(), c.ErrorRate)
		}
	}

	return nil
}

func printConfig(c bittiming.Config) {
	fmt.Println("Config at Time Quantum = 1")
	fmt.Printf("\tPrescaler: %d\n", c.Prescaler)
	fmt.Printf("\tTbit: %d\n", c.Tbit)
	fmt.Printf("\tSync: %d\n", c.SyncSeg)
	fmt.Printf("\tPropagation segment: %d\n", c.PropSeg)
	fmt.Printf("\tPhase Segment 1: %d\n", c.PhaseSeg1)
	fmt.Printf("\tPhase Segment 2: %d\n", c.PhaseSeg2)
	fmt.Printf("\tSJW: %d\n", c.SJW)
	fmt.Printf("\tSample point: %.1f%%\n", c.SamplePoint())
}
