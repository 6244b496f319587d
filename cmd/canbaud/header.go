package main

import (
	"fmt"
	"time"

	"github.com/mscrnt/canbaud/pkg/bittiming"
	"github.com/mscrnt/canbaud/pkg/header"
	"github.com/spf13/cobra"
)

var (
	headerFCPU     int
	headerBaudRate int
	headerName     string
	headerOutput   string
)

func headerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Generate a C header with the best configuration",
		Long: `Generate a C header file with suitable bit-timing constants for the
baudrate at the given cpu frequency.

Examples:
  # Print the header to stdout
  canbaud header --f-cpu 16000000 --baudrate 100000

  # Write it to a file with a custom include guard
  canbaud header --f-cpu 16000000 --baudrate 100000 --name mcu_can --out can_baud.h`,
		RunE: runHeader,
	}

	cmd.Flags().IntVar(&headerFCPU, "f-cpu", 0, "Clock frequency of the system clock in Hz")
	cmd.Flags().IntVar(&headerBaudRate, "baudrate", 0, "The desired CAN baudrate in bps")
	cmd.Flags().StringVar(&headerName, "name", "can_baud", "Include guard base name")
	cmd.Flags().StringVarP(&headerOutput, "out", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("f-cpu")
	_ = cmd.MarkFlagRequired("baudrate")

	return cmd
}

func runHeader(_ *cobra.Command, _ []string) error {
	configs, err := bittiming.Search(headerBaudRate, headerFCPU)
	if err != nil {
		return err
	}

	best, ok := bittiming.Best(configs)
	if !ok {
		return fmt.Errorf("no valid configuration for %d bps at %d Hz", headerBaudRate, headerFCPU)
	}

	out, closeOut, err := openOutput(headerOutput)
	if err != nil {
		return err
	}
	defer closeOut()

	opts := header.Options{Guard: headerName, GeneratedAt: time.Now()}
	if err := header.Render(out, best, opts); err != nil {
		return fmt.Errorf("failed to generate header: %w", err)
	}

	if headerOutput != "" {
		fmt.Printf("Wrote %s\n", headerOutput)
	}
	return nil
}
