// Package bittiming computes CAN bit-timing configurations for the AVR CAN
// controller. For a target baud rate and CPU clock it enumerates every way to
// split one bit time into 8..25 time quanta, keeps the splits the controller's
// registers can hold, and rates each by how far the quantization lands from
// the ideal clocks-per-bit value.
package bittiming

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument reports a non-positive baud rate or CPU frequency.
var ErrInvalidArgument = errors.New("invalid argument")

// Search returns every valid bit-timing configuration for the given baud
// rate and CPU frequency, ordered by ascending Tbit. An empty result means
// no quantization fits within the error limit; it is not an error. Search is
// deterministic and has no side effects.
func Search(baudRate, cpuFreq int) ([]Config, error) {
	if baudRate <= 0 {
		return nil, fmt.Errorf("%w: baud rate must be positive, got %d", ErrInvalidArgument, baudRate)
	}
	if cpuFreq <= 0 {
		return nil, fmt.Errorf("%w: cpu frequency must be positive, got %d", ErrInvalidArgument, cpuFreq)
	}

	clocksPerBit := float64(cpuFreq) / float64(baudRate)

	var configs []Config
	for tbit := MinTbit; tbit <= MaxTbit; tbit++ {
		// The remainder of the ideal clocks-per-bit over this Tbit is the
		// quantization mismatch. Deliberately a raw modulo, not a normalized
		// percentage; the acceptance limits below are calibrated to it.
		errorRate := math.Mod(clocksPerBit, float64(tbit))

		prescaler := int(clocksPerBit / float64(tbit))
		if prescaler < 1 || prescaler > MaxPrescaler {
			// BRP is a 6-bit register; it holds 1..64 once biased.
			continue
		}

		syncSeg := 1
		propSeg := tbit / 2 // an odd Tbit leaves its spare quantum to the phase segments
		phaseSeg1 := propSeg / 2
		if (tbit-propSeg-syncSeg)%2 != 0 {
			phaseSeg1++
		}
		phaseSeg2 := propSeg / 2
		sjw := 1 // can vary 1..4 but is 1 in all AVR application notes

		cfg := Config{
			CPUFrequency: cpuFreq,
			BaudRate:     baudRate,
			ClocksPerBit: clocksPerBit,
			Prescaler:    prescaler,
			Tbit:         tbit,
			SyncSeg:      syncSeg,
			PropSeg:      propSeg,
			PhaseSeg1:    phaseSeg1,
			PhaseSeg2:    phaseSeg2,
			SJW:          sjw,
			ErrorRate:    errorRate,
		}
		if cfg.Validate() != nil {
			continue
		}

		if errorRate < maxErrorRate(cfg) {
			configs = append(configs, cfg)
		}
	}

	return configs, nil
}

// maxErrorRate returns the acceptance limit for a candidate. The relaxed
// 1.58 limit comes from the AVR high-speed tables and requires SJW == 4;
// Search pins SJW to 1, so that branch cannot fire today. Kept as written
// until the SJW policy becomes configurable.
func maxErrorRate(c Config) float64 {
	if c.PropSeg == 1 && c.PhaseSeg1 == 4 && c.PhaseSeg2 == 4 && c.SJW == 4 && c.BaudRate > 125000 {
		return 1.58
	}
	return 0.5
}

// Best picks the candidate with the smallest error rate. The boolean is
// false when candidates is empty: no valid timing exists for the searched
// rate, which callers treat as a normal outcome. On equal error rates the
// earliest candidate wins, so results stay stable across calls.
func Best(candidates []Config) (Config, bool) {
	if len(candidates) == 0 {
		return Config{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.ErrorRate < best.ErrorRate {
			best = c
		}
	}
	return best, true
}
