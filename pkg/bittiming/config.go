package bittiming

import "fmt"

// Register limits of the AVR CAN controller. The BRP field of CANBT1 is
// 6 bits wide, the segment fields of CANBT2/CANBT3 are 3 bits wide.
const (
	MinTbit      = 8
	MaxTbit      = 25
	MaxPrescaler = 64
	MaxSegment   = 8
)

// Config describes one valid CAN bit-timing configuration: how a single bit
// time is divided into time quanta and which prescaler derives the time
// quantum from the CPU clock. Instances are produced by Search and are not
// modified afterwards.
type Config struct {
	CPUFrequency int     // system clock in Hz
	BaudRate     int     // target bus rate in bps
	ClocksPerBit float64 // ideal CPU clocks per bit, generally fractional
	Prescaler    int     // clock divider, 1..64 (6-bit BRP register)
	Tbit         int     // time quanta per bit, 8..25
	SyncSeg      int     // synchronization segment, always 1 TQ
	PropSeg      int     // propagation segment, 1..8 TQ
	PhaseSeg1    int     // phase segment 1, 1..8 TQ
	PhaseSeg2    int     // phase segment 2, 2..PhaseSeg1 TQ
	SJW          int     // resync jump width, always 1 TQ here
	ErrorRate    float64 // quantization error of Tbit against ClocksPerBit
}

// Validate checks the segment sum and the register ranges. Search only emits
// configurations that pass, so a failure here means a hand-built Config.
func (c Config) Validate() error {
	if sum := c.SyncSeg + c.PropSeg + c.PhaseSeg1 + c.PhaseSeg2; sum != c.Tbit {
		return fmt.Errorf("segments sum to %d time quanta, want Tbit=%d", sum, c.Tbit)
	}
	if c.Tbit < MinTbit || c.Tbit > MaxTbit {
		return fmt.Errorf("Tbit %d outside %d..%d", c.Tbit, MinTbit, MaxTbit)
	}
	if c.Prescaler < 1 || c.Prescaler > MaxPrescaler {
		return fmt.Errorf("prescaler %d outside 1..%d", c.Prescaler, MaxPrescaler)
	}
	if c.PropSeg < 1 || c.PropSeg > MaxSegment {
		return fmt.Errorf("propagation segment %d outside 1..%d", c.PropSeg, MaxSegment)
	}
	if c.PhaseSeg1 < 1 || c.PhaseSeg1 > MaxSegment {
		return fmt.Errorf("phase segment 1 %d outside 1..%d", c.PhaseSeg1, MaxSegment)
	}
	if c.PhaseSeg2 < 2 || c.PhaseSeg2 > c.PhaseSeg1 {
		return fmt.Errorf("phase segment 2 %d outside 2..%d", c.PhaseSeg2, c.PhaseSeg1)
	}
	return nil
}

// SamplePoint returns the position of the sample point as a percentage of
// the bit time. The bus is sampled between phase segment 1 and 2.
func (c Config) SamplePoint() float64 {
	if c.Tbit == 0 {
		return 0
	}
	return float64(c.SyncSeg+c.PropSeg+c.PhaseSeg1) / float64(c.Tbit) * 100
}

func (c Config) String() string {
	return fmt.Sprintf("CAN baudrate: %d cpu frequency: %d", c.BaudRate, c.CPUFrequency)
}
