// Package header renders a selected bit-timing configuration as a C header
// of preprocessor constants, ready to compile into AVR firmware.
package header

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/mscrnt/canbaud/pkg/bittiming"
)

// Define is one C preprocessor definition in the generated header.
type Define struct {
	Name  string
	Value interface{}
}

func (d Define) String() string {
	return fmt.Sprintf("#define %s (%v)", strings.ToUpper(d.Name), d.Value)
}

// Defines returns every field of the configuration as a named constant.
func Defines(cfg bittiming.Config) []Define {
	return []Define{
		{Name: "CAN_BAUDRATE", Value: cfg.BaudRate},
		{Name: "CAN_PRESCALER", Value: cfg.Prescaler},
		{Name: "CAN_CLKS_PR_BIT", Value: cfg.ClocksPerBit},
		{Name: "CAN_TBIT", Value: cfg.Tbit},
		{Name: "CAN_TSYNS", Value: cfg.SyncSeg},
		{Name: "CAN_TPRS", Value: cfg.PropSeg},
		{Name: "CAN_TPH1", Value: cfg.PhaseSeg1},
		{Name: "CAN_TPH2", Value: cfg.PhaseSeg2},
		{Name: "CAN_SJW", Value: cfg.SJW},
		{Name: "CAN_ERR_RATE", Value: cfg.ErrorRate},
	}
}

// registerDefines are the CANBT register packing expressions. The hardware
// stores every field biased by one, hence the -1 on each operand.
func registerDefines() []Define {
	return []Define{
		{Name: "CANBT1_VALUE", Value: "(CAN_PRESCALER-1)<<BRP0"},
		{Name: "CANBT2_VALUE", Value: "((CAN_TPRS-1)<<PRS0) | ((CAN_SJW-1)<<SJW0)"},
		{Name: "CANBT3_VALUE", Value: "((CAN_TPH1-1)<<PHS10) | ((CAN_TPH2-1)<<PHS20)"},
	}
}

// Options controls header rendering.
type Options struct {
	Guard       string    // include guard base name, e.g. "can_baud"
	GeneratedAt time.Time // timestamp for the file comment; zero means now
}

var headerTemplate = template.Must(template.New("header").Parse(`/**
 * {{.GeneratedAt}}
 * This file is machine generated and should not be altered by hand.
 */

#ifndef {{.Guard}}_H
#define {{.Guard}}_H

#if F_CPU == {{.CPUFrequency}}

{{range .Defines}}{{.}}
{{end}}{{range .Registers}}{{.}}
{{end}}
#endif /* F_CPU == {{.CPUFrequency}} */

#endif /* {{.Guard}}_H */
`))

// Render writes the C header for cfg to w.
func Render(w io.Writer, cfg bittiming.Config, opts Options) error {
	guard := opts.Guard
	if guard == "" {
		guard = "can_baud"
	}
	guard = strings.ToUpper(strings.ReplaceAll(guard, " ", "_"))

	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	data := struct {
		Guard        string
		GeneratedAt  string
		CPUFrequency int
		Defines      []Define
		Registers    []Define
	}{
		Guard:        guard,
		GeneratedAt:  generatedAt.Format(time.ANSIC),
		CPUFrequency: cfg.CPUFrequency,
		Defines:      Defines(cfg),
		Registers:    registerDefines(),
	}

	if err := headerTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}
