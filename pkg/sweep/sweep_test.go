package sweep

import (
	"errors"
	"strings"
	"testing"

	"github.com/mscrnt/canbaud/pkg/bittiming"
)

func TestParse(t *testing.T) {
	plan, err := Parse([]byte("f_cpu: 16000000\nbaudrates: [100000, 125000, 250000]\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if plan.CPUFrequency != 16000000 {
		t.Errorf("CPUFrequency = %d, want 16000000", plan.CPUFrequency)
	}
	if len(plan.BaudRates) != 3 || plan.BaudRates[0] != 100000 {
		t.Errorf("BaudRates = %v, want [100000 125000 250000]", plan.BaudRates)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "malformed yaml", input: "f_cpu: [", wantErr: "failed to parse plan"},
		{name: "missing f_cpu", input: "baudrates: [100000]", wantErr: "f_cpu must be positive"},
		{name: "negative f_cpu", input: "f_cpu: -1\nbaudrates: [100000]", wantErr: "f_cpu must be positive"},
		{name: "no baud rates", input: "f_cpu: 16000000", wantErr: "at least one baud rate"},
		{name: "negative baud rate", input: "f_cpu: 16000000\nbaudrates: [100000, -5]", wantErr: "baud rates must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("Parse succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunPreservesOrderAndIsolatesAbsence(t *testing.T) {
	// 16 MHz: 100 kbps has an exact configuration, 1 Mbps has none. The
	// absence must be reported in place without affecting its neighbors.
	plan := Plan{CPUFrequency: 16000000, BaudRates: []int{100000, 1000000, 100000}}

	entries := plan.Run()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	for i, want := range plan.BaudRates {
		if entries[i].BaudRate != want {
			t.Errorf("entry %d baud rate = %d, want %d (input order must hold)", i, entries[i].BaudRate, want)
		}
	}

	if !entries[0].Found || entries[0].Config.Tbit != 10 || entries[0].Config.Prescaler != 16 {
		t.Errorf("entry 0 = %+v, want Tbit 10, prescaler 16", entries[0])
	}
	if entries[1].Found || entries[1].Candidates != 0 || entries[1].Err != nil {
		t.Errorf("entry 1 = %+v, want a clean absence", entries[1])
	}
	if !entries[2].Found {
		t.Errorf("entry 2 not found; an earlier absence must not abort the batch")
	}
}

func TestRunRecordsPerEntryErrors(t *testing.T) {
	// Programmatic plans can bypass Validate; a bad entry stays contained.
	plan := Plan{CPUFrequency: 16000000, BaudRates: []int{-1, 100000}}

	entries := plan.Run()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !errors.Is(entries[0].Err, bittiming.ErrInvalidArgument) {
		t.Errorf("entry 0 err = %v, want ErrInvalidArgument", entries[0].Err)
	}
	if !entries[1].Found || entries[1].Err != nil {
		t.Errorf("entry 1 = %+v, want a successful result after the failed entry", entries[1])
	}
}
