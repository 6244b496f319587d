// Package sweep solves bit timings for a whole set of baud rates at once,
// as described by a small YAML plan file.
package sweep

import (
	"fmt"
	"os"

	"github.com/mscrnt/canbaud/pkg/bittiming"
	"gopkg.in/yaml.v3"
)

// Plan is a batch of baud rates to solve against one CPU frequency.
type Plan struct {
	CPUFrequency int   `yaml:"f_cpu"`
	BaudRates    []int `yaml:"baudrates"`
}

// Load reads and validates a plan from a YAML file.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- plan path is a user-specified command line flag
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML plan.
func Parse(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// Validate checks that the plan names a usable clock and at least one rate.
func (p Plan) Validate() error {
	if p.CPUFrequency <= 0 {
		return fmt.Errorf("f_cpu must be positive, got %d", p.CPUFrequency)
	}
	if len(p.BaudRates) == 0 {
		return fmt.Errorf("at least one baud rate is required")
	}
	for _, b := range p.BaudRates {
		if b <= 0 {
			return fmt.Errorf("baud rates must be positive, got %d", b)
		}
	}
	return nil
}

// Entry is the outcome for a single baud rate of a plan.
type Entry struct {
	BaudRate   int
	Candidates int              // how many configurations passed the search
	Config     bittiming.Config // best configuration, valid only when Found
	Found      bool
	Err        error
}

// Run solves every baud rate in input order. A baud rate without a valid
// configuration is reported in its entry as Found=false; it never aborts
// the rest of the batch.
func (p Plan) Run() []Entry {
	entries := make([]Entry, 0, len(p.BaudRates))
	for _, baudRate := range p.BaudRates {
		entry := Entry{BaudRate: baudRate}
		configs, err := bittiming.Search(baudRate, p.CPUFrequency)
		if err != nil {
			entry.Err = err
		} else {
			entry.Candidates = len(configs)
			entry.Config, entry.Found = bittiming.Best(configs)
		}
		entries = append(entries, entry)
	}
	return entries
}
