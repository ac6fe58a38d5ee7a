package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SimulatorOverlay is the runtime-changeable part of the simulator configuration.
// Zero values leave the corresponding setting untouched.
type SimulatorOverlay struct {
	// MinWait and MaxWait are in seconds
	MinWait *float64           `yaml:"min_wait,omitempty"`
	MaxWait *float64           `yaml:"max_wait,omitempty"`
	Paused  bool               `yaml:"paused"`
	Actions map[string]float64 `yaml:"actions,omitempty"`
}

// Waits resolves the overlay waits against the current values.
func (o *SimulatorOverlay) Waits(curMin, curMax time.Duration) (time.Duration, time.Duration) {
	lo, hi := curMin, curMax
	if o.MinWait != nil {
		lo = seconds(*o.MinWait)
	}
	if o.MaxWait != nil {
		hi = seconds(*o.MaxWait)
	}
	return lo, hi
}

// Validate checks the overlay for values the simulator cannot apply.
func (o *SimulatorOverlay) Validate() error {
	if o.MinWait != nil && *o.MinWait < 0 {
		return fmt.Errorf("min_wait cannot be negative")
	}
	if o.MaxWait != nil && *o.MaxWait < 0 {
		return fmt.Errorf("max_wait cannot be negative")
	}
	if o.MinWait != nil && o.MaxWait != nil && *o.MaxWait < *o.MinWait {
		return fmt.Errorf("max_wait must be >= min_wait")
	}

	total := 0.0
	for name, w := range o.Actions {
		if w < 0 {
			return fmt.Errorf("weight for action %q cannot be negative", name)
		}
		total += w
	}
	if len(o.Actions) > 0 && total == 0 {
		return fmt.Errorf("at least one action weight must be positive")
	}
	return nil
}

// LoadOverlay reads and validates a YAML overlay file.
func LoadOverlay(path string) (*SimulatorOverlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay file: %w", err)
	}
	return ParseOverlay(data)
}

// ParseOverlay decodes and validates overlay YAML.
func ParseOverlay(data []byte) (*SimulatorOverlay, error) {
	var overlay SimulatorOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse overlay YAML: %w", err)
	}
	if err := overlay.Validate(); err != nil {
		return nil, err
	}
	return &overlay, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
