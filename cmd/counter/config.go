package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scenario describes one counter run.
type scenario struct {
	Start         int  `yaml:"start"`
	Target        int  `yaml:"target"`
	Step          int  `yaml:"step"`
	CloseAt       int  `yaml:"closeAt"`
	Click         bool `yaml:"click"`
	MemoCacheSize int  `yaml:"memoCacheSize"`
}

func defaultScenario() scenario {
	return scenario{
		Start:         0,
		Target:        3,
		Step:          1,
		CloseAt:       3,
		MemoCacheSize: 64,
	}
}

func loadScenario(path string) (scenario, error) {
	s := defaultScenario()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading scenario: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return s, s.validate()
}

func (s scenario) validate() error {
	if s.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d", s.Step)
	}
	if s.MemoCacheSize <= 0 {
		return fmt.Errorf("memoCacheSize must be positive, got %d", s.MemoCacheSize)
	}
	if s.CloseAt < s.Start {
		return fmt.Errorf("closeAt %d is below start %d", s.CloseAt, s.Start)
	}
	if peak := s.peak(); s.CloseAt > peak {
		return fmt.Errorf("closeAt %d is unreachable, the counter stops at %d", s.CloseAt, peak)
	}
	return nil
}

// peak is the highest value the counter reaches. The counter only closes
// itself once its value reaches CloseAt, so a scenario whose peak is below
// CloseAt would run forever.
func (s scenario) peak() int {
	peak := max(s.Start, s.Target)
	if s.Click {
		// the click lands in the same batch as the first step.
		first := s.Start
		if first < s.Target {
			first = min(first+s.Step, s.Target)
		}
		peak = max(peak, first+2)
	}
	return peak
}
