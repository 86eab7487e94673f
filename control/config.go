// control/config.go
// Author: momentics <momentics@gmail.com>
//
// TOML pool declarations.
//
//	[[pool]]
//	name      = "rx"
//	capacity  = 2048
//	count     = 512
//	placement = "locked"
//	reclaim   = false
//
//	[stress]
//	workers    = 10
//	per_worker = 2
//	rounds     = 1000
//	hold       = "1ms"
//	pin        = true

package control

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/momentics/slotpool/api"
	"github.com/momentics/slotpool/internal/workload"
	"github.com/momentics/slotpool/pool"
	"github.com/pelletier/go-toml/v2"
)

// PoolSpec declares one named pool.
type PoolSpec struct {
	Name      string `toml:"name"`
	Capacity  int    `toml:"capacity"`
	Count     int    `toml:"count"`
	Placement string `toml:"placement"`
	Reclaim   bool   `toml:"reclaim"`
}

// StressSpec tunes workload runs against declared pools.
type StressSpec struct {
	Workers   int    `toml:"workers"`
	PerWorker int    `toml:"per_worker"`
	Rounds    int    `toml:"rounds"`
	Hold      string `toml:"hold"`
	Pin       bool   `toml:"pin"`
}

// Config is the decoded declaration file.
type Config struct {
	Pools  []PoolSpec `toml:"pool"`
	Stress StressSpec `toml:"stress"`
}

// LoadConfig reads and validates the TOML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("control: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("control: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, api.NewError(api.ErrCodeInvalidArgument, "unknown config key").
				WithContext("detail", strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, api.NewError(api.ErrCodeInvalidArgument, derr.Error()).
				WithContext("line", row).
				WithContext("column", col)
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks names, sizes and placements without allocating anything.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Pools))
	for i, p := range c.Pools {
		if p.Name == "" {
			return invalid("pool without name", "index", i)
		}
		if seen[p.Name] {
			return invalid("duplicate pool name", "name", p.Name)
		}
		seen[p.Name] = true
		if p.Capacity <= 0 {
			return invalid("capacity must be positive", "name", p.Name)
		}
		if p.Count <= 0 {
			return invalid("count must be positive", "name", p.Name)
		}
		if _, err := pool.ParsePlacement(p.Placement); err != nil {
			return err
		}
	}
	if c.Stress.Workers < 0 || c.Stress.PerWorker < 0 || c.Stress.Rounds < 0 {
		return invalid("stress settings must not be negative", "workers", c.Stress.Workers)
	}
	if _, err := c.Stress.hold(); err != nil {
		return err
	}
	return nil
}

// Options converts the stress section for workload.Run.
func (s StressSpec) Options() workload.Options {
	hold, _ := s.hold()
	return workload.Options{
		Workers: s.Workers,
		Window:  s.PerWorker,
		Rounds:  s.Rounds,
		Hold:    hold,
		Pin:     s.Pin,
	}
}

func (s StressSpec) hold() (time.Duration, error) {
	if s.Hold == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Hold)
	if err != nil || d < 0 {
		return 0, invalid("bad hold duration", "hold", s.Hold)
	}
	return d, nil
}

// Declare builds every pool in the file. On failure the pools already built
// are closed again.
func (c *Config) Declare(opts ...pool.Option) (*PoolSet, error) {
	set := NewPoolSet()
	for _, p := range c.Pools {
		placement, err := pool.ParsePlacement(p.Placement)
		if err != nil {
			set.Close()
			return nil, err
		}
		o := append([]pool.Option{pool.WithPlacement(placement)}, opts...)
		if p.Reclaim {
			o = append(o, pool.WithReclaim())
		}
		pl, err := pool.Declare(p.Capacity, p.Count, o...)
		if err != nil {
			set.Close()
			var e *api.Error
			if errors.As(err, &e) {
				return nil, e.WithContext("pool", p.Name)
			}
			return nil, fmt.Errorf("pool %s: %w", p.Name, err)
		}
		set.Add(p.Name, pl)
	}
	return set, nil
}

func invalid(msg, key string, val any) error {
	return api.NewError(api.ErrCodeInvalidArgument, msg).WithContext(key, val)
}
