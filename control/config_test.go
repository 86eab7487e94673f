// control/config_test.go
// Author: momentics <momentics@gmail.com>

package control_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momentics/slotpool/api"
	"github.com/momentics/slotpool/control"
)

const sample = `
[[pool]]
name     = "rx"
capacity = 64
count    = 16

[[pool]]
name      = "tx"
capacity  = 128
count     = 4
placement = "heap"
reclaim   = true

[stress]
workers    = 4
per_worker = 3
rounds     = 50
hold       = "2ms"
pin        = true
`

func TestParseConfig(t *testing.T) {
	cfg, err := control.ParseConfig([]byte(sample))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if len(cfg.Pools) != 2 {
		t.Fatalf("expected 2 pools, got %d", len(cfg.Pools))
	}
	if cfg.Pools[0].Name != "rx" || cfg.Pools[0].Capacity != 64 || cfg.Pools[0].Count != 16 {
		t.Errorf("unexpected first pool: %+v", cfg.Pools[0])
	}
	if !cfg.Pools[1].Reclaim {
		t.Error("expected reclaim on tx")
	}
	opts := cfg.Stress.Options()
	if opts.Workers != 4 || opts.Window != 3 || opts.Rounds != 50 || !opts.Pin {
		t.Errorf("unexpected stress options: %+v", opts)
	}
	if opts.Hold != 2*time.Millisecond {
		t.Errorf("expected 2ms hold, got %v", opts.Hold)
	}
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "[[pool]]\nname = \"a\"\ncapacity = 64\ncount = 1\nsize = 3\n",
		"missing name":   "[[pool]]\ncapacity = 64\ncount = 1\n",
		"duplicate name": "[[pool]]\nname = \"a\"\ncapacity = 64\ncount = 1\n[[pool]]\nname = \"a\"\ncapacity = 64\ncount = 1\n",
		"zero count":     "[[pool]]\nname = \"a\"\ncapacity = 64\ncount = 0\n",
		"bad placement":  "[[pool]]\nname = \"a\"\ncapacity = 64\ncount = 1\nplacement = \"gpu\"\n",
		"bad hold":       "[stress]\nhold = \"soon\"\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := control.ParseConfig([]byte(src))
			if !errors.Is(err, api.ErrInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
}

func TestParseConfigSyntaxError(t *testing.T) {
	_, err := control.ParseConfig([]byte("[[pool]\nname = "))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadConfigAndDeclare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.toml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := control.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	set, err := cfg.Declare()
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}
	defer set.Close()

	if set.Len() != 2 {
		t.Fatalf("expected 2 pools, got %d", set.Len())
	}
	if names := set.Names(); names[0] != "rx" || names[1] != "tx" {
		t.Errorf("unexpected names %v", names)
	}
	rx, ok := set.Get("rx")
	if !ok {
		t.Fatal("rx missing")
	}
	if rx.Capacity() != 64 || rx.Slots() != 16 {
		t.Errorf("rx: capacity %d slots %d", rx.Capacity(), rx.Slots())
	}
	if _, ok := set.Get("nope"); ok {
		t.Error("unexpected pool")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := control.LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestDeclareMisconfigured(t *testing.T) {
	// capacity below one machine word passes validation but not the pool.
	cfg, err := control.ParseConfig([]byte("[[pool]]\nname = \"tiny\"\ncapacity = 2\ncount = 4\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	_, err = cfg.Declare()
	if !errors.Is(err, api.ErrMisconfigured) {
		t.Fatalf("expected misconfigured, got %v", err)
	}
	var e *api.Error
	if !errors.As(err, &e) || e.Context["pool"] != "tiny" {
		t.Errorf("expected pool name in context, got %v", err)
	}
}

func TestPoolSetCloseBusy(t *testing.T) {
	cfg, err := control.ParseConfig([]byte("[[pool]]\nname = \"a\"\ncapacity = 64\ncount = 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	set, err := cfg.Declare()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := set.Get("a")
	b, ok := a.Get()
	if !ok {
		t.Fatal("expected a slot")
	}
	if err := set.Close(); !errors.Is(err, api.ErrPoolBusy) {
		t.Fatalf("expected busy, got %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("busy pool should stay registered")
	}
	b.Release()
	if err := set.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("expected empty set")
	}
}
