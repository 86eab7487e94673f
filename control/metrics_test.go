// control/metrics_test.go
// Author: momentics <momentics@gmail.com>

package control_test

import (
	"testing"

	"github.com/momentics/slotpool/api"
	"github.com/momentics/slotpool/control"
	"github.com/momentics/slotpool/pool"
)

func TestMetricsRegistry(t *testing.T) {
	mr := control.NewMetricsRegistry()
	if !mr.Updated().IsZero() {
		t.Error("fresh registry should have no update time")
	}
	mr.Set("answer", 42)
	snap := mr.GetSnapshot()
	if snap["answer"] != 42 {
		t.Fatalf("unexpected snapshot %v", snap)
	}
	snap["answer"] = 0
	if mr.GetSnapshot()["answer"] != 42 {
		t.Error("snapshot must be a copy")
	}
}

func TestPublishPoolStats(t *testing.T) {
	p := pool.MustDeclare(64, 4)
	b1, _ := p.Get()
	b2, _ := p.Get()
	b1.Release()

	set := control.NewPoolSet()
	set.Add("rx", p)
	mr := control.NewMetricsRegistry()
	set.Publish(mr)

	snap := mr.GetSnapshot()
	if snap["pool.rx.in_use"] != int64(1) {
		t.Errorf("in_use: %v", snap["pool.rx.in_use"])
	}
	if snap["pool.rx.available"] != 3 {
		t.Errorf("available: %v", snap["pool.rx.available"])
	}
	if snap["pool.rx.gets"] != uint64(2) || snap["pool.rx.releases"] != uint64(1) {
		t.Errorf("gets/releases: %v/%v", snap["pool.rx.gets"], snap["pool.rx.releases"])
	}
	b2.Release()
}

func TestDebugProbes(t *testing.T) {
	p := pool.MustDeclare(32, 2)
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)

	set := control.NewPoolSet()
	set.Add("small", p)
	set.RegisterProbes(dp)

	b, _ := p.Get()
	state := dp.DumpState()
	st, ok := state["pool.small"].(api.PoolStats)
	if !ok {
		t.Fatalf("missing pool probe: %v", state)
	}
	if st.InUse != 1 || st.Slots != 2 {
		t.Errorf("unexpected stats %+v", st)
	}
	if n, ok := state["platform.cpus"].(int); !ok || n < 1 {
		t.Errorf("platform.cpus: %v", state["platform.cpus"])
	}
	if _, ok := state["platform.pagesize"]; !ok {
		t.Error("platform.pagesize missing")
	}
	b.Release()
}
