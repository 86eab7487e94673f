package concurrency

import (
	"errors"
	"testing"
)

func TestPinCurrentThread(t *testing.T) {
	err := PinCurrentThread(WorkerCPU(0))
	defer UnpinCurrentThread()
	if errors.Is(err, ErrInvalidCPU) {
		t.Fatal("CPU 0 rejected as invalid")
	}
	if err != nil {
		t.Logf("pinning unavailable here: %v", err)
	}
}

func TestPinRejectsInvalidCPU(t *testing.T) {
	if err := PinCurrentThread(-1); !errors.Is(err, ErrInvalidCPU) {
		t.Fatalf("PinCurrentThread(-1) = %v", err)
	}
	if err := PinCurrentThread(NumCPUs()); !errors.Is(err, ErrInvalidCPU) {
		t.Fatalf("PinCurrentThread(NumCPUs) = %v", err)
	}
}

func TestWorkerCPUWraps(t *testing.T) {
	n := NumCPUs()
	if WorkerCPU(n) != 0 || WorkerCPU(n+1) != 1%n {
		t.Fatalf("WorkerCPU does not wrap over %d CPUs", n)
	}
}
