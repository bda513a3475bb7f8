package model

import "testing"

func TestPoolReusesReleasedPulse(t *testing.T) {
	pool := NewPulsePool(4)
	p := pool.Acquire(0, 1, 0.02)
	p.Progress = 0.9
	pool.Release(p)

	q := pool.Acquire(2, 3, 0.01)
	if q != p {
		t.Fatalf("expected the released pulse to be reused")
	}
	if q.From != 2 || q.To != 3 || q.Progress != 0 || q.Speed != 0.01 {
		t.Fatalf("reused pulse not reset: %+v", q)
	}
}

func TestPoolCapacityCapsRetention(t *testing.T) {
	pool := NewPulsePool(2)
	for i := 0; i < 5; i++ {
		pool.Release(&Pulse{})
	}
	if pool.Free() != 2 {
		t.Fatalf("expected pool to retain 2 pulses, got %d", pool.Free())
	}
}

func TestPoolAllocatesWhenEmpty(t *testing.T) {
	pool := NewPulsePool(2)
	a := pool.Acquire(0, 1, 0.02)
	b := pool.Acquire(0, 1, 0.02)
	if a == b {
		t.Fatalf("distinct acquisitions returned the same pulse")
	}
}
