package frame

import "testing"

func TestNewRingRejectsZeroSlots(t *testing.T) {
	if _, err := NewRing(0); err == nil {
		t.Fatal("expected error for 0 slots")
	}
	if _, err := NewRing(-1); err == nil {
		t.Fatal("expected error for negative slots")
	}
}

func TestRingCyclesSlots(t *testing.T) {
	r, err := NewRing(2)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 0, 1, 0}
	for i, w := range want {
		if got := r.Slot(); got != w {
			t.Errorf("iteration %d: slot = %d, want %d", i, got, w)
		}
		r.Advance()
	}
	if r.FrameNumber() != 5 {
		t.Errorf("frame number = %d, want 5", r.FrameNumber())
	}
}

func TestSingleSlotRingDegenerates(t *testing.T) {
	r, err := NewRing(1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if r.Slot() != 0 {
			t.Fatalf("iteration %d: slot = %d, want 0", i, r.Slot())
		}
		r.Advance()
	}
}
