package modint

import "testing"

// TestAddSubAndDistancesWrapAroundModulus covers mod=12: value=10,
// +=5 -> 3; value=2, -=5 -> 9; distances from 2 to 10.
func TestAddSubAndDistancesWrapAroundModulus(t *testing.T) {
	a := New(10, 12)
	a = a.Add(5)
	if a.Value() != 3 {
		t.Fatalf("expected 10+5 mod 12 = 3, got %d", a.Value())
	}

	b := New(2, 12)
	b = b.Sub(5)
	if b.Value() != 9 {
		t.Fatalf("expected 2-5 mod 12 = 9, got %d", b.Value())
	}

	from := New(2, 12)
	to := New(10, 12)

	if cw := from.ClockwiseDistance(to); cw != 8 {
		t.Fatalf("expected clockwise distance 2->10 = 8, got %d", cw)
	}
	if ccw := from.CounterClockwiseDistance(to); ccw != 4 {
		t.Fatalf("expected counter-clockwise distance 2->10 = 4, got %d", ccw)
	}
	if md := from.MinimumDistance(to); md != 4 {
		t.Fatalf("expected minimum distance 2->10 = 4, got %d", md)
	}
}

func TestIncDecCycleThroughAllResidues(t *testing.T) {
	const mod = 7
	v := New(0, mod)

	seen := map[uint64]bool{}
	for i := 0; i < mod; i++ {
		seen[v.Value()] = true
		v = v.Inc()
	}
	if v.Value() != 0 {
		t.Fatalf("expected Inc to cycle back to 0 after mod steps, got %d", v.Value())
	}
	if len(seen) != mod {
		t.Fatalf("expected to visit all %d residues, visited %d", mod, len(seen))
	}

	v = New(0, mod)
	v = v.Dec()
	if v.Value() != mod-1 {
		t.Fatalf("expected Dec from 0 to wrap to mod-1=%d, got %d", mod-1, v.Value())
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	if got := Normalize(17, 5); got != 2 {
		t.Fatalf("expected Normalize(17,5)=2, got %d", got)
	}
	if !Validate(4, 5) {
		t.Fatalf("expected 4 to validate in [0,5)")
	}
	if Validate(5, 5) {
		t.Fatalf("expected 5 to be invalid in [0,5)")
	}
}

func TestEqualPanicsOnModulusMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on modulus mismatch")
		}
	}()

	a := New(1, 5)
	b := New(1, 6)
	_ = a.Equal(b)
}

func TestNewPanicsOnInvalidModulus(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for modulus <= 1")
		}
	}()
	_ = New(0, 1)
}
