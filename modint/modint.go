// Package modint provides a fixed-modulus integer type whose value is
// always kept in [0, mod), with the arithmetic cyclic buffers and
// reassemblers need: wrap-around increment/decrement and the three
// notions of distance around the ring (clockwise, counter-clockwise,
// minimum).
package modint

// Int is an integer value in [0, mod), with mod fixed at construction.
// Int has value semantics: every mutating-looking operation (Inc, Dec,
// Add, Sub) returns a new Int rather than modifying the receiver —
// the idiomatic Go analog of the original's copyable, assignable
// cyclic_number<T>.
type Int struct {
	value uint64
	mod   uint64
}

// New creates an Int with the given value and modulus. mod must be
// greater than 1 and value must already be in [0, mod).
func New(value, mod uint64) Int {
	if mod <= 1 {
		panic("modint: modulus must be greater than 1")
	}
	if !Validate(value, mod) {
		panic("modint: value out of range for modulus")
	}
	return Int{value: value, mod: mod}
}

// Validate reports whether value is in [0, mod). Since value is
// unsigned this is simply value < mod, but the helper exists so
// callers can mirror the original's explicit bounds check.
func Validate(value, mod uint64) bool {
	return value < mod
}

// Normalize reduces value into [0, mod) by repeated subtraction,
// matching the original's normalize (not a division modulus).
func Normalize(value, mod uint64) uint64 {
	for value >= mod {
		value -= mod
	}
	return value
}

// Value returns the current value.
func (i Int) Value() uint64 { return i.value }

// Mod returns the fixed modulus.
func (i Int) Mod() uint64 { return i.mod }

// Equal reports whether two Ints hold the same value. It panics if the
// two operands have different moduli, per spec: modular operands with
// differing moduli are a precondition violation.
func (i Int) Equal(other Int) bool {
	i.requireSameMod(other)
	return i.value == other.value
}

// Inc returns the value incremented by one, wrapping at mod.
func (i Int) Inc() Int {
	v := i.value + 1
	if v >= i.mod {
		v -= i.mod
	}
	return Int{value: v, mod: i.mod}
}

// Dec returns the value decremented by one, wrapping at mod.
func (i Int) Dec() Int {
	v := i.value
	if v < 1 {
		v += i.mod
	}
	v--
	return Int{value: v, mod: i.mod}
}

// Add returns the value advanced by n, normalized into [0, mod).
func (i Int) Add(n uint64) Int {
	n %= i.mod
	v := i.value + n
	if v >= i.mod {
		v -= i.mod
	}
	return Int{value: v, mod: i.mod}
}

// Sub returns the value retreated by n, normalized into [0, mod).
func (i Int) Sub(n uint64) Int {
	n %= i.mod
	v := i.value
	if v < n {
		v += i.mod
	}
	v -= n
	return Int{value: v, mod: i.mod}
}

// ClockwiseDistance returns (other - i) mod mod: the number of forward
// steps from i to other.
func (i Int) ClockwiseDistance(other Int) uint64 {
	i.requireSameMod(other)
	if i.value <= other.value {
		return other.value - i.value
	}
	return (i.mod + other.value) - i.value
}

// CounterClockwiseDistance returns (i - other) mod mod: the number of
// backward steps from i to other.
func (i Int) CounterClockwiseDistance(other Int) uint64 {
	i.requireSameMod(other)
	if other.value <= i.value {
		return i.value - other.value
	}
	return (i.mod + i.value) - other.value
}

// MinimumDistance returns the shorter of the clockwise and
// counter-clockwise distances between i and other.
func (i Int) MinimumDistance(other Int) uint64 {
	i.requireSameMod(other)
	cw := i.ClockwiseDistance(other)
	ccw := i.mod - cw
	if cw <= ccw {
		return cw
	}
	return ccw
}

func (i Int) requireSameMod(other Int) {
	if i.mod != other.mod {
		panic("modint: operands have different moduli")
	}
}
