package counter

import (
	"testing"
)

// TestHysteresisGateTransitions verifies the precise gate-transition
// sequence for max=10, thresholdDown=3, thresholdUp=3.
func TestHysteresisGateTransitions(t *testing.T) {
	l := NewHysteresis(10, 3, 3, 0)

	l.Add()
	l.Add()
	if !l.subLocked() {
		t.Fatalf("sub gate should still be closed after 2 adds (< thresholdDown=3)")
	}

	l.Add() // value=3, reaches thresholdDown
	if l.subLocked() {
		t.Fatalf("sub gate should open once value reaches thresholdDown=3")
	}

	for l.Value() < 10 {
		l.Add()
	}
	if !l.addLocked() {
		t.Fatalf("add gate should close once value reaches max=10")
	}

	l.Sub() // value=9
	l.Sub() // value=8
	if !l.addLocked() {
		t.Fatalf("add gate should still be closed: 8 > max-thresholdUp=7")
	}

	l.Sub() // value=7, max-thresholdUp
	if l.addLocked() {
		t.Fatalf("add gate should open once value falls to max-thresholdUp=7")
	}
}

// subLocked/addLocked are white-box test helpers, not part of the
// exported API; they give the threshold transition test direct
// visibility into gate state instead of inferring it from blocking.
func (l *HysteresisLock) subLocked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subLock
}

func (l *HysteresisLock) addLocked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addLock
}

func TestHysteresisTerminateIsOneWay(t *testing.T) {
	l := NewHysteresis(2, 1, 1, 2) // full, add gate closed

	l.Terminate()

	if !l.IsTerminated() {
		t.Fatalf("expected terminated")
	}
	if l.WaitForAdd() {
		t.Fatalf("WaitForAdd should report false post-termination")
	}
	// Gate state is untouched by Terminate.
	if !l.addLocked() {
		t.Fatalf("terminate must not clear gates")
	}
}
