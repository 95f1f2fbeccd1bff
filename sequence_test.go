// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "testing"

func TestSequenceInitialValue(t *testing.T) {
	s := NewSequence()
	if got := s.Get(); got != InitialCursorValue {
		t.Fatalf("Get() = %d, want %d", got, InitialCursorValue)
	}
}

func TestSequenceSetGet(t *testing.T) {
	s := NewSequenceAt(41)
	s.Set(42)
	if got := s.Get(); got != 42 {
		t.Fatalf("Get() = %d, want 42", got)
	}
}

func TestSequenceCompareAndSwap(t *testing.T) {
	s := NewSequenceAt(10)
	if s.CompareAndSwap(9, 11) {
		t.Fatalf("CAS succeeded on stale old value")
	}
	if !s.CompareAndSwap(10, 11) {
		t.Fatalf("CAS failed on current value")
	}
	if got := s.Get(); got != 11 {
		t.Fatalf("Get() = %d, want 11", got)
	}
}

func TestSequenceAddAndGet(t *testing.T) {
	s := NewSequenceAt(0)
	if got := s.AddAndGet(5); got != 5 {
		t.Fatalf("AddAndGet(5) = %d, want 5", got)
	}
	if got := s.AddAndGet(3); got != 8 {
		t.Fatalf("AddAndGet(3) = %d, want 8", got)
	}
}

func TestMinSequence(t *testing.T) {
	seqs := []*Sequence{NewSequenceAt(5), NewSequenceAt(2), NewSequenceAt(9)}
	if got := minSequence(seqs); got != 2 {
		t.Fatalf("minSequence() = %d, want 2", got)
	}
}
