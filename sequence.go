// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/atomix"

const (
	// InitialCursorValue is the sentinel a Sequence starts at before any
	// sequence has been claimed or consumed.
	InitialCursorValue int64 = -1

	// FirstSequenceValue is the first sequence a producer ever claims.
	FirstSequenceValue int64 = 0
)

// Sequence is a cache-line-padded monotonic 64-bit counter. It is the sole
// contended coordinator primitive in the core: producer cursors, consumer
// gates, and claim counters are all one of these. Padding on both sides
// isolates it from whatever neighboring field would otherwise share its
// cache line.
type Sequence struct {
	_     pad
	value atomix.Int64
	_     pad
}

// NewSequence returns a Sequence initialized to InitialCursorValue.
func NewSequence() *Sequence {
	s := &Sequence{}
	s.value.StoreRelaxed(InitialCursorValue)
	return s
}

// NewSequenceAt returns a Sequence initialized to the given value.
func NewSequenceAt(initial int64) *Sequence {
	s := &Sequence{}
	s.value.StoreRelaxed(initial)
	return s
}

// Get does an acquire-load of the sequence value.
func (s *Sequence) Get() int64 {
	return s.value.LoadAcquire()
}

// GetRelaxed does a relaxed load, for single-writer contexts where the
// caller supplies its own ordering (e.g. a producer reading its own
// private cursor).
func (s *Sequence) GetRelaxed() int64 {
	return s.value.LoadRelaxed()
}

// Set does a release-store of the sequence value.
func (s *Sequence) Set(v int64) {
	s.value.StoreRelease(v)
}

// SetRelaxed does a relaxed store.
func (s *Sequence) SetRelaxed(v int64) {
	s.value.StoreRelaxed(v)
}

// CompareAndSwap attempts an acquire-release CAS from old to new, returning
// whether it succeeded.
func (s *Sequence) CompareAndSwap(old, new int64) bool {
	return s.value.CompareAndSwapAcqRel(old, new)
}

// AddAndGet atomically adds delta and returns the new value.
func (s *Sequence) AddAndGet(delta int64) int64 {
	return s.value.AddAcqRel(delta)
}

// minSequence returns the minimum Get() across a non-empty set of
// sequences. Called on the gating path, so it always re-reads rather than
// caching.
func minSequence(seqs []*Sequence) int64 {
	min := seqs[0].Get()
	for _, s := range seqs[1:] {
		if v := s.Get(); v < min {
			min = v
		}
	}
	return min
}
