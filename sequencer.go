// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// Sequencer owns the ring, the cursor, the gating sequences, and the
// selected claim/wait strategies, and exposes the full producer/consumer
// surface.
type Sequencer[T any] struct {
	ring   *ring[T]
	cursor *Sequence
	gating gatingSet

	claim claimStrategy
	wait  waitStrategy
}

// NewSequencer allocates a ring of the given capacity (must be a power of
// two, >= 1) and wires the requested claim and wait strategies together.
func NewSequencer[T any](capacity int64, claimKind ClaimStrategyKind, waitKind WaitStrategyKind, options ...Option) (*Sequencer[T], error) {
	r, err := newRing[T](capacity)
	if err != nil {
		return nil, err
	}

	opts := defaultSequencerOptions()
	for _, opt := range options {
		opt(&opts)
	}

	s := &Sequencer[T]{
		ring:   r,
		cursor: NewSequence(),
		wait:   newWaitStrategy(waitKind, opts),
	}

	ctx := claimContext{
		capacity: capacity,
		cursor:   s.cursor,
		gating:   &s.gating,
	}

	switch claimKind {
	case SingleProducer:
		s.claim = newSingleProducerClaim(ctx)
	case MultiProducerV1:
		s.claim = newMultiProducerV1Claim(ctx)
	case MultiProducerV2:
		s.claim = newMultiProducerV2Claim(ctx, newAvailabilityBitmap(capacity))
	default:
		s.claim = newSingleProducerClaim(ctx)
	}

	return s, nil
}

// SetGatingSequences replaces the set of consumer sequences producers
// must not lap. Must be called before any producer Claim for that set to
// be observed; concurrent modification is undefined.
func (s *Sequencer[T]) SetGatingSequences(seqs ...*Sequence) {
	s.gating.set(seqs)
}

// NewBarrier returns a Barrier observing this Sequencer's cursor and the
// given (possibly empty) list of upstream dependency sequences. All
// barriers share the wait strategy instance chosen at construction, so
// that Publish can wake Blocking waiters on any of them.
func (s *Sequencer[T]) NewBarrier(deps ...*Sequence) *Barrier {
	return newBarrier(s.cursor, deps, s.wait)
}

func newWaitStrategy(kind WaitStrategyKind, opts sequencerOptions) waitStrategy {
	switch kind {
	case BusySpin:
		return newBusySpinWait()
	case Yielding:
		return newYieldingWait()
	case Sleeping:
		return newSleepingWait(opts.sleepSpinTries, opts.sleepFor)
	case Blocking:
		return newBlockingWait()
	default:
		return newBusySpinWait()
	}
}

// Claim reserves delta contiguous sequences (1 <= delta <= capacity) and
// returns the last sequence in the reserved range. It spins internally
// until gating sequences leave enough room; it never fails on a valid
// delta. Claim does not validate delta; a value outside [1, capacity] is
// undefined behavior here. Callers at a trust boundary should use
// ClaimBatch, which reports ErrInvalidBatch instead.
func (s *Sequencer[T]) Claim(delta int64) int64 {
	return s.claim.claim(delta)
}

// ClaimBatch is Claim with input validation: useful for callers at a
// trust boundary (e.g. a CLI driver) who want ErrInvalidBatch instead of
// undefined behavior on a bad delta.
func (s *Sequencer[T]) ClaimBatch(delta int64) (int64, error) {
	if delta < 1 || delta > s.ring.capacity() {
		return 0, ErrInvalidBatch
	}
	return s.claim.claim(delta), nil
}

// Publish marks the range [sequence-delta+1 .. sequence] as published and
// wakes any consumer parked in a Blocking wait. Must be called exactly
// once per successful Claim with matching arguments.
func (s *Sequencer[T]) Publish(sequence, delta int64) {
	s.claim.publish(sequence, delta)
	s.wait.signalAllWhenBlocking()
}

// GetHighestPublishedSequence scans for the largest contiguous published
// sequence in [low, high]. For SingleProducer and MultiProducerV1 this
// is a pass-through returning high; for MultiProducerV2 it consults the
// availability bitmap.
func (s *Sequencer[T]) GetHighestPublishedSequence(low, high int64) int64 {
	return s.claim.highestPublished(low, high)
}

// GetCursor does an acquire-load of the cursor.
func (s *Sequencer[T]) GetCursor() int64 {
	return s.cursor.Get()
}

// Capacity returns the ring's fixed slot count.
func (s *Sequencer[T]) Capacity() int64 {
	return s.ring.capacity()
}

// Set writes value into the slot at sequence. Unchecked: the caller must
// hold a Claim covering sequence.
func (s *Sequencer[T]) Set(sequence int64, value T) {
	*s.ring.get(sequence) = value
}

// Get returns the value at the slot for sequence. Unchecked: the caller
// is responsible for ordering.
func (s *Sequencer[T]) Get(sequence int64) T {
	return *s.ring.get(sequence)
}
