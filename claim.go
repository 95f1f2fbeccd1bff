// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// ClaimStrategyKind selects how a Sequencer's producers reserve and publish
// slots. The three variants trade producer-side coordination cost against
// consumer-side availability-check cost; see the package doc for the
// tradeoffs.
type ClaimStrategyKind int

const (
	// SingleProducer assumes exactly one producer goroutine ever calls
	// Claim. No CAS is required on the claim path.
	SingleProducer ClaimStrategyKind = iota
	// MultiProducerV1 CAS-advances a private claim counter on claim and
	// advances the cursor on Publish, serialized in claim order. Throughput suffers if a slow producer
	// stalls faster ones, but consumers can trust the cursor directly.
	MultiProducerV1
	// MultiProducerV2 CAS-advances a separate claim counter and defers
	// the authoritative publish signal to a per-slot availability
	// bitmap, so producers never wait on each other. Consumers must
	// scan the bitmap via GetHighestPublishedSequence.
	MultiProducerV2
)

// claimStrategy is the internal interface the three ClaimStrategyKind
// variants implement. A Sequencer owns exactly one, chosen at construction
// and never switched at runtime.
type claimStrategy interface {
	// claim reserves delta contiguous sequences, spinning until the
	// gating sequences leave enough room, and returns the highest
	// sequence number in the reserved range.
	claim(delta int64) int64
	// publish announces that [seq-delta+1 .. seq] have been filled.
	publish(seq, delta int64)
	// highestPublished returns the largest contiguous published
	// sequence in [low, high], or low-1 if low itself isn't published.
	highestPublished(low, high int64) int64
}

// claimContext bundles the state every claim strategy needs from its
// owning Sequencer: the capacity, the shared cursor, and the gating
// sequences the strategy must not lap. It is held by value inside each
// strategy struct rather than via a pointer back to the Sequencer, so the
// strategy's hot path never chases an extra pointer.
type claimContext struct {
	capacity int64
	cursor   *Sequence
	gating   *gatingSet
}

// gatingSet holds the current gating sequences. SetGatingSequences is
// documented as single-writer-before-use, never concurrently mutated, so
// a plain slice field guarded by nothing more than that convention is
// sufficient; reads still route through min so a caller tightening the
// contract has one place to add synchronization.
type gatingSet struct {
	seqs []*Sequence
}

func (g *gatingSet) set(seqs []*Sequence) {
	g.seqs = seqs
}

func (g *gatingSet) min(fallback int64) int64 {
	if len(g.seqs) == 0 {
		return fallback
	}
	return minSequence(g.seqs)
}
