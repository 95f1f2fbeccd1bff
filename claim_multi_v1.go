// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// multiProducerV1Claim is the multi-producer strategy whose cursor
// advances on publish.
//
// Claim CAS-advances a private claimed counter (the reservation
// high-water-mark, gated the same way single-producer gates its next
// counter) so producers never overwrite slots that are reserved but not
// yet published. Publish then busy-waits until the shared cursor, the
// value consumers actually observe, catches up to sequence-delta before
// storing sequence with release. That second spin is what serializes
// publication in claim order: it makes the cursor an authoritative
// high-water mark at the cost of a late producer stalling every producer
// behind it. Callers who can't accept that stall should use
// MultiProducerV2 instead.
type multiProducerV1Claim struct {
	ctx     claimContext
	claimed *Sequence
}

func newMultiProducerV1Claim(ctx claimContext) *multiProducerV1Claim {
	return &multiProducerV1Claim{
		ctx:     ctx,
		claimed: NewSequence(),
	}
}

func (c *multiProducerV1Claim) claim(delta int64) int64 {
	backoff := iox.Backoff{}
	sw := spin.Wait{}
	for {
		current := c.claimed.GetRelaxed()
		candidate := current + delta
		wrapPoint := candidate - c.ctx.capacity

		if wrapPoint > c.ctx.gating.min(current) {
			backoff.Wait()
			continue
		}
		if c.claimed.CompareAndSwap(current, candidate) {
			return candidate
		}
		sw.Once()
	}
}

func (c *multiProducerV1Claim) publish(seq, delta int64) {
	target := seq - delta
	sw := spin.Wait{}
	for c.ctx.cursor.GetRelaxed() != target {
		sw.Once()
	}
	c.ctx.cursor.Set(seq)
}

// highestPublished is a no-op pass-through: this strategy's cursor
// already guarantees contiguity.
func (c *multiProducerV1Claim) highestPublished(_, high int64) int64 {
	return high
}
