// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// multiProducerV2Claim is the multi-producer strategy whose claim counter
// advances on claim: producers CAS-advance a claim counter and never
// wait on each other's publish; the authoritative publish signal moves to a per-slot
// availability bitmap, and the cursor becomes advisory (best-effort, CAS
// bumped opportunistically on publish so GetCursor still reports something useful).
type multiProducerV2Claim struct {
	ctx     claimContext
	claimed *Sequence
	avail   *availabilityBitmap
}

func newMultiProducerV2Claim(ctx claimContext, avail *availabilityBitmap) *multiProducerV2Claim {
	return &multiProducerV2Claim{
		ctx:     ctx,
		claimed: NewSequence(),
		avail:   avail,
	}
}

func (c *multiProducerV2Claim) claim(delta int64) int64 {
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

// publish writes the wrap round into every slot in the batch, releasing
// each independently, then advisorily bumps the cursor if this batch
// moved it forward. Producers never wait on each other here.
func (c *multiProducerV2Claim) publish(seq, delta int64) {
	lo := seq - delta + 1
	for s := lo; s <= seq; s++ {
		c.avail.set(s)
	}

	for {
		current := c.ctx.cursor.GetRelaxed()
		if seq <= current {
			return
		}
		if c.ctx.cursor.CompareAndSwap(current, seq) {
			return
		}
	}
}

// highestPublished scans the availability bitmap: the cursor is advisory
// for this strategy, so consumers must verify contiguity through the
// bitmap rather than trusting the cursor alone.
func (c *multiProducerV2Claim) highestPublished(low, high int64) int64 {
	return c.avail.highestPublished(low, high)
}
