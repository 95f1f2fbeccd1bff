// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/iox"

// singleProducerClaim is the single-producer claim strategy: a private
// next counter and a private cache of the minimum gating sequence, with
// no CAS on the claim path since correctness rests on the caller never
// calling claim concurrently.
type singleProducerClaim struct {
	ctx claimContext

	next          int64
	cachedMinGate int64
}

func newSingleProducerClaim(ctx claimContext) *singleProducerClaim {
	return &singleProducerClaim{
		ctx:           ctx,
		next:          InitialCursorValue,
		cachedMinGate: InitialCursorValue,
	}
}

func (c *singleProducerClaim) claim(delta int64) int64 {
	next := c.next + delta
	wrapPoint := next - c.ctx.capacity

	if wrapPoint > c.cachedMinGate {
		backoff := iox.Backoff{}
		for {
			minGate := c.ctx.gating.min(c.ctx.cursor.GetRelaxed())
			if wrapPoint <= minGate {
				c.cachedMinGate = minGate
				break
			}
			backoff.Wait()
		}
	}

	c.next = next
	return next
}

func (c *singleProducerClaim) publish(seq, _ int64) {
	c.ctx.cursor.Set(seq)
}

// highestPublished is a no-op pass-through for single-producer: the
// cursor already guarantees contiguity.
func (c *singleProducerClaim) highestPublished(_, high int64) int64 {
	return high
}
