// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/atomix"

// availabilityBitmap is the multi-producer-v2 publication record: one
// 32-bit "wrap round" counter per slot. Slot i is available for round r iff
// bitmap[i] == r. Initialized to -1 so that round 0 is never mistaken for
// already-published.
type availabilityBitmap struct {
	mask uint64
	bits []availabilitySlot
}

type availabilitySlot struct {
	round atomix.Int32
	_     padInt32
}

func newAvailabilityBitmap(capacity int64) *availabilityBitmap {
	b := &availabilityBitmap{
		mask: uint64(capacity - 1),
		bits: make([]availabilitySlot, capacity),
	}
	for i := range b.bits {
		b.bits[i].round.StoreRelaxed(-1)
	}
	return b
}

// round computes the wrap round for a sequence given the ring capacity.
func (b *availabilityBitmap) round(seq int64) int32 {
	return int32(seq / int64(len(b.bits)))
}

// set marks seq as published by storing its round number into its slot
// with release ordering. This is the v2 release point; the cursor is
// advisory only.
func (b *availabilityBitmap) set(seq int64) {
	slot := &b.bits[uint64(seq)&b.mask]
	slot.round.StoreRelease(b.round(seq))
}

// isAvailable reports whether seq has been published, via an acquire-load
// of its slot's round counter.
func (b *availabilityBitmap) isAvailable(seq int64) bool {
	slot := &b.bits[uint64(seq)&b.mask]
	return slot.round.LoadAcquire() == b.round(seq)
}

// highestPublished scans forward from low and returns the largest
// contiguous published sequence <= high, or low-1 if low itself isn't
// published.
func (b *availabilityBitmap) highestPublished(low, high int64) int64 {
	for seq := low; seq <= high; seq++ {
		if !b.isAvailable(seq) {
			return seq - 1
		}
	}
	return high
}
