// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"time"

	"code.hybscloud.com/atomix"
)

// alertFlag is the cancellation flag a Barrier exposes to its wait
// strategy. Alert/ClearAlert are expected to be called from a different
// goroutine than the one parked in WaitFor, so the flag is a plain
// atomix.Bool rather than anything requiring its own lock.
type alertFlag struct {
	flag atomix.Bool
}

func (a *alertFlag) isSet() bool {
	return a.flag.Load()
}

func (a *alertFlag) set() {
	a.flag.Store(true)
}

func (a *alertFlag) clear() {
	a.flag.Store(false)
}

// Barrier is the consumer-side wait handle: an immutable view of the
// Sequencer's cursor plus a (possibly empty) set of upstream dependency
// sequences, combined through a wait strategy. Barriers are cheap and may
// be recreated per consumer.
type Barrier struct {
	cursor  *Sequence
	deps    []*Sequence
	wait    waitStrategy
	alerted alertFlag
}

func newBarrier(cursor *Sequence, deps []*Sequence, wait waitStrategy) *Barrier {
	return &Barrier{
		cursor: cursor,
		deps:   deps,
		wait:   wait,
	}
}

// WaitFor blocks, per the barrier's wait strategy, until
// min(cursor, deps...) reaches target, timeout elapses, or Alert is
// called. A zero timeout means wait indefinitely. The return value is
// either the observed available sequence (>= target) or a sentinel
// strictly less than target signalling cancellation. Callers detect
// cancellation via comparison against target, not via a distinct error
// type, so the hot path never allocates.
func (b *Barrier) WaitFor(target int64, timeout time.Duration) int64 {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	return b.wait.waitFor(target, b.cursor, b.deps, &b.alerted, deadline)
}

// Alert forces all in-flight and future waits on this barrier to return
// a cancellation sentinel until ClearAlert is called.
func (b *Barrier) Alert() {
	b.alerted.set()
	b.wait.signalAllWhenBlocking()
}

// ClearAlert resets the alert flag so subsequent WaitFor calls behave
// normally again.
func (b *Barrier) ClearAlert() {
	b.alerted.clear()
}

// IsAlerted reports whether the barrier currently has an outstanding
// alert.
func (b *Barrier) IsAlerted() bool {
	return b.alerted.isSet()
}
