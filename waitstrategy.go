// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/spin"
)

// WaitStrategyKind selects how a Barrier's WaitFor spins, yields, sleeps
// or blocks while waiting for a target sequence to become available.
type WaitStrategyKind int

const (
	// BusySpin is a tight read loop with no pause. Lowest latency, burns
	// one full core per waiter.
	BusySpin WaitStrategyKind = iota
	// Yielding spins for a fixed number of iterations, then yields the
	// OS scheduler on each subsequent miss.
	Yielding
	// Sleeping spins briefly, then sleeps for a configured duration per
	// iteration.
	Sleeping
	// Blocking uses a mutex-protected condition variable; waiters block
	// until a publisher calls SignalAllWhenBlocking.
	Blocking
)

// waitStrategy is the internal interface all four WaitStrategyKind
// variants implement.
type waitStrategy interface {
	// waitFor blocks until avail = min(cursor, deps...) >= target, the
	// deadline (zero means no deadline) expires, or alerted is set. On
	// timeout or alert it returns a sentinel strictly less than target.
	waitFor(target int64, cursor *Sequence, deps []*Sequence, alerted *alertFlag, deadline time.Time) int64
	// signalAllWhenBlocking wakes any waiter parked in Blocking. A
	// no-op for every other strategy.
	signalAllWhenBlocking()
}

func availableSequence(cursor *Sequence, deps []*Sequence) int64 {
	avail := cursor.Get()
	for _, d := range deps {
		if v := d.Get(); v < avail {
			avail = v
		}
	}
	return avail
}

// Sentinel returned by waitFor on alert or timeout: strictly below any
// valid target sequence.
const waitCancelled int64 = InitialCursorValue - 1

// busySpinWait implements BusySpin.
type busySpinWait struct{}

func newBusySpinWait() *busySpinWait { return &busySpinWait{} }

func (w *busySpinWait) waitFor(target int64, cursor *Sequence, deps []*Sequence, alerted *alertFlag, deadline time.Time) int64 {
	for {
		if alerted.isSet() {
			return waitCancelled
		}
		if avail := availableSequence(cursor, deps); avail >= target {
			return avail
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return waitCancelled
		}
	}
}

func (w *busySpinWait) signalAllWhenBlocking() {}

// yieldingWait implements Yielding: spin for a fixed number of
// iterations, then yield the scheduler on every subsequent miss.
type yieldingWait struct {
	spinTries int
}

func newYieldingWait() *yieldingWait {
	return &yieldingWait{spinTries: 100}
}

func (w *yieldingWait) waitFor(target int64, cursor *Sequence, deps []*Sequence, alerted *alertFlag, deadline time.Time) int64 {
	counter := w.spinTries
	for {
		if alerted.isSet() {
			return waitCancelled
		}
		if avail := availableSequence(cursor, deps); avail >= target {
			return avail
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return waitCancelled
		}
		if counter > 0 {
			counter--
		} else {
			runtime.Gosched()
		}
	}
}

func (w *yieldingWait) signalAllWhenBlocking() {}

// sleepingWait implements Sleeping: spin briefly via spin.Wait, then
// sleep for a configured duration per iteration once the spin budget is
// exhausted.
type sleepingWait struct {
	spinTries int
	sleepFor  time.Duration
}

func newSleepingWait(spinTries int, sleepFor time.Duration) *sleepingWait {
	if spinTries <= 0 {
		spinTries = 100
	}
	if sleepFor <= 0 {
		sleepFor = time.Microsecond
	}
	return &sleepingWait{spinTries: spinTries, sleepFor: sleepFor}
}

func (w *sleepingWait) waitFor(target int64, cursor *Sequence, deps []*Sequence, alerted *alertFlag, deadline time.Time) int64 {
	sw := spin.Wait{}
	counter := w.spinTries
	for {
		if alerted.isSet() {
			return waitCancelled
		}
		if avail := availableSequence(cursor, deps); avail >= target {
			return avail
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return waitCancelled
		}
		if counter > 0 {
			counter--
			sw.Once()
			continue
		}
		time.Sleep(w.sleepFor)
	}
}

func (w *sleepingWait) signalAllWhenBlocking() {}

// blockingWait implements Blocking: a mutex-protected condition variable.
// Notifications are edge-triggered but safe under the invariant that the
// publisher always signals after a release-store of the cursor, so a
// waiter that misses a Broadcast simply re-checks availability on the
// next loop iteration rather than missing the publish entirely.
type blockingWait struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func newBlockingWait() *blockingWait {
	w := &blockingWait{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *blockingWait) waitFor(target int64, cursor *Sequence, deps []*Sequence, alerted *alertFlag, deadline time.Time) int64 {
	if alerted.isSet() {
		return waitCancelled
	}
	if avail := availableSequence(cursor, deps); avail >= target {
		return avail
	}

	done := make(chan struct{})
	if !deadline.IsZero() {
		// The close must happen under the lock so it cannot slip between a
		// waiter's deadline check and its cond.Wait park.
		timer := time.AfterFunc(time.Until(deadline), func() {
			w.mu.Lock()
			close(done)
			w.cond.Broadcast()
			w.mu.Unlock()
		})
		defer timer.Stop()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		if alerted.isSet() {
			return waitCancelled
		}
		if avail := availableSequence(cursor, deps); avail >= target {
			return avail
		}
		select {
		case <-done:
			return waitCancelled
		default:
		}
		w.cond.Wait()
	}
}

func (w *blockingWait) signalAllWhenBlocking() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}
