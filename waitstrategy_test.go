// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"testing"
	"time"
)

func TestAlertReturnsUnderEveryWaitStrategy(t *testing.T) {
	kinds := []struct {
		name string
		kind WaitStrategyKind
	}{
		{"BusySpin", BusySpin},
		{"Yielding", Yielding},
		{"Sleeping", Sleeping},
		{"Blocking", Blocking},
	}
	for _, tc := range kinds {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSequencer[int64](8, SingleProducer, tc.kind)
			if err != nil {
				t.Fatalf("NewSequencer: %v", err)
			}
			barrier := s.NewBarrier()

			done := make(chan int64, 1)
			go func() {
				done <- barrier.WaitFor(100, 0)
			}()

			time.Sleep(5 * time.Millisecond)
			barrier.Alert()

			select {
			case got := <-done:
				if got >= 100 {
					t.Fatalf("WaitFor returned %d after Alert, want sentinel < target", got)
				}
			case <-time.After(time.Second):
				t.Fatalf("WaitFor did not return within 1s of Alert")
			}

			if !barrier.IsAlerted() {
				t.Fatalf("IsAlerted() = false after Alert")
			}
			barrier.ClearAlert()
			if barrier.IsAlerted() {
				t.Fatalf("IsAlerted() = true after ClearAlert")
			}
		})
	}
}

func TestBlockingWakesOnPublish(t *testing.T) {
	s, err := NewSequencer[int64](8, SingleProducer, Blocking)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	barrier := s.NewBarrier()

	done := make(chan int64, 1)
	go func() {
		done <- barrier.WaitFor(0, 0)
	}()

	// Let the waiter park on the condvar before publishing.
	time.Sleep(5 * time.Millisecond)
	hi := s.Claim(1)
	s.Set(hi, 42)
	s.Publish(hi, 1)

	select {
	case got := <-done:
		if got < 0 {
			t.Fatalf("WaitFor returned %d after Publish, want >= 0", got)
		}
		if v := s.Get(got); v != 42 {
			t.Fatalf("slot value = %d, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("Blocking waiter never woke after Publish")
	}
}

func TestBlockingTimeout(t *testing.T) {
	s, err := NewSequencer[int64](8, SingleProducer, Blocking)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	barrier := s.NewBarrier()

	start := time.Now()
	got := barrier.WaitFor(0, 20*time.Millisecond)
	elapsed := time.Since(start)

	if got >= 0 {
		t.Fatalf("WaitFor timed out with value %d, want < 0", got)
	}
	if elapsed < 20*time.Millisecond {
		t.Fatalf("WaitFor returned after %v, want >= 20ms", elapsed)
	}
}

func TestWaitForAlreadyAvailableReturnsImmediately(t *testing.T) {
	for _, kind := range []WaitStrategyKind{BusySpin, Yielding, Sleeping, Blocking} {
		s, err := NewSequencer[int64](8, SingleProducer, kind)
		if err != nil {
			t.Fatalf("NewSequencer: %v", err)
		}
		hi := s.Claim(3)
		s.Publish(hi, 3)

		barrier := s.NewBarrier()
		if got := barrier.WaitFor(2, time.Second); got != 2 {
			t.Fatalf("kind %d: WaitFor(2) = %d, want 2", kind, got)
		}
	}
}

func TestBarrierObservesDependencies(t *testing.T) {
	s, err := NewSequencer[int64](8, SingleProducer, BusySpin)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	upstream := NewSequenceAt(1)

	hi := s.Claim(5)
	s.Publish(hi, 5)

	barrier := s.NewBarrier(upstream)
	// min(cursor=4, upstream=1) caps availability at the dependency.
	if got := barrier.WaitFor(0, time.Second); got != 1 {
		t.Fatalf("WaitFor(0) = %d, want 1 (capped by dependency)", got)
	}

	upstream.Set(4)
	if got := barrier.WaitFor(3, time.Second); got != 4 {
		t.Fatalf("WaitFor(3) = %d, want 4 after dependency advanced", got)
	}
}
