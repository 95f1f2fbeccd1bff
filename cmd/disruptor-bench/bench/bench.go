// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench drives a disruptor Sequencer through a configurable
// n-producer/m-consumer workload and verifies delivery with a closed-form
// checksum. It is the demonstration collaborator around the core library;
// the core itself knows nothing about this package.
package bench

import (
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/richquant-dev/disruptor"
)

// Config describes one benchmark run: the thread counts, the ring
// geometry, and the strategy pair under test.
type Config struct {
	NumProducers int
	NumConsumers int
	BatchSize    int64
	RingSize     int64
	// Loops is the iteration count per producer, expressed in whole ring
	// passes: each producer performs RingSize*Loops claims of BatchSize.
	Loops int64

	Claim disruptor.ClaimStrategyKind
	Wait  disruptor.WaitStrategyKind
}

// Validate rejects configurations the run loop cannot execute. Ring
// geometry errors are left to the Sequencer constructor, which reports
// them precisely.
func (c Config) Validate() error {
	if c.NumProducers < 1 || c.NumConsumers < 1 {
		return fmt.Errorf("bench: need at least one producer and one consumer, got %dP/%dC", c.NumProducers, c.NumConsumers)
	}
	if c.BatchSize < 1 || c.BatchSize > c.RingSize {
		return fmt.Errorf("bench: batch size %d must be in [1, ring size %d]", c.BatchSize, c.RingSize)
	}
	if c.Loops < 1 {
		return fmt.Errorf("bench: loops must be >= 1, got %d", c.Loops)
	}
	if c.NumProducers > 1 && c.Claim == disruptor.SingleProducer {
		return fmt.Errorf("bench: single-producer claim strategy cannot run with %d producers", c.NumProducers)
	}
	return nil
}

// Total returns the number of events the run publishes across all
// producers.
func (c Config) Total() int64 {
	return c.RingSize * c.BatchSize * c.Loops * int64(c.NumProducers)
}

// ExpectedSum returns the closed-form sum 0+1+...+(total-1) each consumer
// must independently observe.
func ExpectedSum(total int64) int64 {
	return total * (total - 1) / 2
}

// Result is the outcome of one Run.
type Result struct {
	Cursor    int64
	Sums      []int64
	Elapsed   time.Duration
	OpsPerSec int64
}

// Checksum reports whether every consumer's sum matches the closed-form
// expectation for the run's total event count.
func (r *Result) Checksum(cfg Config) bool {
	want := ExpectedSum(cfg.Total())
	for _, sum := range r.Sums {
		if sum != want {
			return false
		}
	}
	return true
}

// waitForRetry bounds a consumer's WaitFor so that a cancelled or
// timed-out wait loops back around instead of wedging the run.
const waitForRetry = 10 * time.Millisecond

// Run executes one full workload: it allocates a Sequencer for cfg,
// registers one gating sequence per consumer, submits the consumer and
// producer loops to the pool, joins them, and reports cursor, per-consumer
// sums, and throughput. Goroutine panics are recovered into errors and
// aggregated. A bad config or ring geometry aborts before any goroutine
// starts; a failed pool submission returns its error at once, and
// goroutines already submitted are not stopped.
func Run(logger *zap.Logger, pool *ants.Pool, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := disruptor.NewSequencer[int64](cfg.RingSize, cfg.Claim, cfg.Wait)
	if err != nil {
		return nil, err
	}

	consumerSeqs := make([]*disruptor.Sequence, cfg.NumConsumers)
	for i := range consumerSeqs {
		consumerSeqs[i] = disruptor.NewSequence()
	}
	s.SetGatingSequences(consumerSeqs...)

	total := cfg.Total()
	expected := total - 1
	sums := make([]int64, cfg.NumConsumers)

	var (
		mu   sync.Mutex
		errs error
	)
	collect := func(err error) {
		mu.Lock()
		errs = multierr.Append(errs, err)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < cfg.NumConsumers; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			defer recoverInto(collect, "consumer", i)
			sums[i] = consume(s, consumerSeqs[i], expected)
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("bench: submit consumer %d: %w", i, err)
		}
	}

	for i := 0; i < cfg.NumProducers; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			defer recoverInto(collect, "producer", i)
			produce(s, cfg.RingSize*cfg.Loops, cfg.BatchSize)
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("bench: submit producer %d: %w", i, err)
		}
	}

	wg.Wait()
	elapsed := time.Since(start)

	if errs != nil {
		return nil, errs
	}

	res := &Result{
		Cursor:  s.GetCursor(),
		Sums:    sums,
		Elapsed: elapsed,
	}
	if ms := elapsed.Milliseconds(); ms > 0 {
		res.OpsPerSec = res.Cursor * 1000 / ms
	}

	logger.Debug("run complete",
		zap.Int64("cursor", res.Cursor),
		zap.Duration("elapsed", res.Elapsed),
		zap.Int64("ops_per_sec", res.OpsPerSec),
	)
	return res, nil
}

// produce performs claims batch claims of delta slots each, filling every
// claimed slot with its own sequence number before publishing.
func produce(s *disruptor.Sequencer[int64], claims, delta int64) {
	for i := int64(0); i < claims; i++ {
		hi := s.Claim(delta)
		for seq := hi - delta + 1; seq <= hi; seq++ {
			s.Set(seq, seq)
		}
		s.Publish(hi, delta)
	}
}

// consume drains sequences [0, expected] through a fresh barrier, summing
// slot values. Timed-out waits loop back around; the availability scan is
// consulted on every pass so v2 claim strategies deliver only contiguous
// published ranges.
func consume(s *disruptor.Sequencer[int64], seq *disruptor.Sequence, expected int64) int64 {
	barrier := s.NewBarrier()
	next := disruptor.FirstSequenceValue
	var sum int64
	for {
		available := barrier.WaitFor(next, waitForRetry)
		if available < next {
			continue
		}
		available = s.GetHighestPublishedSequence(next, available)
		if available < next {
			continue
		}
		for ; next <= available; next++ {
			sum += s.Get(next)
		}
		seq.Set(available)
		if available >= expected {
			return sum
		}
	}
}

func recoverInto(collect func(error), role string, id int) {
	if r := recover(); r != nil {
		collect(fmt.Errorf("bench: %s %d panicked: %v", role, id, r))
	}
}
