// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package disruptor provides a pre-allocated ring buffer with lock-free
// sequence coordination for high-throughput, low-latency in-process event
// pipelines.
//
// One or many producers publish fixed-slot events into a bounded circular
// array; one or many consumers observe those events in publication order.
// Claim strategies (how producers reserve slots) and wait strategies (how
// consumers wait for availability) are independently selectable.
//
// # Quick Start
//
// Single producer, single consumer:
//
//	seq, _ := disruptor.NewSequencer[int64](1024, disruptor.SingleProducer, disruptor.BusySpin)
//	consumerSeq := disruptor.NewSequence()
//	seq.SetGatingSequences(consumerSeq)
//	barrier := seq.NewBarrier()
//
//	go func() { // producer
//	    for i := int64(0); i < 100_000; i++ {
//	        hi := seq.Claim(1)
//	        seq.Set(hi, i)
//	        seq.Publish(hi, 1)
//	    }
//	}()
//
//	next := disruptor.FirstSequenceValue
//	for {
//	    available := barrier.WaitFor(next, 0)
//	    if available < next {
//	        break // alerted or timed out
//	    }
//	    available = seq.GetHighestPublishedSequence(next, available)
//	    for ; next <= available; next++ {
//	        process(seq.Get(next))
//	    }
//	    consumerSeq.Set(available)
//	}
//
// # Claim strategies
//
// Three variants, selected at construction:
//
//	SingleProducer  - one producer goroutine, no CAS needed
//	MultiProducerV1 - cursor advances on publish, serializes in claim order
//	MultiProducerV2 - claim counter advances on claim, per-slot availability bitmap
//
// # Wait strategies
//
//	BusySpin - lowest latency, one full core per waiter
//	Yielding - spins briefly, then yields the scheduler
//	Sleeping - spins briefly, then sleeps per iteration
//	Blocking - mutex/condvar, highest latency, lowest idle CPU
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for padded atomic
// primitives, [code.hybscloud.com/iox] for the gating backoff loop, and
// [code.hybscloud.com/spin] for CPU pause instructions in CAS retry loops.
package disruptor
