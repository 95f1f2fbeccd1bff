// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "time"

// Option configures a Sequencer at construction, beyond the required
// capacity and strategy selection.
type Option func(*sequencerOptions)

type sequencerOptions struct {
	sleepSpinTries int
	sleepFor       time.Duration
}

// WithSleepStrategy tunes the Sleeping wait strategy's spin budget and
// per-iteration sleep duration. Ignored when the Sequencer's wait
// strategy is not Sleeping.
func WithSleepStrategy(spinTries int, sleepFor time.Duration) Option {
	return func(o *sequencerOptions) {
		o.sleepSpinTries = spinTries
		o.sleepFor = sleepFor
	}
}

func defaultSequencerOptions() sequencerOptions {
	return sequencerOptions{
		sleepSpinTries: 100,
		sleepFor:       time.Microsecond,
	}
}
