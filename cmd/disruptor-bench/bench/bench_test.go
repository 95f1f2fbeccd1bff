// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"testing"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/richquant-dev/disruptor"
)

func newTestPool(t *testing.T, size int) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(size)
	if err != nil {
		t.Fatalf("ants.NewPool(%d): %v", size, err)
	}
	t.Cleanup(pool.Release)
	return pool
}

func TestRunSingleProducer(t *testing.T) {
	cfg := Config{
		NumProducers: 1,
		NumConsumers: 1,
		BatchSize:    1,
		RingSize:     8,
		Loops:        16,
		Claim:        disruptor.SingleProducer,
		Wait:         disruptor.Yielding,
	}
	pool := newTestPool(t, cfg.NumProducers+cfg.NumConsumers)

	res, err := Run(zap.NewNop(), pool, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := cfg.Total() - 1; res.Cursor != want {
		t.Fatalf("cursor = %d, want %d", res.Cursor, want)
	}
	if !res.Checksum(cfg) {
		t.Fatalf("checksum failed: sums = %v, want each %d", res.Sums, ExpectedSum(cfg.Total()))
	}
}

func TestRunMultiProducerV2(t *testing.T) {
	cfg := Config{
		NumProducers: 2,
		NumConsumers: 2,
		BatchSize:    4,
		RingSize:     64,
		Loops:        4,
		Claim:        disruptor.MultiProducerV2,
		Wait:         disruptor.Sleeping,
	}
	pool := newTestPool(t, cfg.NumProducers+cfg.NumConsumers)

	res, err := Run(zap.NewNop(), pool, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := cfg.Total() - 1; res.Cursor < want {
		t.Fatalf("cursor = %d, want >= %d", res.Cursor, want)
	}
	if !res.Checksum(cfg) {
		t.Fatalf("checksum failed: sums = %v, want each %d", res.Sums, ExpectedSum(cfg.Total()))
	}
}

func TestConfigValidate(t *testing.T) {
	base := Config{
		NumProducers: 1,
		NumConsumers: 1,
		BatchSize:    1,
		RingSize:     8,
		Loops:        1,
		Claim:        disruptor.SingleProducer,
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"no producers", func(c *Config) { c.NumProducers = 0 }, false},
		{"no consumers", func(c *Config) { c.NumConsumers = 0 }, false},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }, false},
		{"batch over ring", func(c *Config) { c.BatchSize = 16 }, false},
		{"zero loops", func(c *Config) { c.Loops = 0 }, false},
		{"single claim many producers", func(c *Config) { c.NumProducers = 4 }, false},
		{"v1 many producers", func(c *Config) {
			c.NumProducers = 4
			c.Claim = disruptor.MultiProducerV1
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}

func TestExpectedSum(t *testing.T) {
	if got := ExpectedSum(8192); got != 33550336 {
		t.Fatalf("ExpectedSum(8192) = %d, want 33550336", got)
	}
	if got := ExpectedSum(0); got != 0 {
		t.Fatalf("ExpectedSum(0) = %d, want 0", got)
	}
}
