// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "errors"

// ErrInvalidCapacity is returned by NewSequencer when capacity is zero or
// not a power of two.
var ErrInvalidCapacity = errors.New("disruptor: capacity must be a power of two and >= 1")

// ErrInvalidBatch is returned by ClaimBatch when delta is zero or greater
// than the ring's capacity. Claim itself does not validate delta.
var ErrInvalidBatch = errors.New("disruptor: batch size must be >= 1 and <= capacity")
