// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// pad is cache line padding to prevent false sharing between hot atomic
// fields.
type pad [64]byte

// padInt32 pads out the remainder of a cache line after a 4-byte field.
type padInt32 [64 - 4]byte
