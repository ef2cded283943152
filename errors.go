// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package divine

import (
	"errors"
)

var (
	// ErrInsufficientCorruption is returned when the oracle's corruption
	// bound turns out to be 1 or lower. The length search relies on
	// samples carrying exactly one corruption marker, and such an oracle
	// can never produce one.
	ErrInsufficientCorruption = errors.New("corruption bound too low to recover fragment lengths")

	// ErrFragmentCountRange is returned when every candidate fragment count
	// has been contradicted by an observed sample. The oracle's fragment
	// table is larger than Config.MaxFragmentCount and the count search
	// cannot converge.
	ErrFragmentCountRange = errors.New("fragment count outside supported candidate range")

	// ErrLockRetriesExhausted is returned when the maximum number of
	// attempts to recover the generator state from the shared stream has
	// been exceeded.
	ErrLockRetriesExhausted = errors.New("exhausted attempts to lock the random stream")

	// ErrNilRandom is returned when the shared random source passed to
	// Divine is nil.
	ErrNilRandom = errors.New("nil random source")

	// ErrNilTarget is returned when the target oracle passed to Divine is
	// nil.
	ErrNilTarget = errors.New("nil target oracle")
)
