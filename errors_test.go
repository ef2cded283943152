// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package divine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_Errors_Distinct verifies that the sentinel errors are non-nil and
// carry distinct messages.
func Test_Errors_Distinct(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	sentinels := []error{
		ErrInsufficientCorruption,
		ErrFragmentCountRange,
		ErrLockRetriesExhausted,
		ErrNilRandom,
		ErrNilTarget,
	}

	seen := make(map[string]bool)
	for _, err := range sentinels {
		is.Error(err)
		is.False(seen[err.Error()], "duplicate sentinel message: %s", err)
		seen[err.Error()] = true
	}
}

// Test_Errors_Wrapped verifies that wrapped sentinels still match with
// errors.Is, which is how callers are expected to branch on them.
func Test_Errors_Wrapped(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	wrapped := fmt.Errorf("corruption bound 1: %w", ErrInsufficientCorruption)
	is.ErrorIs(wrapped, ErrInsufficientCorruption)
	is.NotErrorIs(wrapped, ErrFragmentCountRange)
}
