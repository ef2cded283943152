// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package divine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConfig_DefaultConfig verifies that DefaultConfig returns a Config
// with the documented default field values.
func TestConfig_DefaultConfig(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	is.Equal(DefaultCorruptionAlphabet, cfg.CorruptionAlphabet, "DefaultConfig.CorruptionAlphabet should be the default alphabet")
	is.Equal(15, cfg.MaxFragmentCount, "DefaultConfig.MaxFragmentCount should be 15")
	is.Equal(0, cfg.MaxLockAttempts, "DefaultConfig.MaxLockAttempts should be 0 (unbounded)")
}

// TestConfig_WithCorruptionAlphabet ensures that the option overrides the
// alphabet while leaving other fields unchanged.
func TestConfig_WithCorruptionAlphabet(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	alphabet := []uint16{901, 902}

	cfg := DefaultConfig()
	WithCorruptionAlphabet(alphabet)(&cfg)

	is.Equal(alphabet, cfg.CorruptionAlphabet, "WithCorruptionAlphabet should override CorruptionAlphabet")
	is.Equal(15, cfg.MaxFragmentCount, "WithCorruptionAlphabet should not affect MaxFragmentCount")
}

// TestConfig_WithMaxFragmentCount ensures that the option sets the
// candidate bound without modifying other fields.
func TestConfig_WithMaxFragmentCount(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	WithMaxFragmentCount(31)(&cfg)

	is.Equal(31, cfg.MaxFragmentCount, "WithMaxFragmentCount should override MaxFragmentCount")
	is.Equal(DefaultCorruptionAlphabet, cfg.CorruptionAlphabet, "WithMaxFragmentCount should not affect CorruptionAlphabet")
}

// TestConfig_WithMaxLockAttempts checks that the option updates the lock
// retry bound, leaving the remaining defaults unchanged.
func TestConfig_WithMaxLockAttempts(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()
	WithMaxLockAttempts(16)(&cfg)

	is.Equal(16, cfg.MaxLockAttempts, "WithMaxLockAttempts should override MaxLockAttempts")
	is.Equal(15, cfg.MaxFragmentCount)
}

// TestConfig_CombinedOptions ensures that multiple option functions can
// be combined and applied in sequence.
func TestConfig_CombinedOptions(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	alphabet := []uint16{42}

	cfg := DefaultConfig()
	opts := []Option{
		WithCorruptionAlphabet(alphabet),
		WithMaxFragmentCount(7),
		WithMaxLockAttempts(3),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	is.Equal(alphabet, cfg.CorruptionAlphabet)
	is.Equal(7, cfg.MaxFragmentCount)
	is.Equal(3, cfg.MaxLockAttempts)
}
