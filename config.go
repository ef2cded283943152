// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package divine provides configuration types and functional options for
// the divination protocol.
//
// The Config type exposes the few tunable parameters the protocol has:
// the candidate range of the fragment-count search, the corruption
// alphabet the oracle injects, and a bound on state-recovery retries.

package divine

// Config defines the tunable parameters for a divination run.
//
// Fields:
//   - CorruptionAlphabet: symbols the oracle uses as corruption markers.
//   - MaxFragmentCount: largest fragment-table size the count search considers.
//   - MaxLockAttempts: bound on four-draw state-recovery retries.
type Config struct {
	// CorruptionAlphabet is the ordered symbol set the oracle injects as
	// corruption. The length search scans samples for these markers.
	// Defaults to
	// DefaultCorruptionAlphabet; override only when targeting an oracle
	// variant with a different alphabet.
	CorruptionAlphabet []uint16

	// MaxFragmentCount is the inclusive upper bound of the fragment-count
	// candidate range. Oracles with larger tables are
	// unsupported and surface as ErrFragmentCountRange.
	//
	// If set to zero, the default of 15 is used.
	MaxFragmentCount int

	// MaxLockAttempts is the maximum number of four-draw windows consumed
	// while recovering the generator state. Each failed attempt discards
	// its four draws. Zero retries until the stream verifies, which is
	// the correct behavior against a conforming oracle.
	MaxLockAttempts int
}

// defaultMaxFragmentCount bounds the fragment-count candidate range.
const defaultMaxFragmentCount = 15

// DefaultConfig returns a Config populated with the protocol defaults.
//
// Defaults:
//   - CorruptionAlphabet: DefaultCorruptionAlphabet
//   - MaxFragmentCount: 15
//   - MaxLockAttempts: 0 (retry until verified)
//
// Example usage:
//
//	cfg := divine.DefaultConfig()
func DefaultConfig() Config {
	return Config{
		CorruptionAlphabet: DefaultCorruptionAlphabet,
		MaxFragmentCount:   defaultMaxFragmentCount,
		MaxLockAttempts:    0,
	}
}

// Option defines a functional option for customizing a Config.
//
// Use Option values with Divine.
//
// Example:
//
//	fragments, err := divine.Divine(random, target,
//	    divine.WithMaxLockAttempts(16),
//	)
type Option func(*Config)

// WithCorruptionAlphabet returns an Option that sets the corruption
// alphabet scanned for in oracle output.
//
// The slice is used as-is; do not mutate it during the run.
func WithCorruptionAlphabet(alphabet []uint16) Option {
	return func(cfg *Config) { cfg.CorruptionAlphabet = alphabet }
}

// WithMaxFragmentCount returns an Option that sets the upper bound of the
// fragment-count candidate range.
//
// Raising it widens the search at the cost of more oracle samples.
func WithMaxFragmentCount(n int) Option {
	return func(cfg *Config) { cfg.MaxFragmentCount = n }
}

// WithMaxLockAttempts returns an Option that bounds state-recovery
// retries.
//
// Zero (the default) retries until the stream verifies.
func WithMaxLockAttempts(n int) Option {
	return func(cfg *Config) { cfg.MaxLockAttempts = n }
}
