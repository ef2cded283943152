// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package divine

import (
	"fmt"
	"slices"
)

// Divine recovers the oracle's fragment table.
//
// random is a zero-argument callable returning values in [0, 1) drawn
// from a generator whose internals match Source exactly. target is the
// oracle; each call must consume 1 + 2*floor(r*C) + 2 draws from the
// same stream, in the Simulator's order, and follow the same overlay
// semantics. Both callables must share one stream; the attack is
// nothing but careful accounting of who consumed which draw.
//
// On success Divine returns the fragments in table order, each matching
// the oracle's entry exactly. It returns ErrInsufficientCorruption when
// the oracle's corruption bound is too low for length experiments, and
// ErrFragmentCountRange when the table is larger than the candidate
// range. Against an oracle that violates its draw contract, Divine does
// not terminate.
func Divine(random func() float64, target func() []uint16, opts ...Option) ([][]uint16, error) {
	if random == nil {
		return nil, ErrNilRandom
	}
	if target == nil {
		return nil, ErrNilTarget
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxFragmentCount <= 0 {
		cfg.MaxFragmentCount = defaultMaxFragmentCount
	}
	if cfg.CorruptionAlphabet == nil {
		cfg.CorruptionAlphabet = DefaultCorruptionAlphabet
	}

	predicted, err := lock(random, cfg.MaxLockAttempts)
	if err != nil {
		return nil, err
	}

	corruptionBound, baseLen := divineCorruptionBoundAndBaseLen(predicted, random, target)
	if corruptionBound <= 1 {
		return nil, fmt.Errorf("corruption bound %d: %w", corruptionBound, ErrInsufficientCorruption)
	}

	fragmentCount, err := divineFragmentCount(predicted, random, target, &cfg, corruptionBound, baseLen)
	if err != nil {
		return nil, err
	}

	return divineFragments(predicted, random, target, &cfg, corruptionBound, baseLen, fragmentCount), nil
}

// divineCorruptionBoundAndBaseLen forces a maximum-corruption sample and
// derives the corruption bound from the number of draws the oracle
// consumed producing it. The sample's length is the base length.
func divineCorruptionBoundAndBaseLen(predicted *Source, random func() float64, target func() []uint16) (int, int) {
	// Spin until the oracle's next corruption-count draw yields
	// floor(r*C) = C-1.
	for predicted.Float64() < 0.99 {
		spinRandom(random, 1)
	}

	baseLen := len(target())

	// The oracle consumed the forced draw plus 2*(C-1) + 2 more. The
	// predictor already holds the forced draw, so stepping it to a
	// barrier drawn right after the call counts exactly 2*C mismatches.
	count := 0
	barrier := random()

	for predicted.Float64() != barrier {
		count++
	}

	return count / 2, baseLen
}

// divineFragmentCount infers the size of the oracle's fragment table.
//
// Every recorded sample is forced to zero corruption and placement 0, so
// its content is a function of the selected fragment alone. For each
// candidate count k the selector draw resolves to index floor(r*k);
// samples landing on the same index under a true candidate must be
// identical. The smallest candidate whose whole multiple chain is still
// alive and complete is the count: a proper divisor of the true count
// also stays consistent when the table's contents repeat with that
// period, so the chain condition is what disambiguates.
func divineFragmentCount(
	predicted *Source,
	random func() float64,
	target func() []uint16,
	cfg *Config,
	corruptionBound, baseLen int,
) (int, error) {
	consistency := make(map[int]map[int][]uint16, cfg.MaxFragmentCount)
	for candidate := 1; candidate <= cfg.MaxFragmentCount; candidate++ {
		consistency[candidate] = make(map[int][]uint16)
	}

	for {
		// Force a zero-corruption sample.
		if predicted.Float64() >= 1.0/float64(corruptionBound) {
			spinRandom(random, 1)
			continue
		}

		fragmentSelector := predicted.Float64()

		// Force placement at the start of the base. 1/(baseLen-1) is a
		// lower bound of 1/(baseLen-|F|) for every fragment length, so
		// the condition is tight regardless of which fragment comes up.
		if predicted.Float64() >= 1.0/float64(baseLen-1) {
			spinRandom(random, 3)
			continue
		}

		text := target()

		// Retain only candidates consistent with this sample.
		for candidate, byIndex := range consistency {
			index := randUnder(fragmentSelector, candidate)

			seen, ok := byIndex[index]
			switch {
			case !ok:
				byIndex[index] = text
			case !slices.Equal(seen, text):
				delete(consistency, candidate)
			}
		}

		// Once every candidate has been contradicted no sample can ever
		// produce a winner; the table is larger than the search range.
		if len(consistency) == 0 {
			return 0, ErrFragmentCountRange
		}

		for candidate := 1; candidate <= cfg.MaxFragmentCount; candidate++ {
			valid := true
			for multiple := candidate; multiple <= cfg.MaxFragmentCount; multiple += candidate {
				byIndex, alive := consistency[multiple]
				if !alive || !isComplete(byIndex, multiple) {
					valid = false
					break
				}
			}

			if valid {
				return candidate, nil
			}
		}
	}
}

// isComplete reports whether a candidate's consistency map has an entry
// for every index in [0, candidate). Selector indices only ever land in
// that range, so the cardinality check suffices.
func isComplete(byIndex map[int][]uint16, candidate int) bool {
	return len(byIndex) == candidate
}

// divineFragments binary-searches each fragment's length with
// single-corruption experiments, then extracts the content.
//
// Per fragment it keeps bounds (lo, hi) with the length in [lo, hi].
// Each experiment forces exactly one corruption marker at a predicted
// index and the fragment at placement 0: a marker surviving in the
// sample means the fragment ends at or before the marker; a vanished
// marker means the fragment covered it.
func divineFragments(
	predicted *Source,
	random func() float64,
	target func() []uint16,
	cfg *Config,
	corruptionBound, baseLen, fragmentCount int,
) [][]uint16 {
	type bounds struct {
		lo, hi int
	}

	minmax := make([]bounds, fragmentCount)
	for i := range minmax {
		minmax[i] = bounds{0, baseLen}
	}
	fragments := make([][]uint16, fragmentCount)

	for {
		pinned := true
		for _, b := range minmax {
			if b.lo != b.hi {
				pinned = false
				break
			}
		}
		if pinned {
			break
		}

		// Force exactly one corruption symbol: floor(v*C) = 1.
		v := predicted.Float64()
		if v < 1.0/float64(corruptionBound) || v >= 2.0/float64(corruptionBound) {
			spinRandom(random, 1)
			continue
		}

		placement := randUnder(predicted.Float64(), baseLen)

		// Corruption symbol draw; its value is irrelevant.
		predicted.Float64()

		fragmentIndex := randUnder(predicted.Float64(), fragmentCount)

		// A marker outside the open bounds teaches nothing; replay the
		// four consumed predictions and try again.
		if placement < minmax[fragmentIndex].lo || placement >= minmax[fragmentIndex].hi {
			spinRandom(random, 4)
			continue
		}

		// Force the fragment to the start of the base.
		if predicted.Float64() >= 1.0/float64(baseLen-1) {
			spinRandom(random, 5)
			continue
		}

		text := target()

		if containsAny(text, cfg.CorruptionAlphabet) {
			// The marker leaked past the fragment's coverage.
			minmax[fragmentIndex].hi = placement
		} else {
			// The fragment covered the marker.
			minmax[fragmentIndex].lo = placement + 1
		}

		if b := minmax[fragmentIndex]; b.lo == b.hi {
			// The pinning sample is clean over [0, lo): corruption sits
			// at or beyond the fragment's end, so the prefix is content.
			fragments[fragmentIndex] = slices.Clone(text[:b.lo])
		}
	}

	return fragments
}

// spinRandom consumes count draws from the shared stream without using
// their values, substituting for draws the oracle would have made.
func spinRandom(random func() float64, count int) {
	for i := 0; i < count; i++ {
		random()
	}
}
