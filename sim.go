// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package divine

import (
	"slices"
)

// Simulator is a reference oracle for exercising Divine without an
// external target. Each Sample copies the base, sprays a random number
// of corruption symbols over it, and overlays one randomly chosen
// fragment at a random position.
//
// The draw order is part of the oracle contract and must not change: one
// draw for the corruption count, two per corruption symbol, one for the
// fragment selector, one for the placement. That is 1 + 2*floor(r*C) + 2
// draws per sample. Corruption indices are not deduplicated; two picks of the
// same index collapse to a single visible marker, and the draw count is
// what the protocol measures.
type Simulator struct {
	// Random is the shared random source. It must be the very stream the
	// attacker consumes, or Divine's draw arithmetic falls apart.
	Random func() float64

	// Base is the sequence every sample starts from.
	Base []uint16

	// CorruptionBound is the exclusive upper bound on the number of
	// corruption symbols per sample.
	CorruptionBound int

	// Fragments is the hidden fragment table Divine is meant to recover.
	// Every fragment must be shorter than Base.
	Fragments [][]uint16

	// Alphabet overrides the corruption alphabet. Nil selects
	// DefaultCorruptionAlphabet.
	Alphabet []uint16
}

// Sample produces one corrupted sequence. It satisfies the target
// callable shape Divine consumes.
func (s *Simulator) Sample() []uint16 {
	alphabet := s.Alphabet
	if alphabet == nil {
		alphabet = DefaultCorruptionAlphabet
	}

	out := slices.Clone(s.Base)

	numCorruption := randUnder(s.Random(), s.CorruptionBound)
	for i := 0; i < numCorruption; i++ {
		index := randUnder(s.Random(), len(s.Base))
		out[index] = alphabet[randUnder(s.Random(), len(alphabet))]
	}

	fragment := s.Fragments[randUnder(s.Random(), len(s.Fragments))]
	start := randUnder(s.Random(), len(s.Base)-len(fragment))

	copy(out[start:start+len(fragment)], fragment)

	return out
}
