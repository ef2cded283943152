// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package divine

import (
	"slices"
)

// DefaultCorruptionAlphabet is the ordered set of symbols the oracle
// injects as corruption. Any occurrence of one of these in a sample is a
// corruption marker.
var DefaultCorruptionAlphabet = []uint16{
	161,
	162,
	193,
	164,
	195,
	166,
	167,
	168,
	169,
	170,
}

// randUnder scales a unit-interval draw to [0, under) the way the target
// does: multiply and truncate.
func randUnder(f float64, under int) int {
	return int(f * float64(under))
}

// containsAny reports whether text carries any symbol of alphabet.
func containsAny(text, alphabet []uint16) bool {
	for _, elem := range text {
		if slices.Contains(alphabet, elem) {
			return true
		}
	}

	return false
}
