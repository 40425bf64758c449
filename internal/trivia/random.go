package trivia

import (
	"slices"
	"unicode/utf16"
)

// HashDate derives the shuffle seed from a date string.
//
// It is a 31-multiplier polynomial hash over the UTF-16 code units of s with 32-bit signed wraparound. The result is
// the absolute value, which is why it is returned as int64: |-2^31| does not fit in an int32.
func HashDate(s string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c) //nolint:mnd // hash multiplier
	}
	seed := int64(h)
	if seed < 0 {
		seed = -seed
	}
	return seed
}

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Rand is the seeded linear congruential generator behind the daily shuffle.
//
// The generator is shared by all shuffles of one selection, so the order of Next calls is part of the output.
type Rand struct {
	state int64
}

// NewRand returns a generator seeded with seed, typically the result of HashDate.
func NewRand(seed int64) *Rand {
	return &Rand{state: seed}
}

// Next advances the generator and returns a float in [0, 1).
func (r *Rand) Next() float64 {
	// state <= 2^31 so the product stays below 2^63.
	r.state = (r.state*lcgMultiplier + lcgIncrement) & (lcgModulus - 1)
	return float64(r.state) / lcgModulus
}

// Shuffle returns a Fisher-Yates shuffled copy of items drawing from r.
func Shuffle[T any](items []T, r *Rand) []T {
	shuffled := slices.Clone(items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
