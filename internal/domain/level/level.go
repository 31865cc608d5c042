// Package level defines the ordinal skill-level scale shared by required and
// held skill levels.
package level

import (
	"strconv"
	"strings"
)

// vocabulary lists level names in ascending order; rank = index + 1.
var vocabulary = []string{
	"beginner",
	"junior",
	"intermediate",
	"mid",
	"senior",
	"expert",
	"principal",
}

// MaxRank is the rank of the highest named level.
const MaxRank = 7

// DefaultRank is used for empty or unrecognized levels.
const DefaultRank = 1

// Rank normalizes a level to its ordinal rank. Numeric strings are taken as
// the rank directly (no upper clamp), names are looked up case-insensitively,
// and anything else falls back to DefaultRank.
func Rank(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRank
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n > 0 {
			return n
		}
		return DefaultRank
	}
	for i, name := range vocabulary {
		if strings.EqualFold(s, name) {
			return i + 1
		}
	}
	return DefaultRank
}

// Name returns the vocabulary name for a rank, or empty when the rank has no
// name.
func Name(rank int) string {
	if rank < 1 || rank > len(vocabulary) {
		return ""
	}
	return vocabulary[rank-1]
}
