// Package sanitizer normalizes client-supplied strings before validation so
// equivalent inputs compare equal.
package sanitizer

import "strings"

// TrimAndNormalize trims surrounding whitespace and collapses internal runs
// of whitespace to a single space.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName prepares a room name for storage and comparison.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}
