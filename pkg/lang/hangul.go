// Package lang provides script detection used to pick localized prompt sets.
package lang

// ContainsHangul reports whether s contains at least one Korean character
// (Hangul compatibility jamo U+3131..U+3163 or syllables U+AC00..U+D7A3).
// A negative result is a valid answer, not an error.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if (r >= 0x3131 && r <= 0x3163) || (r >= 0xAC00 && r <= 0xD7A3) {
			return true
		}
	}
	return false
}
