package jalali

import "strings"

// Digit transcoding between ASCII and the local numeral glyphs. Stored and
// transmitted values are always ASCII; glyphs appear only at the UI boundary.

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

// ToLocalDigits replaces ASCII digits in s with Persian numeral glyphs.
// Non-digit runes pass through unchanged.
func ToLocalDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(persianDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToASCIIDigits replaces Persian numeral glyphs in s with ASCII digits.
// Arabic-Indic glyphs (the alternate set some keyboards emit) are accepted
// too. Everything else passes through unchanged.
func ToASCIIDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '۰' && r <= '۹': // Persian U+06F0–U+06F9
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩': // Arabic-Indic U+0660–U+0669
			b.WriteRune('0' + (r - '٠'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
