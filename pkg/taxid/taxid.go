// Package taxid normalizes and formats CNPJ identifiers (the 14-digit
// Brazilian legal-entity tax id). Units of the same legal entity share the
// first eight digits, the group root.
package taxid

import "strings"

// CNPJLength is the digit count of a complete CNPJ.
const CNPJLength = 14

// GroupRootLength is the prefix length identifying the legal entity family.
const GroupRootLength = 8

// Normalize strips every non-digit character. Empty input normalizes to the
// empty string. Idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format returns the canonical punctuated form XX.XXX.XXX/XXXX-XX when the
// normalized input has exactly 14 digits; anything else is returned unchanged.
func Format(raw string) string {
	d := Normalize(raw)
	if len(d) != CNPJLength {
		return raw
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// BelongsToGroup reports whether raw, once normalized, starts with the given
// group root. An empty root matches nothing.
func BelongsToGroup(raw, groupRoot string) bool {
	if groupRoot == "" {
		return false
	}
	return strings.HasPrefix(Normalize(raw), groupRoot)
}
