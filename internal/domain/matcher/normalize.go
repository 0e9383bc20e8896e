package matcher

import "strings"

// normalizeReference canonicalizes a payment reference for exact comparison:
// uppercase, all spaces removed, a leading "RF" creditor-reference prefix
// stripped, leading zeros stripped. Returns "" when nothing usable remains;
// a non-empty result is never compared case- or whitespace-sensitively.
func normalizeReference(raw string) string {
	if raw == "" {
		return ""
	}
	ref := strings.ToUpper(raw)
	ref = strings.ReplaceAll(ref, " ", "")
	ref = strings.TrimPrefix(ref, "RF")
	ref = strings.TrimLeft(ref, "0")
	return ref
}

// containsEither reports whether a contains b or b contains a.
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// normalizeName canonicalizes a counterparty name: lowercase, trimmed,
// internal whitespace runs collapsed to single spaces. Returns "" when
// nothing usable remains.
func normalizeName(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	return strings.Join(fields, " ")
}
