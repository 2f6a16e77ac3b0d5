package refdata

import (
	"regexp"
	"strings"
)

var modeSHexForm = regexp.MustCompile(`^[0-9A-F]{6}$`)

// NormalizeModeS validates a Mode-S transponder address: trimmed,
// upper-cased, exactly six hex digits. Returns ("", false) otherwise.
// Malformed addresses are dropped at normalization time so the Mode-S
// index never holds junk.
func NormalizeModeS(raw string) (string, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if !modeSHexForm.MatchString(raw) {
		return "", false
	}
	return raw, true
}

// CanonicalTail canonicalizes a tail number to its registration form:
// trimmed, upper-cased, with the N prefix the FAA release leaves implicit.
// Returns "" for blank input.
func CanonicalTail(raw string) string {
	tail := strings.ToUpper(strings.TrimSpace(raw))
	if tail == "" {
		return ""
	}
	if !strings.HasPrefix(tail, "N") {
		tail = "N" + tail
	}
	return tail
}
