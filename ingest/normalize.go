package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skyfly/aircraftdb/refdata"
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeFieldName canonicalizes a raw header name: trim, lower-case,
// collapse every run of non-alphanumeric characters into one underscore,
// strip leading and trailing underscores. Idempotent, so already-canonical
// names pass through unchanged.
//
//	"MODE S CODE HEX" → "mode_s_code_hex"
//	" TYPE-ACFT "     → "type_acft"
func NormalizeFieldName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonAlnumRuns.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// CoerceInt parses a trimmed integer. Returns (0, false) on anything else;
// coercions never fail a row by themselves.
func CoerceInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CoerceFloat parses a trimmed float. Returns (0, false) on anything else.
func CoerceFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CoerceDate parses the FAA YYYYMMDD date form into ISO "2006-01-02".
// Already-ISO dates pass through. Returns ("", false) on anything else.
func CoerceDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if t, err := time.Parse("20060102", raw); err == nil {
		return t.Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", raw); err == nil {
		return raw, true
	}
	return "", false
}

// CoerceModeSHex validates a Mode-S transponder address: trimmed,
// upper-cased, exactly six hex digits. Returns ("", false) otherwise.
func CoerceModeSHex(raw string) (string, bool) {
	return refdata.NormalizeModeS(raw)
}

// CanonicalTail canonicalizes a tail number to its registration form.
// See refdata.CanonicalTail.
func CanonicalTail(raw string) string {
	return refdata.CanonicalTail(raw)
}
