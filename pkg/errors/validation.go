package errors

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// idRegex matches scene identifiers: template ids, element keys, view names.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.:#-]*$`)

// ValidateID validates a scene identifier.
//
// The rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 128 characters
//   - Letters, digits and _ . : # - only, not starting with punctuation other than _
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidID, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "id %q contains whitespace or control characters", id)
		}
	}

	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidID, "invalid id: %q", id)
	}

	return nil
}

// ParseFloats parses a comma separated list of exactly n finite numbers,
// e.g. "10,20" for a point or "0,0,100,40" for a rectangle.
func ParseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, New(ErrCodeInvalidPoint, "expected %d comma separated numbers, got %q", n, s)
	}

	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, Wrap(ErrCodeInvalidPoint, err, "parse %q", p)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, New(ErrCodeInvalidPoint, "non-finite value %q", p)
		}
		out[i] = v
	}
	return out, nil
}
