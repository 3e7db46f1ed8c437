package utils

import (
	"math"
	"strconv"
)

// Float to int conversion is implementation-dependent once the value
// leaves the int range, so oversized inputs clamp here, in float space,
// before the conversion.
const maxPagingValue = math.MaxInt32

// ParsePagingParam parses a limit/offset query value. Non-numeric,
// non-finite or <= 0 inputs fall back to the default; fractional values
// are floored; values beyond the int32 range clamp to it.
func ParsePagingParam(raw string, fallback int) int {
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		return fallback
	}
	if parsed > maxPagingValue {
		return maxPagingValue
	}
	return int(math.Floor(parsed))
}

// ClampLimit caps a page size at the route maximum.
func ClampLimit(limit, max int) int {
	if limit > max {
		return max
	}
	return limit
}
