package statmath

import (
	"math"
	"strconv"
)

// NoData is what the dashboard renders for a value that is either
// missing or a not-applicable zero.
const NoData = "-"

// CompletionPct computes completions/attempts as a percentage rounded
// to one decimal. Returns nil when either input is missing or attempts
// is zero; the caller renders nil as the NoData marker.
func CompletionPct(completions, attempts *int) *float64 {
	if completions == nil || attempts == nil || *attempts == 0 {
		return nil
	}
	pct := float64(*completions) / float64(*attempts) * 100.0
	pct = math.Round(pct*10) / 10
	return &pct
}

// DisplayValue formats a nullable float for display. Missing values
// render as NoData. Zero also renders as NoData unless allowZero is
// set; the totals row sets it so a true zero is not hidden. This is a
// render-time convention only and must never run before aggregation.
func DisplayValue(v *float64, allowZero bool) string {
	if v == nil {
		return NoData
	}
	if *v == 0 && !allowZero {
		return NoData
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// DisplayInt is DisplayValue for counting stats.
func DisplayInt(v *int, allowZero bool) string {
	if v == nil {
		return NoData
	}
	if *v == 0 && !allowZero {
		return NoData
	}
	return strconv.Itoa(*v)
}

// DisplayFixed formats a nullable float to the given number of decimal
// places, with the same zero/missing convention as DisplayValue. Used
// for EPA and rate columns.
func DisplayFixed(v *float64, decimals int, allowZero bool) string {
	if v == nil {
		return NoData
	}
	if *v == 0 && !allowZero {
		return NoData
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}
