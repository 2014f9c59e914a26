package fiscal

import "math"

// Hours decodes the packed time encoding used by the practice-management
// export, where hours and minutes are concatenated as digits: 130 means
// 1h30m, 12 means 12 minutes. Values under 100 carry minutes only. Nil,
// non-finite and non-positive values decode to zero.
//
// The encoding is lossy by design upstream; the 100 threshold and the
// round-before-split order must not change.
func Hours(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	n := int(math.Round(*v))
	if n <= 0 {
		return 0
	}
	if n < 100 {
		return float64(n) / 60
	}
	return float64(n/100) + float64(n%100)/60
}
