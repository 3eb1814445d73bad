package records

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDuration interprets a stored match duration as a number. Durations are
// kept as the text the caller sent so they round-trip unchanged; this is the
// single place that decides what counts as numeric.
func ParseDuration(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q is not a number", ErrValidation, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: duration %q is not a finite number", ErrValidation, raw)
	}
	return v, nil
}
