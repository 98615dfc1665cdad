package provision

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnitsConsumed is the consumption of one quota dimension. A nil Limit
// means unlimited, in which case UsedPC is nil as well.
type UnitsConsumed struct {
	Used   float64  `json:"used"`
	Limit  *float64 `json:"limit"`
	UsedPC *string  `json:"used_pc"`
}

// NewUnitsConsumed builds a dimension and derives UsedPC as
// round(used/limit*100, 1) followed by "%".
func NewUnitsConsumed(used float64, limit *float64) *UnitsConsumed {
	u := &UnitsConsumed{Used: used, Limit: limit}
	if limit != nil && *limit > 0 {
		pc := math.Round(used / *limit * 1000) / 10
		s := strconv.FormatFloat(pc, 'f', -1, 64) + "%"
		u.UsedPC = &s
	}
	return u
}

// Limit returns a pointer to v for use as a finite limit
func Limit(v float64) *float64 {
	return &v
}

// ParseQuota parses a textual quota value. Any of the panel's unlimited
// sentinels (compared case-insensitively) yields nil.
func ParseQuota(raw string, unlimited ...string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range unlimited {
		if strings.EqualFold(raw, s) {
			return nil, nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quota value %q: %w", raw, err)
	}
	return &v, nil
}

// NumericQuota returns nil when v equals one of the panel's numeric
// unlimited sentinels (-1, or 0 on panels where zero means infinite).
func NumericQuota(v float64, unlimited ...float64) *float64 {
	for _, s := range unlimited {
		if v == s {
			return nil
		}
	}
	return &v
}
