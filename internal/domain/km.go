package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Km is a distance in tenths of a kilometre.
// The database stores distances as NUMERIC(7,1); keeping them as an integer
// count of tenths in Go means sums never pass through float64.
type Km int64

// MaxKm is the largest distance a NUMERIC(7,1) column can hold (999999.9 km).
const MaxKm Km = 9_999_999

// KmFromTenths builds a Km from a raw tenths value.
func KmFromTenths(tenths int64) Km { return Km(tenths) }

// Tenths returns the raw tenths value.
func (k Km) Tenths() int64 { return int64(k) }

// String renders k with exactly one fractional digit, e.g. "20.0".
func (k Km) String() string {
	v := int64(k)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%d", sign, v/10, v%10)
}

// ParseKm parses a decimal string with at most one fractional digit.
// "10", "10.5" and "-3.0" are accepted; "10.55", "1e3" and "" are not.
func ParseKm(s string) (Km, error) {
	s = strings.TrimSpace(s)
	raw := s

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || len(whole) > 15 || !allDigits(whole) {
		return 0, fmt.Errorf("invalid distance %q", raw)
	}
	if hasFrac && (len(frac) != 1 || !allDigits(frac)) {
		return 0, fmt.Errorf("invalid distance %q: at most one decimal place", raw)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid distance %q: %w", raw, err)
	}
	tenths := w * 10
	if hasFrac {
		tenths += int64(frac[0] - '0')
	}
	if neg {
		tenths = -tenths
	}
	return Km(tenths), nil
}

// MarshalJSON renders k as a JSON string ("20.0") so clients never see a
// binary float.
func (k Km) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string ("12.5") or a JSON number (12.5).
func (k *Km) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return fmt.Errorf("distance must not be null")
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	v, err := ParseKm(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
