package youtube

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ParseDuration converts the Data API's ISO-8601 duration code ("PT2M30S",
// "PT1H5M", "P1DT2H") into a time.Duration. Only the units the API emits are
// supported: days, hours, minutes, seconds.
func ParseDuration(code string) (time.Duration, error) {
	s := strings.TrimSpace(code)
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid duration code %q", code)
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	value := 0
	haveValue := false

	for _, r := range s {
		switch {
		case r == 'T':
			if inTime || haveValue {
				return 0, fmt.Errorf("invalid duration code %q", code)
			}
			inTime = true
		case unicode.IsDigit(r):
			value = value*10 + int(r-'0')
			haveValue = true
		default:
			if !haveValue {
				return 0, fmt.Errorf("invalid duration code %q", code)
			}
			var unit time.Duration
			switch {
			case r == 'D' && !inTime:
				unit = 24 * time.Hour
			case r == 'H' && inTime:
				unit = time.Hour
			case r == 'M' && inTime:
				unit = time.Minute
			case r == 'S' && inTime:
				unit = time.Second
			default:
				return 0, fmt.Errorf("invalid duration unit %q in %q", string(r), code)
			}
			total += time.Duration(value) * unit
			value = 0
			haveValue = false
		}
	}
	if haveValue {
		return 0, fmt.Errorf("trailing value in duration code %q", code)
	}
	return total, nil
}
