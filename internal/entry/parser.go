package entry

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// clockPattern matches H:MM input (e.g., "1:30", "10:5")
var clockPattern = regexp.MustCompile(`^(\d+):(\d{1,2})$`)

// unitPattern detects an hour or minute unit anywhere in the input
var unitPattern = regexp.MustCompile(`(?i)[hm]`)

// hoursPattern and minutesPattern extract the optional components of "2h 30m"
var (
	hoursPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*h`)
	minutesPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*m`)
)

// numberPattern matches a bare integer or decimal number of minutes
var numberPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// MaxDurationMinutes is the longest duration ParseDuration accepts (10000h).
const MaxDurationMinutes = 10000 * 60

// ParseDuration parses free-form duration input and returns whole minutes.
// Recognized forms, tried in order:
//   - "H:MM" (e.g., "1:30" returns 90)
//   - any input with an h or m unit (e.g., "2h", "30m", "2h 30m", "1.5h")
//   - a bare number of minutes (e.g., "90")
//
// The result is never below 1 minute: "0m" returns 1. Anything above
// MaxDurationMinutes is rejected.
func ParseDuration(input string) (int, error) {
	s := strings.TrimSpace(input)

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, invalidDuration(input)
		}
		mins, _ := strconv.ParseFloat(m[2], 64)
		return wholeMinutes(input, hours*60+mins)
	}

	if unitPattern.MatchString(s) {
		hm := hoursPattern.FindStringSubmatch(s)
		mm := minutesPattern.FindStringSubmatch(s)
		if hm == nil && mm == nil {
			return 0, invalidDuration(input)
		}

		total := 0.0
		if hm != nil {
			v, err := strconv.ParseFloat(hm[1], 64)
			if err != nil {
				return 0, invalidDuration(input)
			}
			total += math.Round(v * 60)
		}
		if mm != nil {
			v, err := strconv.ParseFloat(mm[1], 64)
			if err != nil {
				return 0, invalidDuration(input)
			}
			total += math.Round(v)
		}
		return wholeMinutes(input, total)
	}

	if numberPattern.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, invalidDuration(input)
		}
		return wholeMinutes(input, v)
	}

	return 0, invalidDuration(input)
}

// wholeMinutes rounds and bounds a parsed total before it is converted to int.
func wholeMinutes(input string, minutes float64) (int, error) {
	minutes = math.Round(minutes)
	if minutes > MaxDurationMinutes {
		return 0, fmt.Errorf("%w: duration %q is longer than %dh", ErrInvalidArgument, input, MaxDurationMinutes/60)
	}
	return atLeastOne(int(minutes)), nil
}

func atLeastOne(minutes int) int {
	if minutes < 1 {
		return 1
	}
	return minutes
}

func invalidDuration(input string) error {
	return fmt.Errorf("%w: cannot parse duration %q (use formats like 2h 30m, 90m, 1.5h, 1:30 or 90)", ErrInvalidArgument, input)
}
