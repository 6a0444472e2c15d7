package biometric

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	durationPattern = regexp.MustCompile(`^(\d+):([0-5]?\d)$`)
	dayPairPattern  = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)
)

// maxCellValue bounds every decoded count and minute total.
const maxCellValue = math.MaxInt32

// isBlank reports values exports use for "not applicable".
func isBlank(raw string) bool {
	t := strings.TrimSpace(raw)
	return t == "" || t == "-"
}

// DecodeDuration converts "H:MM" into minutes. Blank and "-" are zero; any
// other non-matching token is zero with ok=false.
func DecodeDuration(raw string) (minutes int, ok bool) {
	if isBlank(raw) {
		return 0, true
	}
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil || hours > maxCellValue/60 {
		return 0, false
	}
	mins, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return hours*60 + mins, true
}

// DecodeDayPair converts "scheduled/actual" day counts.
func DecodeDayPair(raw string) (scheduled, actual int, ok bool) {
	if isBlank(raw) {
		return 0, 0, true
	}
	m := dayPairPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, 0, false
	}
	scheduled, err1 := strconv.Atoi(m[1])
	actual, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || scheduled > maxCellValue || actual > maxCellValue {
		return 0, 0, false
	}
	return scheduled, actual, true
}

// DecodeName turns "~" word separators into spaces.
func DecodeName(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "~", " "))
}

// DecodeCount parses a non-negative integer. Integral floats such as "3.0"
// are accepted since numeric cells may carry a decimal part.
func DecodeCount(raw string) (n int, ok bool) {
	if isBlank(raw) {
		return 0, true
	}
	t := strings.TrimSpace(raw)
	if v, err := strconv.Atoi(t); err == nil {
		if v < 0 || v > maxCellValue {
			return 0, false
		}
		return v, true
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > maxCellValue {
		return 0, false
	}
	return int(f), true
}
