// Package timecode converts between seconds, clock strings (h:mm:ss) and percentages of a duration.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/samber/lo"
)

// ErrFormat is returned when a clock string cannot be read as h:mm:ss.
var ErrFormat = errors.New("timecode: invalid clock format")

var digitRuns = regexp.MustCompile(`[0-9]+`)

// maxSeconds is the largest magnitude a float64 holds to the second.
const maxSeconds = 1 << 53

// Format renders seconds as mm:ss, or h:mm:ss when at least one hour is reached.
// NaN, infinities and magnitudes past whole-second precision render as "00:00".
func Format(seconds float64) string {
	if math.IsNaN(seconds) || math.Abs(seconds) > maxSeconds {
		return "00:00"
	}

	total := int64(math.Floor(seconds + 0.5))
	minutes := floorDiv(total, 60)
	hours := floorDiv(minutes, 60)

	min := minutes - hours*60
	sec := total - minutes*60

	out := pad(min) + ":" + pad(sec)
	if hours > 0 {
		out = strconv.FormatInt(hours, 10) + ":" + out
	}
	return out
}

// Parse reads the digit groups of s as [[hours:]minutes:]seconds.
// Any separator is accepted; more than three groups, or none, is ErrFormat.
func Parse(s string) (float64, error) {
	groups := digitRuns.FindAllString(s, -1)
	if len(groups) == 0 || len(groups) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}

	// right-align into hours, minutes, seconds
	var hms [3]float64
	offset := 3 - len(groups)
	for i, g := range groups {
		v, err := strconv.ParseInt(g, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrFormat, s, err)
		}
		hms[offset+i] = float64(v)
	}

	return hms[0]*3600 + hms[1]*60 + hms[2], nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) float64 {
	return lo.Must(Parse(s))
}

// TimeAt returns the whole second found at percentage of duration.
func TimeAt(duration, percentage float64) float64 {
	return jsRound((duration / 100) * percentage)
}

// PercentOf returns how much of duration the given seconds represent.
// A zero or NaN duration yields 0.
func PercentOf(duration, seconds float64) float64 {
	if duration == 0 || math.IsNaN(duration) || math.IsNaN(seconds) {
		return 0
	}
	return (seconds / duration) * 100
}

// CurrentPercentage is the progress of current through duration, computed on whole seconds.
// It never returns NaN or Inf: unknown or zero values yield 0.
func CurrentPercentage(current, duration float64) float64 {
	if math.IsNaN(current) || math.IsNaN(duration) {
		return 0
	}

	t := jsRound(current)
	d := jsRound(duration)
	if t == 0 || d == 0 || math.IsInf(t, 0) || math.IsInf(d, 0) {
		return 0
	}

	return (t / d) * 100
}

// RemainingPercentage is the complement of CurrentPercentage.
func RemainingPercentage(current, duration float64) float64 {
	return 100 - CurrentPercentage(current, duration)
}

// jsRound rounds half up, matching the rounding used by the h:mm:ss formatter.
func jsRound(v float64) float64 {
	return math.Floor(v + 0.5)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func pad(v int64) string {
	if v < 10 && v >= 0 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
