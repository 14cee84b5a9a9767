package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Spec is a position in a media, expressed either in seconds, as a clock string or as a percentage.
// It is decided once, at the boundary, and resolved to seconds against a duration.
type Spec interface {
	// Resolve returns the position in seconds; unreadable positions resolve to 0.
	Resolve(duration float64) float64
	fmt.Stringer
	isSpec()
}

// Seconds is an absolute position in seconds.
type Seconds float64

// Clock is an absolute position written as h:mm:ss.
type Clock string

// Percent is a position relative to the media duration, 0 to 100.
type Percent float64

func (s Seconds) Resolve(float64) float64 {
	return finiteOrZero(float64(s))
}

func (s Seconds) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}

func (c Clock) Resolve(float64) float64 {
	v, err := Parse(string(c))
	if err != nil {
		return 0
	}
	return v
}

func (c Clock) String() string {
	return string(c)
}

func (p Percent) Resolve(duration float64) float64 {
	return finiteOrZero(TimeAt(duration, float64(p)))
}

func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64) + "%"
}

func (Seconds) isSpec() {}
func (Clock) isSpec()   {}
func (Percent) isSpec() {}

var leadingInt = regexp.MustCompile(`^\s*[+-]?[0-9]+`)

// ParseSpec classifies s: anything containing ':' is a Clock, anything containing '%'
// is a Percent of its leading integer, and the rest is Seconds of its leading integer.
// Text without a leading integer becomes Seconds(NaN), which resolves to 0.
func ParseSpec(s string) Spec {
	switch {
	case strings.Contains(s, ":"):
		return Clock(s)
	case strings.Contains(s, "%"):
		return Percent(leadingInteger(s).OrElse(math.NaN()))
	default:
		return Seconds(leadingInteger(s).OrElse(math.NaN()))
	}
}

// FromAny converts loosely typed input into a Spec.
func FromAny(v any) (Spec, error) {
	switch t := v.(type) {
	case Spec:
		return t, nil
	case string:
		return ParseSpec(t), nil
	case time.Duration:
		return Seconds(t.Seconds()), nil
	case float64:
		return Seconds(t), nil
	case float32:
		return Seconds(t), nil
	case int:
		return Seconds(t), nil
	case int64:
		return Seconds(t), nil
	case int32:
		return Seconds(t), nil
	case uint:
		return Seconds(t), nil
	case uint64:
		return Seconds(t), nil
	case nil:
		return nil, fmt.Errorf("timecode: nil position")
	default:
		return nil, fmt.Errorf("timecode: unsupported position type %T", v)
	}
}

func leadingInteger(s string) mo.Option[float64] {
	m := leadingInt.FindString(s)
	if m == "" {
		return mo.None[float64]()
	}

	v, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
	if err != nil {
		return mo.None[float64]()
	}
	return mo.Some(float64(v))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
