package inline

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/gxplayer/gxplayer/player"
	"github.com/gxplayer/gxplayer/timecode"
	"github.com/samber/mo"
)

// DefaultTimeout bounds the wait for the media duration.
const DefaultTimeout = 15 * time.Second

type Options struct {
	Out     io.Writer
	Media   player.Media
	Source  string
	At      mo.Option[timecode.Spec]
	Volume  mo.Option[int]
	Json    bool
	Timeout time.Duration
}

// ParsePosition reads a --at value. Empty means no position.
func ParsePosition(value string) (mo.Option[timecode.Spec], error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return mo.None[timecode.Spec](), nil
	}

	switch spec := timecode.ParseSpec(value).(type) {
	case timecode.Clock:
		if _, err := timecode.Parse(string(spec)); err != nil {
			return mo.None[timecode.Spec](), err
		}
		return mo.Some[timecode.Spec](spec), nil
	case timecode.Percent:
		if math.IsNaN(float64(spec)) || spec < 0 || spec > 100 {
			return mo.None[timecode.Spec](), fmt.Errorf("invalid percentage: %s", value)
		}
		return mo.Some[timecode.Spec](spec), nil
	case timecode.Seconds:
		if math.IsNaN(float64(spec)) || spec < 0 {
			return mo.None[timecode.Spec](), fmt.Errorf("invalid position: %s", value)
		}
		return mo.Some[timecode.Spec](spec), nil
	default:
		return mo.None[timecode.Spec](), fmt.Errorf("invalid position: %s", value)
	}
}
