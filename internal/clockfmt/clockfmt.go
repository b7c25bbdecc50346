// Package clockfmt formats the broadcast-derived SysClock container (the
// flex package's decoded date/time/timezone auxiliary BIWs) into a display
// string, using strftime.Format the same way xmit.go and beacon.go format
// timestamp prefixes.
package clockfmt

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/flexpager/flexproc/flex"
	"github.com/flexpager/flexproc/internal/logging"
)

// DefaultLayout mirrors a typical timestamp_format string from an audio
// config: day, 24-hour clock, seconds.
const DefaultLayout = "%Y-%m-%d %H:%M:%S"

// Format renders sys as a time.Time under layout. A zero Year (no AuxDate
// has arrived yet) renders as "unset".
func Format(sys flex.SysClock, layout string) string {
	if sys.Year == 0 {
		return "unset"
	}
	if layout == "" {
		layout = DefaultLayout
	}

	t := time.Date(sys.Year, time.Month(sys.Month), int(sys.Day),
		int(sys.Hour), int(sys.Minute), int(sys.Seconds), 0, timezoneOffset(sys.Timezone))

	formatted, err := strftime.Format(layout, t)
	if err != nil {
		logging.Log(logging.CategoryError, "clockfmt: bad layout", "layout", layout, "err", err)
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", sys.Year, sys.Month, sys.Day, sys.Hour, sys.Minute, sys.Seconds)
	}
	return formatted
}

// timezoneOffset turns the auxiliary BIW's half-hour-step timezone field
// into a fixed *time.Location relative to UTC.
func timezoneOffset(tz uint8) *time.Location {
	minutes := int(tz) * 30
	return time.FixedZone(fmt.Sprintf("FLEX%+03d:%02d", minutes/60, minutes%60), minutes*60)
}
