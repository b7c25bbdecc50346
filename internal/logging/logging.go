// Package logging wraps charmbracelet/log with five categories modelled on
// textcolor.go's dw_color_e enum (info/error/recv/decoded/debug), so the
// frame processor can log the same events the C source did
// without reintroducing its #ifdef SERDEBUG conditional compilation.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// Category mirrors the dw_color_e enum textcolor.go used, kept as a logging
// category instead of a terminal color.
type Category int

const (
	CategoryInfo Category = iota
	CategoryError
	CategoryRecv
	CategoryDecoded
	CategoryDebug
)

// Logger is the process-wide structured logger used by the decoder and the
// ambient/domain packages around it.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "flexproc",
})

func (c Category) String() string {
	switch c {
	case CategoryInfo:
		return "info"
	case CategoryError:
		return "error"
	case CategoryRecv:
		return "recv"
	case CategoryDecoded:
		return "decoded"
	case CategoryDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Log writes msg under category c with the given key/value pairs, routed to
// the matching charmbracelet/log level.
func Log(c Category, msg string, keyvals ...interface{}) {
	switch c {
	case CategoryError:
		Logger.Error(msg, keyvals...)
	case CategoryDebug:
		Logger.Debug(msg, keyvals...)
	case CategoryRecv, CategoryDecoded:
		Logger.With("category", c.String()).Info(msg, keyvals...)
	default:
		Logger.Info(msg, keyvals...)
	}
}

// SetLevel controls verbosity the way text_color_init(level) gated debug
// output.
func SetLevel(level log.Level) {
	Logger.SetLevel(level)
}
