// Package watchdog feeds an external hardware watchdog once per frame
// handed to the decoder, generalized from cm108.go's CM108 GPIO PTT
// control line to a Linux gpiocdev line via github.com/warthog618/go-gpiocdev.
// Spec.md §5 describes the watchdog itself ("kills the process wholesale on
// hang") as an external collaborator; this is only the feed side of that
// contract.
package watchdog

import (
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/flexpager/flexproc/internal/logging"
)

// Feeder toggles a GPIO output line to keep an external watchdog timer from
// firing.
type Feeder struct {
	line  *gpiocdev.Line
	state int
}

// Open requests lineOffset on chip (e.g. "gpiochip0") as an output and
// returns a Feeder for it.
func Open(chip string, lineOffset int) (*Feeder, error) {
	line, err := gpiocdev.RequestLine(chip, lineOffset, gpiocdev.AsOutput(0))
	if err != nil {
		logging.Log(logging.CategoryError, "watchdog: could not request gpio line",
			"chip", chip, "line", lineOffset, "err", err)
		return nil, err
	}
	return &Feeder{line: line}, nil
}

// Feed toggles the watchdog line once. cmd/flexproc calls it after every
// Decoder.ProcessFrame call, whether or not the frame was discarded.
func (f *Feeder) Feed() {
	f.state ^= 1
	if err := f.line.SetValue(f.state); err != nil {
		logging.Log(logging.CategoryError, "watchdog: feed failed", "err", err)
	}
}

// Close releases the GPIO line.
func (f *Feeder) Close() error {
	if f.line == nil {
		return nil
	}
	return f.line.Close()
}

// RunPeriodicFeed calls feed every interval until stop is closed, for
// callers that want a heartbeat independent of frame arrival (e.g. a
// stage-one link that's temporarily idle but still alive).
func RunPeriodicFeed(feed func(), interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			feed()
		case <-stop:
			return
		}
	}
}
