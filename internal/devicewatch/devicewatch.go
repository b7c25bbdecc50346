// Package devicewatch watches udev for USB-serial attach/detach events so a
// frame source can reopen a stage-one dongle that was unplugged and
// replugged, instead of requiring the operator to restart the process.
// Builds on the serial/USB device handling in serial_port.go and
// deviceid.go, generalized from "name a device" to "notice when a device
// appears or disappears" via github.com/jochenvg/go-udev.
package devicewatch

import (
	"context"

	"github.com/jochenvg/go-udev"

	"github.com/flexpager/flexproc/internal/logging"
)

// Event is one hotplug notification for a tty-subsystem device.
type Event struct {
	Action     string // "add" or "remove"
	DeviceNode string // e.g. /dev/ttyUSB0
}

// Watch streams tty hotplug events until ctx is cancelled.
func Watch(ctx context.Context) (<-chan Event, error) {
	u := udev.Udev{}
	monitor := u.NewMonitorFromNetlink("udev")
	if err := monitor.FilterAddMatchSubsystem("tty"); err != nil {
		logging.Log(logging.CategoryError, "devicewatch: could not add subsystem filter", "err", err)
		return nil, err
	}

	deviceCh, errCh, err := monitor.DeviceChan(ctx)
	if err != nil {
		logging.Log(logging.CategoryError, "devicewatch: could not start monitor", "err", err)
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errCh:
				if !ok {
					return
				}
				logging.Log(logging.CategoryError, "devicewatch: monitor error", "err", err)
			case dev, ok := <-deviceCh:
				if !ok {
					return
				}
				select {
				case out <- Event{Action: dev.Action(), DeviceNode: dev.Devnode()}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
