// Package framesource solves discovery for the frame bytes this module
// consumes: announcing this decoder and finding a stage-one bridge on the
// LAN via mDNS/DNS-SD, using github.com/brutella/dnssd the same way
// dns_sd.go used it for KISS-TNC discovery. The frame bytes themselves
// still travel over whatever TCP/serial connection the caller dials once a
// peer is found; this package only solves "where".
package framesource

import (
	"context"
	"os"
	"strings"

	"github.com/brutella/dnssd"

	"github.com/flexpager/flexproc/internal/logging"
)

// ServiceType is the DNS-SD service type this decoder announces and browses
// for, naming a stage-one bridge publishing raw FLEX frames.
const ServiceType = "_flex-frames._tcp"

// defaultServiceName mirrors dns_sd_default_service_name: "flexproc on
// <hostname>", or just "flexproc" if the hostname can't be read.
func defaultServiceName() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "flexproc"
	}
	hostname, _, _ = strings.Cut(hostname, ".")
	return "flexproc on " + hostname
}

// Announce publishes this process as a frame sink on port, responding to
// DNS-SD queries until ctx is cancelled. name may be empty to use the
// default.
func Announce(ctx context.Context, name string, port int) error {
	if name == "" {
		name = defaultServiceName()
	}

	cfg := dnssd.Config{ //nolint:exhaustruct
		Name: name,
		Type: ServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		logging.Log(logging.CategoryError, "framesource: failed to create service", "err", err)
		return err
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		logging.Log(logging.CategoryError, "framesource: failed to create responder", "err", err)
		return err
	}

	if _, err := rp.Add(sv); err != nil {
		logging.Log(logging.CategoryError, "framesource: failed to add service", "err", err)
		return err
	}

	logging.Log(logging.CategoryInfo, "framesource: announcing", "port", port, "name", name)

	go func() {
		if err := rp.Respond(ctx); err != nil && ctx.Err() == nil {
			logging.Log(logging.CategoryError, "framesource: responder error", "err", err)
		}
	}()
	return nil
}

// Peer describes a discovered stage-one bridge.
type Peer struct {
	Name string
	Host string
	Port int
}

// Browse watches for stage-one bridges publishing ServiceType until ctx is
// cancelled, invoking found for each one as it's added.
func Browse(ctx context.Context, found func(Peer)) error {
	addFn := func(e dnssd.BrowseEntry) {
		host := e.Host
		if len(e.IPs) != 0 {
			host = e.IPs[0].String()
		}
		found(Peer{Name: e.Name, Host: host, Port: e.Port})
	}
	removeFn := func(dnssd.BrowseEntry) {}

	return dnssd.LookupType(ctx, ServiceType, addFn, removeFn)
}
