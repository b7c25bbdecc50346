// Command flexproc runs the FLEX second-stage frame processor: it reads
// already-synchronized, error-corrected frames from a stage-one bridge
// (discovered or dialed over TCP) and writes completed messages to a
// serial port or stdout. CLI flags layer over config-file defaults the
// same way the appserver command's flag handling did.
package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/flexpager/flexproc/flex"
	"github.com/flexpager/flexproc/internal/config"
	"github.com/flexpager/flexproc/internal/devicewatch"
	"github.com/flexpager/flexproc/internal/framesource"
	"github.com/flexpager/flexproc/internal/logging"
	"github.com/flexpager/flexproc/internal/sink"
	"github.com/flexpager/flexproc/internal/watchdog"
)

func main() {
	// A first, tolerant pass just to learn --config before the rest of the
	// config-struct flags (whose defaults depend on the loaded file) exist.
	preScan := pflag.NewFlagSet("flexproc-prescan", pflag.ContinueOnError)
	preScan.ParseErrorsWhitelist.UnknownFlags = true
	var configPath string
	preScan.StringVar(&configPath, "config", "", "path to a YAML config file")
	_ = preScan.Parse(os.Args[1:])

	fileCfg, err := config.Load(configPath)
	if err != nil {
		os.Exit(1)
	}
	cfg := fileCfg
	cfg.BindFlags(pflag.CommandLine)

	pflag.StringVar(&configPath, "config", configPath, "path to a YAML config file")
	var dial string
	pflag.StringVar(&dial, "dial", "", "host:port of a stage-one bridge (skips DNS-SD discovery)")
	var announce bool
	pflag.BoolVar(&announce, "announce", false, "announce this process via mDNS/DNS-SD")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "flexproc - FLEX second-stage frame processor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if cfg.Verbose {
		logging.SetLevel(log.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var out flex.Sink
	if cfg.SerialPort != "" {
		format := sink.FormatHumanReadable
		if cfg.SinkFormat == "machine" {
			format = sink.FormatMachineParseable
		}
		s, err := sink.Open(cfg.SerialPort, cfg.SerialBaud, format)
		if err != nil {
			logging.Log(logging.CategoryError, "could not open serial sink", "err", err)
			os.Exit(1)
		}
		defer s.Close()
		out = s
	} else if cfg.SinkFormat == "machine" {
		out = flex.MachineParseableSink{W: os.Stdout}
	} else {
		out = flex.HumanReadableSink{W: os.Stdout}
	}

	decoder := flex.NewDecoder(flex.Config{
		MaxMappings: cfg.MaxMappings,
		MaxMessages: cfg.MaxMessages,
		LongMsgTTL:  cfg.LongMsgTTL,
		Validator:   passthroughValidator{},
		Sink:        out,
	})

	var feeder *watchdog.Feeder
	if cfg.WatchdogChip != "" {
		feeder, err = watchdog.Open(cfg.WatchdogChip, cfg.WatchdogLine)
		if err != nil {
			logging.Log(logging.CategoryError, "watchdog disabled: could not open gpio line", "err", err)
		} else {
			defer feeder.Close()
		}
	}

	if announce {
		if err := framesource.Announce(ctx, cfg.DNSSDName, cfg.DNSSDPort); err != nil {
			logging.Log(logging.CategoryError, "dns-sd announce failed", "err", err)
		}
	}

	if dial == "" {
		peers := make(chan framesource.Peer, 1)
		go func() {
			if err := framesource.Browse(ctx, func(p framesource.Peer) {
				select {
				case peers <- p:
				default:
				}
			}); err != nil {
				logging.Log(logging.CategoryError, "dns-sd browse failed", "err", err)
			}
		}()
		select {
		case p := <-peers:
			dial = fmt.Sprintf("%s:%d", p.Host, p.Port)
		case <-ctx.Done():
			return
		}
	}

	if devices, err := devicewatch.Watch(ctx); err != nil {
		logging.Log(logging.CategoryError, "device watch disabled", "err", err)
	} else {
		go func() {
			for ev := range devices {
				logging.Log(logging.CategoryInfo, "device event", "action", ev.Action, "node", ev.DeviceNode)
			}
		}()
	}

	conn, err := net.Dial("tcp", dial)
	if err != nil {
		logging.Log(logging.CategoryError, "could not connect to stage one", "addr", dial, "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	runFrameLoop(ctx, conn, decoder, feeder)
}

// runFrameLoop reads fixed-size, gob-free binary Frame records (see
// readFrame) from r and hands each to decoder, feeding the watchdog after
// every frame it hands over, including frames the decoder discards.
func runFrameLoop(ctx context.Context, r io.Reader, decoder *flex.Decoder, feeder *watchdog.Feeder) {
	reader := bufio.NewReader(r)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		f, err := readFrame(reader)
		if err != nil {
			if err != io.EOF {
				logging.Log(logging.CategoryError, "frame read error", "err", err)
			}
			return
		}

		decoder.ProcessFrame(f)
		if feeder != nil {
			feeder.Feed()
		}
	}
}

// readFrame decodes the on-wire framing this command expects from a stage
// one bridge: a 2-byte cycle/frame header followed by MaxBlocks*8 big-endian
// uint32 words. The wire format itself is an implementation detail of this
// command, not part of the flex package's contract. Stage one has already
// done FEC by the time a word reaches this wire format, so every word read
// here is marked valid; a bridge that ships its own per-word check bits
// would need a richer wire format than this one.
func readFrame(r *bufio.Reader) (*flex.Frame, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	f := &flex.Frame{FIW: flex.FIW{Cycle: header[0], Frame: header[1]}}
	for b := 0; b < flex.MaxBlocks; b++ {
		for w := 0; w < 8; w++ {
			var word uint32
			if err := binary.Read(r, binary.BigEndian, &word); err != nil {
				return nil, err
			}
			f.Block[b].Word[w] = word
			f.SetValid(b*8+w, true)
		}
	}
	return f, nil
}

// passthroughValidator treats every word as already validated, for use when
// stage one (not this process) owns FEC. A deployment whose stage-one bridge
// doesn't repair words itself should supply its own WordValidator instead.
type passthroughValidator struct{}

func (passthroughValidator) ValidateWord(f *flex.Frame, index int, _ flex.ValidateFlag) flex.ValidateResult {
	f.SetValid(index, true)
	return flex.ValidatePass
}

