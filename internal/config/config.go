// Package config loads the decoder's runtime configuration: the §9 knobs
// (MaxMappings, MaxMessages, LongMsgTTL) plus sink and frame-source wiring.
// Follows the same YAML-backed config, with pflag overrides layered atop
// file defaults, as deviceid_init and its callers use.
package config

import (
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/flexpager/flexproc/internal/logging"
)

// Config is the decoder's top-level configuration.
type Config struct {
	MaxMappings int `yaml:"max_mappings"`
	MaxMessages int `yaml:"max_messages"`
	LongMsgTTL  int `yaml:"long_msg_ttl"`

	SinkFormat string `yaml:"sink_format"` // "human" or "machine"
	SerialPort string `yaml:"serial_port"` // e.g. /dev/ttyUSB0; empty means stdout
	SerialBaud int     `yaml:"serial_baud"`

	DNSSDName string `yaml:"dns_sd_name"`
	DNSSDPort int    `yaml:"dns_sd_port"`

	WatchdogChip string `yaml:"watchdog_chip"`
	WatchdogLine int    `yaml:"watchdog_line"`

	Verbose bool `yaml:"verbose"`
}

// Default returns the §9 defaults, mirrored from flex.DefaultMaxMappings
// etc. (this package avoids importing flex just to read three constants,
// keeping config decoupled from protocol internals).
func Default() Config {
	return Config{
		MaxMappings: 8,
		MaxMessages: 5,
		LongMsgTTL:  10,
		SinkFormat:  "human",
		SerialBaud:  9600,
		DNSSDPort:   7654,
		WatchdogChip: "gpiochip0",
		WatchdogLine: 17,
	}
}

// Load reads path (if non-empty and it exists) over the defaults, the way
// deviceid_init tries a search path and tolerates a missing file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Log(logging.CategoryInfo, "config file not found, using defaults", "path", path)
			return cfg, nil
		}
		logging.Log(logging.CategoryError, "error reading config file", "path", path, "err", err)
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logging.Log(logging.CategoryError, "error parsing config file", "path", path, "err", err)
		return cfg, err
	}
	return cfg, nil
}

// BindFlags registers pflag overrides for every Config field atop fs, the
// way cmd/*/main.go layers flags over a loaded config.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.MaxMappings, "max-mappings", c.MaxMappings, "maximum live temporary-address mappings")
	fs.IntVar(&c.MaxMessages, "max-messages", c.MaxMessages, "maximum parked (fragmented) messages")
	fs.IntVar(&c.LongMsgTTL, "long-msg-ttl", c.LongMsgTTL, "frames a fragmented message may wait before forced emission")
	fs.StringVar(&c.SinkFormat, "sink-format", c.SinkFormat, "output format: human or machine")
	fs.StringVar(&c.SerialPort, "serial-port", c.SerialPort, "serial device to write output to (empty: stdout)")
	fs.IntVar(&c.SerialBaud, "serial-baud", c.SerialBaud, "serial port speed")
	fs.StringVar(&c.DNSSDName, "dns-sd-name", c.DNSSDName, "mDNS/DNS-SD service name to announce")
	fs.IntVar(&c.DNSSDPort, "dns-sd-port", c.DNSSDPort, "mDNS/DNS-SD service port to announce")
	fs.StringVar(&c.WatchdogChip, "watchdog-chip", c.WatchdogChip, "gpiocdev chip for the watchdog feed line")
	fs.IntVar(&c.WatchdogLine, "watchdog-line", c.WatchdogLine, "gpiocdev line offset for the watchdog feed")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "enable debug logging")
}
