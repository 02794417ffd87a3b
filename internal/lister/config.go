package lister

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"sqtt/common"
	icommon "sqtt/internal/common"
	"sqtt/internal/marker"
	"sqtt/internal/sqtt"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// MarkerConfig overrides the marker reassembly constants.
type MarkerConfig struct {
	Registers []uint16 `yaml:"registers"`
	Code      uint32   `yaml:"code"`
}

// Config mirrors the command line arguments of sqtt_pkt_lister.
type Config struct {
	CapturePath string `yaml:"capture"`

	// Decode lists every decoded packet.
	Decode bool `yaml:"decode"`

	// Events lists reassembled marker events.
	Events bool `yaml:"events"`

	Format      string       `yaml:"format"`
	Workers     int          `yaml:"workers"`
	MaxPackets  uint32       `yaml:"max_packets"`
	NoTimePrint bool         `yaml:"no_time_print"`
	Stats       bool         `yaml:"stats"`
	RawDump     int          `yaml:"raw_dump"`
	Marker      MarkerConfig `yaml:"marker"`

	// Buffer restricts text output to one buffer index. -1 lists all.
	Buffer int `yaml:"buffer"`

	OutputWriter io.Writer     `yaml:"-"`
	Logger       common.Logger `yaml:"-"`
}

// NewConfig creates a default configuration
func NewConfig() *Config {
	return &Config{
		Events: true,
		Format: FormatText,
		Buffer: -1,
		Marker: MarkerConfig{
			Registers: []uint16{marker.RegUserdata2, marker.RegUserdata3},
			Code:      marker.DefaultMarkerCode,
		},
	}
}

// LoadConfigFile reads a YAML file over the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, cfg.Validate()
}

func invalidParam(format string, args ...interface{}) error {
	return icommon.NewErrorMsg(sqtt.ErrSevError, sqtt.ErrInvalidParamVal, fmt.Sprintf(format, args...))
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatCBOR:
	default:
		return invalidParam("format %q: want text, json or cbor", c.Format)
	}
	if c.Workers < 0 {
		return invalidParam("workers must not be negative")
	}
	if c.RawDump < 0 {
		return invalidParam("raw_dump must not be negative")
	}
	return nil
}
