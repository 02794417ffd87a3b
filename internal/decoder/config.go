package decoder

import (
	"sqtt/common"
	"sqtt/internal/packet"
)

// Config controls a Decoder.
type Config struct {
	Logger common.Logger

	// Table maps selectors to kinds; nil uses packet.DefaultTable.
	Table *packet.Table

	// MaxPackets stops decoding cleanly after that many packets. 0 means
	// no limit.
	MaxPackets uint32
}

// NewConfig creates a default configuration
func NewConfig() *Config {
	return &Config{}
}
