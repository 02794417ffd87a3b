package marker

import "sqtt/common"

// Register dword addresses of SQ_THREAD_TRACE_USERDATA_2 and _3.
const (
	RegUserdata2 = 0x030D08 / 4
	RegUserdata3 = 0x030D0C / 4
)

// DefaultMarkerCode is the initiator payload that starts a new marker.
const DefaultMarkerCode = 53

// Config controls a Reassembler.
type Config struct {
	Logger common.Logger

	// Registers are the register dword addresses whose writes carry
	// userdata words.
	Registers []uint16

	// MarkerCode is compared with the low 20 bits of type 0 initiators.
	MarkerCode uint32
}

// NewConfig creates a default configuration
func NewConfig() *Config {
	return &Config{
		Registers:  []uint16{RegUserdata2, RegUserdata3},
		MarkerCode: DefaultMarkerCode,
	}
}
