package marker

import "fmt"

// Identifier is the marker class carried in bits [0:3] of the first
// userdata word.
type Identifier uint8

const (
	IdentEvent Identifier = iota
	IdentCbStart
	IdentCbEnd
	IdentBarrierStart
	IdentBarrierEnd
	IdentUserEvent
	IdentGeneralAPI
	IdentSync
	IdentPresent
	IdentLayoutTransition
	IdentRenderPass
	IdentReserved2
	IdentBindPipeline
	IdentReserved4
	IdentReserved5
	IdentReserved6
)

var identNames = [...]string{
	IdentEvent:            "EVENT",
	IdentCbStart:          "CB_START",
	IdentCbEnd:            "CB_END",
	IdentBarrierStart:     "BARRIER_START",
	IdentBarrierEnd:       "BARRIER_END",
	IdentUserEvent:        "USER_EVENT",
	IdentGeneralAPI:       "GENERAL_API",
	IdentSync:             "SYNC",
	IdentPresent:          "PRESENT",
	IdentLayoutTransition: "LAYOUT_TRANSITION",
	IdentRenderPass:       "RENDER_PASS",
	IdentReserved2:        "RESERVED2",
	IdentBindPipeline:     "BIND_PIPELINE",
	IdentReserved4:        "RESERVED4",
	IdentReserved5:        "RESERVED5",
	IdentReserved6:        "RESERVED6",
}

func (id Identifier) String() string {
	if int(id) < len(identNames) {
		return identNames[id]
	}
	return fmt.Sprintf("IDENT_%d", uint8(id))
}

// MarshalText encodes the identifier by name.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (id *Identifier) UnmarshalText(text []byte) error {
	for i, name := range identNames {
		if name == string(text) {
			*id = Identifier(i)
			return nil
		}
	}
	var n uint8
	if _, err := fmt.Sscanf(string(text), "IDENT_%d", &n); err != nil {
		return fmt.Errorf("unknown marker identifier %q", text)
	}
	*id = Identifier(n)
	return nil
}
