// Package packet describes the SQTT packet kinds: how a selector maps to a
// kind and bit length, the bit layout of each kind, and the columnar
// record sets the decoder fills.
package packet

import "fmt"

// Kind identifies an SQTT packet kind.
type Kind uint8

const (
	KindGenericInst Kind = iota
	KindValuInst
	KindLongTimestamp
	KindPacket21
	KindPacket31
	KindPacket41
	KindPacket51
	KindEventA
	KindEventB
	KindInitiator
	KindRegWrite
	KindWaveStart
	KindWaveAllocEnd
	KindImmediate
	KindImmediateOne
	KindShortTimestamp
	KindPacket6
	KindPacketE
	KindPacketF

	// NumKinds is the number of packet kinds that produce records.
	NumKinds

	// KindNone marks selectors with a known length but no record: the
	// filler nibble and the reserved 64 bit packet.
	KindNone Kind = 0xFF
)

var kindNames = [NumKinds]string{
	KindGenericInst:    "GENERIC_INST",
	KindValuInst:       "VALU_INST",
	KindLongTimestamp:  "LONG_TIMESTAMP",
	KindPacket21:       "PKT_0x21",
	KindPacket31:       "PKT_0x31",
	KindPacket41:       "PKT_0x41",
	KindPacket51:       "PKT_0x51",
	KindEventA:         "EVENT_A",
	KindEventB:         "EVENT_B",
	KindInitiator:      "INITIATOR",
	KindRegWrite:       "REG_WRITE",
	KindWaveStart:      "WAVE_START",
	KindWaveAllocEnd:   "WAVE_ALLOC_END",
	KindImmediate:      "IMMEDIATE",
	KindImmediateOne:   "IMMEDIATE_ONE",
	KindShortTimestamp: "SHORT_TIMESTAMP",
	KindPacket6:        "PKT_0x6",
	KindPacketE:        "PKT_0xE",
	KindPacketF:        "PKT_0xF",
}

func (k Kind) String() string {
	if k < NumKinds {
		return kindNames[k]
	}
	if k == KindNone {
		return "NONE"
	}
	return fmt.Sprintf("KIND(%d)", uint8(k))
}

// Kinds returns every record-producing kind in index order.
func Kinds() []Kind {
	ks := make([]Kind, NumKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}
