// Package marker rebuilds application markers from the userdata register
// writes of a decoded trace buffer.
package marker

import (
	"fmt"
	"slices"

	"sqtt/common"
	"sqtt/internal/merge"
	"sqtt/internal/packet"
)

const (
	markerCodeMask = 1<<20 - 1

	// maxWords is one more than the largest declarable length.
	maxWords = lenMask + 1
)

// Reassembler accumulates userdata words into marker events. It is not
// safe for concurrent use.
type Reassembler struct {
	log        common.Logger
	registers  []uint16
	markerCode uint32
	acc        []uint32
	events     []Event
}

// NewReassembler creates a reassembler. cfg may be nil.
func NewReassembler(cfg *Config) *Reassembler {
	def := NewConfig()
	if cfg == nil {
		cfg = def
	}
	r := &Reassembler{
		log:        common.OrNoOp(cfg.Logger),
		registers:  cfg.Registers,
		markerCode: cfg.MarkerCode,
	}
	if len(r.registers) == 0 {
		r.registers = def.Registers
	}
	if r.markerCode == 0 {
		r.markerCode = def.MarkerCode
	}
	return r
}

// Run walks register writes and initiators in sequence order and returns
// the events completed on the way. Events already returned by earlier
// calls are not repeated.
func (r *Reassembler) Run(writes packet.RegWrites, inits packet.Initiators) ([]Event, error) {
	var streams []merge.Stream[packet.Kind]
	if inits.Records != nil {
		streams = append(streams, merge.Stream[packet.Kind]{Tag: packet.KindInitiator, Seq: inits.Seq})
	}
	if writes.Records != nil {
		streams = append(streams, merge.Stream[packet.Kind]{Tag: packet.KindRegWrite, Seq: writes.Seq})
	}

	start := len(r.events)
	for it := range merge.New(streams...).All() {
		switch it.Tag {
		case packet.KindRegWrite:
			err := r.PushRegWrite(writes.Reg(it.Row), writes.Value(it.Row),
				writes.Seq[it.Row], writes.Timestamp[it.Row])
			if err != nil {
				return r.events[start:], err
			}
		case packet.KindInitiator:
			r.PushInitiator(inits.Type(it.Row), inits.Value(it.Row))
		}
	}
	return r.events[start:], nil
}

// PushRegWrite feeds one register write. Writes to registers other than
// the userdata registers are ignored.
func (r *Reassembler) PushRegWrite(reg uint16, value uint32, seq uint32, ts uint64) error {
	if !slices.Contains(r.registers, reg) {
		return nil
	}
	r.acc = append(r.acc, value)
	if DeclaredLen(r.acc[0]) == len(r.acc) {
		u, err := NewUserdata(r.acc)
		r.acc = nil
		if err != nil {
			return err
		}
		r.events = append(r.events, newEvent(u, seq, ts))
		return nil
	}
	if len(r.acc) >= maxWords {
		r.log.Logf(common.SeverityWarning, "userdata exceeds %d words without completing, dropping %d words", maxWords-1, len(r.acc))
		r.acc = nil
	}
	return nil
}

// PushInitiator feeds one initiator. A marker initiator seen while a
// payload is still incomplete drops the partial payload.
func (r *Reassembler) PushInitiator(typ uint8, value uint64) {
	if typ != 0 || uint32(value&markerCodeMask) != r.markerCode {
		return
	}
	if len(r.acc) != 0 {
		r.log.Warning(fmt.Sprintf("encountered initiator but userdata packet is incomplete, dropping %d words", len(r.acc)))
		r.acc = nil
	}
}

// Pending returns the number of words accumulated towards the next event.
func (r *Reassembler) Pending() int {
	return len(r.acc)
}

// Events returns every event completed so far.
func (r *Reassembler) Events() []Event {
	return r.events
}
