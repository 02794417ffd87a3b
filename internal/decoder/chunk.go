package decoder

import (
	"sqtt/internal/merge"
	"sqtt/internal/packet"
	"sqtt/internal/sqtt"
)

// State is the state of the decode loop.
type State int

const (
	StateScanning State = iota
	StateEnded
	StateCorrupt
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "SCANNING"
	case StateEnded:
		return "ENDED"
	case StateCorrupt:
		return "CORRUPT"
	}
	return "UNKNOWN"
}

// Chunk holds every record decoded from one trace buffer. It is not
// modified after Decode returns and may be read concurrently.
type Chunk struct {
	Index   sqtt.BufIndex
	Records [packet.NumKinds]packet.Records

	// Packets counts every packet parsed, including those that produce no
	// record. It is the next sequence number that would have been issued.
	Packets uint32

	// Timestamp is the running timestamp after the last parsed packet.
	Timestamp uint64

	// BitPos is where decoding stopped.
	BitPos uint64

	State     State
	Truncated bool
}

func newChunk(index sqtt.BufIndex) *Chunk {
	c := &Chunk{Index: index}
	for _, k := range packet.Kinds() {
		c.Records[k] = packet.NewRecords(k)
	}
	return c
}

// Kind returns the record set of kind k.
func (c *Chunk) Kind(k packet.Kind) *packet.Records {
	return &c.Records[k]
}

// RegWrites returns the register write records.
func (c *Chunk) RegWrites() packet.RegWrites {
	return packet.RegWrites{Records: &c.Records[packet.KindRegWrite]}
}

// Initiators returns the initiator records.
func (c *Chunk) Initiators() packet.Initiators {
	return packet.Initiators{Records: &c.Records[packet.KindInitiator]}
}

// RecordCount returns the number of records over all kinds.
func (c *Chunk) RecordCount() int {
	n := 0
	for i := range c.Records {
		n += c.Records[i].Len()
	}
	return n
}

// Merged returns a cursor over the records of every kind in decode order.
func (c *Chunk) Merged() *merge.Cursor[packet.Kind] {
	streams := make([]merge.Stream[packet.Kind], 0, packet.NumKinds)
	for _, k := range packet.Kinds() {
		if c.Records[k].Len() > 0 {
			streams = append(streams, merge.Stream[packet.Kind]{Tag: k, Seq: c.Records[k].Seq})
		}
	}
	return merge.New(streams...)
}
