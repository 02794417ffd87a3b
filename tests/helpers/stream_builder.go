// Package helpers synthesizes SQTT packet streams for tests.
package helpers

import (
	"fmt"

	"sqtt/internal/packet"
)

// Fields gives the value of each field of a packet. Missing fields are 0.
type Fields map[packet.FieldTag]uint64

type header struct {
	bits   uint64
	width  uint
	length uint
}

// headers fixes the selector bits that identify each kind.
var headers = map[packet.Kind]header{
	packet.KindGenericInst:    {0x2, 3, 20},
	packet.KindValuInst:       {0x3, 3, 12},
	packet.KindLongTimestamp:  {0x01, 7, 64},
	packet.KindPacket21:       {0x21, 7, 64},
	packet.KindPacket31:       {0x31, 7, 64},
	packet.KindPacket41:       {0x41, 7, 96},
	packet.KindPacket51:       {0x51, 7, 24},
	packet.KindEventA:         {0x61, 8, 24},
	packet.KindEventB:         {0xE1, 8, 32},
	packet.KindInitiator:      {0x71, 7, 64},
	packet.KindRegWrite:       {0x9, 4, 64},
	packet.KindWaveStart:      {0xC, 4, 32},
	packet.KindWaveAllocEnd:   {0x5, 4, 20},
	packet.KindImmediate:      {0x4, 4, 24},
	packet.KindImmediateOne:   {0xD, 4, 12},
	packet.KindShortTimestamp: {0x8, 4, 8},
	packet.KindPacket6:        {0x06, 5, 52},
	packet.KindPacketE:        {0xE, 4, 8},
	packet.KindPacketF:        {0xF, 4, 8},
}

// Built records one packet written by a StreamBuilder.
type Built struct {
	Kind   packet.Kind
	Fields Fields
	Bit    uint64
	Length uint
}

// StreamBuilder appends packets to a little-endian bit stream.
type StreamBuilder struct {
	// Junk sets every bit that is neither a selector bit nor a field bit,
	// so tests prove extractors ignore them.
	Junk bool

	data    []byte
	nbits   uint64
	Packets []Built
}

// HeaderLength returns the packet length used for kind k.
func HeaderLength(k packet.Kind) uint {
	return headers[k].length
}

func (b *StreamBuilder) setBits(pos uint64, v uint64, width uint) {
	for i := uint(0); i < width; i++ {
		p := pos + uint64(i)
		for uint64(len(b.data))*8 <= p {
			b.data = append(b.data, 0)
		}
		if (v>>i)&1 != 0 {
			b.data[p/8] |= 1 << (p % 8)
		} else {
			b.data[p/8] &^= 1 << (p % 8)
		}
	}
}

// AddRaw appends width bits of v.
func (b *StreamBuilder) AddRaw(v uint64, width uint) {
	b.setBits(b.nbits, v, width)
	b.nbits += uint64(width)
}

// Add appends one packet of kind k.
func (b *StreamBuilder) Add(k packet.Kind, f Fields) {
	h, ok := headers[k]
	if !ok {
		panic(fmt.Sprintf("helpers: no header for %v", k))
	}
	b.add(k, h, f)
}

// AddPacket6 appends a Packet6 in its 28 bit (short) or 52 bit form.
func (b *StreamBuilder) AddPacket6(short bool, dt uint64) {
	h := headers[packet.KindPacket6]
	if short {
		h.bits |= 0x10
		h.length = 28
	}
	b.add(packet.KindPacket6, h, Fields{packet.FieldDelta: dt})
}

func (b *StreamBuilder) add(k packet.Kind, h header, f Fields) {
	start := b.nbits
	var used [96]bool
	for i := uint(0); i < h.width; i++ {
		used[i] = true
	}
	b.setBits(start, h.bits, h.width)
	for _, fld := range packet.LayoutOf(k) {
		v := f[fld.Tag]
		if v>>fld.Width() != 0 {
			panic(fmt.Sprintf("helpers: %v %v value %#x overflows %d bits", k, fld.Tag, v, fld.Width()))
		}
		b.setBits(start+uint64(fld.Lo), v, fld.Width())
		for i := fld.Lo; i <= fld.Hi; i++ {
			used[i] = true
		}
	}
	for i := uint(0); i < h.length; i++ {
		if !used[i] {
			var v uint64
			if b.Junk {
				v = 1
			}
			b.setBits(start+uint64(i), v, 1)
		}
	}
	b.nbits += uint64(h.length)
	b.Packets = append(b.Packets, Built{Kind: k, Fields: f, Bit: start, Length: h.length})
}

// AddFiller appends a 4 bit zero nibble packet.
func (b *StreamBuilder) AddFiller() {
	b.AddRaw(0, 4)
	b.Packets = append(b.Packets, Built{Kind: packet.KindNone, Bit: b.nbits - 4, Length: 4})
}

// AddReserved64 appends the 64 bit packet that has a length but no record.
func (b *StreamBuilder) AddReserved64(payload uint64) {
	b.AddRaw(0x11|payload<<8, 64)
	b.Packets = append(b.Packets, Built{Kind: packet.KindNone, Bit: b.nbits - 64, Length: 64})
}

// BitLen returns the number of bits written.
func (b *StreamBuilder) BitLen() uint64 {
	return b.nbits
}

// Bytes returns the stream followed by padZero zero bytes. A trailing
// partial byte is zero filled.
func (b *StreamBuilder) Bytes(padZero int) []byte {
	out := make([]byte, (b.nbits+7)/8, (b.nbits+7)/8+uint64(padZero))
	copy(out, b.data)
	return append(out, make([]byte, padZero)...)
}
