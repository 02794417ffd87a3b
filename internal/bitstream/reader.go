// Package bitstream provides a sliding 64-bit window over a byte buffer
// for reading packets that are not byte aligned.
package bitstream

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Lookahead is the number of bits past the current position that Peek
	// may address.
	Lookahead = 60

	windowBytes = 8

	// Below this many remaining bytes a full refill advance could run past
	// the end of the buffer: 12 bytes of packet, 1 byte of leftover bits
	// and the 8 byte load, with margin.
	slowPathBytes = 29
)

// ErrOverrun is returned by Consume when the advance passes the end of
// the buffer.
var ErrOverrun = errors.New("bitstream: consume past end of buffer")

// Reader is a bit cursor over an immutable buffer. The zero value is an
// empty reader. Readers are values: copying one saves the position.
//
// After every refill fewer than 8 bits of the window are consumed unless
// the window is pinned to the last 8 bytes of the buffer. Peek reaches
// past the window with a direct load, so Lookahead bits stay available at
// any bit position while the buffer holds them.
type Reader struct {
	buf      []byte // input starting at the window base
	window   uint64
	consumed uint // bits consumed past the window base
	limit    uint // valid bits in the window
	base     uint64
}

// NewReader returns a reader positioned at bit 0 of buf.
func NewReader(buf []byte) Reader {
	r := Reader{buf: buf}
	if len(buf) < windowBytes {
		var pad [windowBytes]byte
		copy(pad[:], buf)
		r.window = binary.LittleEndian.Uint64(pad[:])
		r.limit = uint(len(buf)) * 8
		return r
	}
	r.window = binary.LittleEndian.Uint64(buf)
	r.limit = windowBytes * 8
	return r
}

// Peek returns width bits starting lsb bits past the current position
// without consuming them. ok is false when the bits lie past the end of
// the buffer. lsb+width must not exceed Lookahead.
func (r *Reader) Peek(lsb, width uint) (v uint64, ok bool) {
	if width == 0 || lsb+width > Lookahead {
		panic(fmt.Sprintf("bitstream: peek of %d bits at %d exceeds lookahead", width, lsb))
	}
	if r.consumed <= r.limit && lsb+width <= r.limit-r.consumed {
		return (r.window >> (lsb + r.consumed)) & (1<<width - 1), true
	}
	// the window starts at a byte boundary, so up to 7 of its bits may
	// already be consumed
	bit := uint64(r.consumed) + uint64(lsb)
	if bit+uint64(width) > uint64(len(r.buf))*8 {
		return 0, false
	}
	return r.load(bit, width), true
}

// load reads width bits at bit offset bit of buf, which must hold them.
func (r *Reader) load(bit uint64, width uint) uint64 {
	off, shift := bit/8, uint(bit%8)
	var w [windowBytes + 1]byte
	copy(w[:], r.buf[off:])
	v := binary.LittleEndian.Uint64(w[:windowBytes]) >> shift
	if shift > 0 {
		v |= uint64(w[windowBytes]) << (64 - shift)
	}
	return v & (1<<width - 1)
}

// Consume advances the position by n bits and refills the window.
func (r *Reader) Consume(n uint) error {
	if uint64(n)+uint64(r.consumed) > uint64(len(r.buf))*8 {
		return ErrOverrun
	}
	r.consumed += n
	r.refill()
	return nil
}

// BitPos returns the absolute bit position in the buffer.
func (r *Reader) BitPos() uint64 {
	return r.base + uint64(r.consumed)
}

// Remaining returns the number of unconsumed bits.
func (r *Reader) Remaining() uint64 {
	return uint64(len(r.buf))*8 - uint64(r.consumed)
}

func (r *Reader) refill() {
	if len(r.buf) < windowBytes {
		// short buffer: the padded window never moves
		return
	}
	advance := r.consumed / 8
	if len(r.buf) < slowPathBytes || uint(len(r.buf))-advance < windowBytes {
		advance = min(advance, uint(len(r.buf))-windowBytes)
	}
	r.buf = r.buf[advance:]
	r.base += uint64(advance) * 8
	r.consumed -= advance * 8
	r.window = binary.LittleEndian.Uint64(r.buf)
}
