// Package decoder turns one SQTT trace buffer into columnar packet
// records.
package decoder

import (
	"fmt"

	"sqtt/common"
	"sqtt/internal/bitstream"
	icommon "sqtt/internal/common"
	"sqtt/internal/packet"
	"sqtt/internal/sqtt"
)

const shortTimestampBias = 4

// Decoder decodes trace buffers. It holds no per-buffer state and may be
// used from several goroutines at once.
type Decoder struct {
	log        common.Logger
	table      *packet.Table
	maxPackets uint32
}

// New creates a decoder. cfg may be nil.
func New(cfg *Config) *Decoder {
	if cfg == nil {
		cfg = NewConfig()
	}
	d := &Decoder{
		log:        common.OrNoOp(cfg.Logger),
		table:      cfg.Table,
		maxPackets: cfg.MaxPackets,
	}
	if d.table == nil {
		d.table = packet.DefaultTable()
	}
	return d
}

// Decode parses buf until the end of the stream. A buffer that ends inside
// a packet is reported through the logger and returns the records parsed
// so far with a nil error. An unknown selector returns the partial chunk
// together with an ErrUnknownSelector *common.Error.
func (d *Decoder) Decode(index sqtt.BufIndex, buf []byte) (*Chunk, error) {
	c := newChunk(index)
	r := bitstream.NewReader(buf)

	var (
		seq uint32
		ts  uint64
		err error
	)

	c.State = StateScanning
	for c.State == StateScanning {
		if d.maxPackets != 0 && seq >= d.maxPackets {
			c.State = StateEnded
			break
		}

		sel, ok := r.Peek(0, 8)
		if !ok {
			nibble, ok := r.Peek(0, 4)
			if !ok || nibble == 0 {
				// end of stream, possibly with a final padding nibble
				c.State = StateEnded
				break
			}
			err = d.corrupt(index, r.BitPos(), nibble)
			c.State = StateCorrupt
			break
		}

		entry := d.table.Lookup(uint8(sel))
		if !entry.Valid() {
			err = d.corrupt(index, r.BitPos(), sel)
			c.State = StateCorrupt
			break
		}

		pkt := r
		if r.Consume(uint(entry.Length)) != nil {
			d.truncated(c, pkt.BitPos())
			break
		}

		if entry.Kind != packet.KindNone {
			row, ok := packet.Extract(packet.LayoutOf(entry.Kind), &pkt)
			if !ok {
				d.truncated(c, pkt.BitPos())
				break
			}
			ts += row.Delta
			c.Records[entry.Kind].Append(seq, ts, row)
			ts = adjustTimestamp(entry.Kind, &row, ts)
		}
		seq++
	}

	c.Packets = seq
	c.Timestamp = ts
	c.BitPos = r.BitPos()
	d.log.Logf(common.SeverityDebug, "buffer %d: %s after %d packets, %d records, timestamp %d",
		index, c.State, c.Packets, c.RecordCount(), c.Timestamp)
	return c, err
}

// adjustTimestamp applies the kind specific timestamp rules that follow a
// successful parse.
func adjustTimestamp(k packet.Kind, row *packet.Row, ts uint64) uint64 {
	switch k {
	case packet.KindLongTimestamp:
		if row.Field(k, packet.FieldType) == 1 {
			ts += row.Field(k, packet.FieldValue)
		}
	case packet.KindShortTimestamp:
		ts += row.Field(k, packet.FieldTick) + shortTimestampBias
	}
	return ts
}

func (d *Decoder) truncated(c *Chunk, bit uint64) {
	c.State = StateEnded
	c.Truncated = true
	d.log.Log(common.SeverityWarning, icommon.NewErrorWithBufPosMsg(sqtt.ErrSevWarn, sqtt.ErrTruncated,
		c.Index, sqtt.BitPos(bit), "Unexpected EOF during parsing, truncated capture?").Error())
}

func (d *Decoder) corrupt(index sqtt.BufIndex, bit uint64, sel uint64) error {
	e := icommon.NewErrorWithBufPosMsg(sqtt.ErrSevError, sqtt.ErrUnknownSelector, index, sqtt.BitPos(bit),
		fmt.Sprintf("unknown packet selector %d in buffer %d", sel, index))
	d.log.Error(e)
	return e
}
