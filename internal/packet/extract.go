package packet

import (
	"sqtt/internal/bitstream"
)

// Row holds the values extracted from one packet before it is committed
// to a record set. Values are in column order.
type Row struct {
	Delta  uint64
	Values [MaxFields]uint64
	N      int
}

// Extract reads every field of layout from r, which must be positioned at
// the first bit of the packet. r is advanced only as far as needed to keep
// each field within the reader lookahead. It returns false if the buffer
// ends inside the packet; no partial row is meaningful in that case.
func Extract(layout Layout, r *bitstream.Reader) (row Row, ok bool) {
	var lastConsume uint
	for _, f := range layout {
		lo, hi := uint(f.Lo), uint(f.Hi)
		if hi+1-lastConsume > bitstream.Lookahead {
			if r.Consume(lo-lastConsume) != nil {
				return Row{}, false
			}
			lastConsume = lo
		}
		v, ok := r.Peek(lo-lastConsume, f.Width())
		if !ok {
			return Row{}, false
		}
		if f.Tag == FieldDelta {
			row.Delta += v
			continue
		}
		row.Values[row.N] = v
		row.N++
	}
	return row, true
}

// Field returns the value of tag in a row extracted for kind k, or 0 if
// k has no stored field tag.
func (row *Row) Field(k Kind, tag FieldTag) uint64 {
	if k >= NumKinds || tag >= numFieldTags {
		return 0
	}
	idx := columnIndex[k][tag]
	if idx < 0 || int(idx) >= row.N {
		return 0
	}
	return row.Values[idx]
}
