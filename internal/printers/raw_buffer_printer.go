package printers

import (
	"fmt"
	"io"
	"strings"

	"sqtt/internal/sqtt"
)

// RawBufferPrinter dumps the leading bytes of trace buffers.
type RawBufferPrinter struct {
	ItemPrinter
	limit int
}

// NewRawBufferPrinter creates a printer dumping at most limit bytes per
// buffer. A limit of 0 dumps whole buffers.
func NewRawBufferPrinter(writer io.Writer, limit int) *RawBufferPrinter {
	return &RawBufferPrinter{
		ItemPrinter: *NewItemPrinter(writer),
		limit:       limit,
	}
}

// PrintBuffer writes a hex dump of data, 16 bytes per line.
func (p *RawBufferPrinter) PrintBuffer(index sqtt.BufIndex, data []byte) {
	if p.IsMuted() {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Buffer Data; Index%7d; Size%9d; ", index, len(data)))

	if p.limit > 0 && len(data) > p.limit {
		data = data[:p.limit]
	}
	for i, b := range data {
		if i > 0 && i%16 == 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%02x ", b))
	}
	sb.WriteString("\n")
	p.ItemPrintLine(sb.String())
}
