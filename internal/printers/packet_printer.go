package printers

import (
	"fmt"
	"io"
	"strings"

	"sqtt/internal/decoder"
	"sqtt/internal/packet"
)

// PktPrinter lists the packets of decoded chunks in decode order.
type PktPrinter struct {
	ItemPrinter
	noTimePrint  bool
	collectStats bool
	packetCounts [packet.NumKinds]int
}

// NewPktPrinter creates a new packet printer.
func NewPktPrinter(writer io.Writer) *PktPrinter {
	return &PktPrinter{
		ItemPrinter: *NewItemPrinter(writer),
	}
}

// SetNoTimePrint drops timestamps from the output.
func (p *PktPrinter) SetNoTimePrint(noTime bool) { p.noTimePrint = noTime }

// SetCollectStats turns on statistics collections.
func (p *PktPrinter) SetCollectStats() { p.collectStats = true }

// PrintChunk lists every record of c.
func (p *PktPrinter) PrintChunk(c *decoder.Chunk) {
	for it := range c.Merged().All() {
		p.PrintRecord(c, it.Tag, it.Row)
	}
}

// PrintRecord prints row of kind k.
func (p *PktPrinter) PrintRecord(c *decoder.Chunk, k packet.Kind, row int) {
	if p.collectStats {
		p.packetCounts[k]++
	}
	if p.IsMuted() {
		return
	}

	recs := c.Kind(k)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Idx:%d; ", recs.Seq[row]))
	if !p.IDPrintMuted() {
		sb.WriteString(fmt.Sprintf("Buf:%d; ", c.Index))
	}
	if !p.noTimePrint {
		sb.WriteString(fmt.Sprintf("TS:%d; ", recs.Timestamp[row]))
	}
	sb.WriteString(k.String())
	sb.WriteString("(")
	for i, tag := range packet.LayoutOf(k).Stored() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%s=%#x", tag, recs.Get(row, tag)))
	}
	sb.WriteString(")\n")
	p.ItemPrintLine(sb.String())
}

// PrintSummary prints the terminal state of c.
func (p *PktPrinter) PrintSummary(c *decoder.Chunk) {
	if p.IsMuted() {
		return
	}
	trunc := ""
	if c.Truncated {
		trunc = " (truncated)"
	}
	p.ItemPrintLine(fmt.Sprintf("Buffer %d: %s%s; %d packets; %d records; final TS %d; stopped at bit %d\n",
		c.Index, c.State, trunc, c.Packets, c.RecordCount(), c.Timestamp, c.BitPos))
}

// PrintStats outputs the number of packets printed per kind.
func (p *PktPrinter) PrintStats() {
	var sb strings.Builder

	sb.WriteString("SQTT Packets processed:-\n")
	for _, k := range packet.Kinds() {
		sb.WriteString(fmt.Sprintf("%s : %d\n", k, p.packetCounts[k]))
	}
	sb.WriteString("\n\n")

	p.ItemPrintLine(sb.String())
}
