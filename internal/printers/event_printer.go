package printers

import (
	"fmt"
	"io"
	"strings"

	"sqtt/internal/marker"
	"sqtt/internal/sqtt"
)

// EventPrinter lists marker events.
type EventPrinter struct {
	ItemPrinter
	noTimePrint bool
}

// NewEventPrinter creates a new marker event printer.
func NewEventPrinter(writer io.Writer) *EventPrinter {
	return &EventPrinter{
		ItemPrinter: *NewItemPrinter(writer),
	}
}

// SetNoTimePrint drops timestamps from the output.
func (p *EventPrinter) SetNoTimePrint(noTime bool) { p.noTimePrint = noTime }

// PrintEvent prints one event of buffer index.
func (p *EventPrinter) PrintEvent(index sqtt.BufIndex, ev *marker.Event) {
	if p.IsMuted() {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Idx:%d; ", ev.Seq))
	if !p.IDPrintMuted() {
		sb.WriteString(fmt.Sprintf("Buf:%d; ", index))
	}
	if !p.noTimePrint {
		sb.WriteString(fmt.Sprintf("TS:%d; ", ev.Timestamp))
	}
	sb.WriteString(fmt.Sprintf("MARKER(%s", ev.ID))
	if ev.HasAPIType {
		sb.WriteString(fmt.Sprintf(" api=%#x", ev.APIType))
	}
	sb.WriteString(" words=[")
	for i, w := range ev.Words {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%08x", w))
	}
	sb.WriteString("])\n")
	p.ItemPrintLine(sb.String())
}

// PrintEvents prints every event of buffer index.
func (p *EventPrinter) PrintEvents(index sqtt.BufIndex, events []marker.Event) {
	for i := range events {
		p.PrintEvent(index, &events[i])
	}
}
