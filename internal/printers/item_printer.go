package printers

import (
	"fmt"
	"io"

	"sqtt/common"
)

// ItemPrinter is the line sink shared by the printers.
type ItemPrinter struct {
	writer      io.Writer
	log         common.Logger
	muted       bool
	idPrintMute bool
}

// NewItemPrinter constructs an ItemPrinter using the given io.Writer.
func NewItemPrinter(writer io.Writer) *ItemPrinter {
	return &ItemPrinter{
		writer: writer,
	}
}

// SetMessageLogger sets an optional logger that echoes every printed line
// at debug level.
func (p *ItemPrinter) SetMessageLogger(logger common.Logger) {
	p.log = logger
}

// ItemPrintLine writes the given message to the writer and optionally logs it.
func (p *ItemPrinter) ItemPrintLine(msg string) {
	if p.writer != nil {
		fmt.Fprint(p.writer, msg)
	}
	if p.log != nil {
		p.log.Log(common.SeverityDebug, msg)
	}
}

// SetMute sets the printer to mute (avoids output).
func (p *ItemPrinter) SetMute(mute bool) { p.muted = mute }

// IsMuted returns true if the printer is muted.
func (p *ItemPrinter) IsMuted() bool { return p.muted }

// MuteIDPrint mutes or unmutes printing the buffer index in the output lines.
func (p *ItemPrinter) MuteIDPrint(mute bool) { p.idPrintMute = mute }

// IDPrintMuted returns whether buffer index printing is muted.
func (p *ItemPrinter) IDPrintMuted() bool { return p.idPrintMute }
