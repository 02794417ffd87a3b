package packet

// Entry is the decoded meaning of one selector byte. A zero Length means
// the selector is unknown and the stream is corrupt.
type Entry struct {
	Kind   Kind
	Length uint8
}

// Valid reports whether the selector is a known packet.
func (e Entry) Valid() bool {
	return e.Length != 0
}

// classify is the single selector decision tree. selector is the low 8
// bits of a packet.
func classify(selector uint8) Entry {
	switch selector % 8 {
	case 2:
		return Entry{KindGenericInst, 20}
	case 3:
		return Entry{KindValuInst, 12}
	}

	switch selector % 16 {
	case 0:
		return Entry{KindNone, 4}
	case 1:
		switch (selector / 16) % 8 {
		case 0:
			return Entry{KindLongTimestamp, 64}
		case 1:
			return Entry{KindNone, 64}
		case 2:
			return Entry{KindPacket21, 64}
		case 3:
			return Entry{KindPacket31, 64}
		case 4:
			return Entry{KindPacket41, 96}
		case 5:
			return Entry{KindPacket51, 24}
		case 6:
			switch selector / 16 {
			case 6:
				return Entry{KindEventA, 24}
			case 14:
				return Entry{KindEventB, 32}
			}
			return Entry{}
		case 7:
			return Entry{KindInitiator, 64}
		}
		return Entry{}
	case 4:
		return Entry{KindImmediate, 24}
	case 5:
		return Entry{KindWaveAllocEnd, 20}
	case 6:
		switch selector % 32 {
		case 6:
			return Entry{KindPacket6, 52}
		case 22:
			return Entry{KindPacket6, 28}
		}
		return Entry{}
	case 8:
		return Entry{KindShortTimestamp, 8}
	case 9:
		return Entry{KindRegWrite, 64}
	case 12:
		return Entry{KindWaveStart, 32}
	case 13:
		return Entry{KindImmediateOne, 12}
	case 14:
		return Entry{KindPacketE, 8}
	case 15:
		return Entry{KindPacketF, 8}
	}
	return Entry{}
}

// Table maps every selector byte to its Entry. A Table is immutable once
// built and may be shared between goroutines.
type Table struct {
	entries [256]Entry
}

// NewTable precomputes all 256 selector entries.
func NewTable() *Table {
	t := &Table{}
	for sel := 0; sel < 256; sel++ {
		t.entries[sel] = classify(uint8(sel))
	}
	return t
}

var defaultTable = NewTable()

// DefaultTable returns the process-wide shared table.
func DefaultTable() *Table {
	return defaultTable
}

// Lookup returns the entry for selector.
func (t *Table) Lookup(selector uint8) Entry {
	return t.entries[selector]
}

// Length returns the packet length in bits for selector, or false when the
// selector is unknown.
func (t *Table) Length(selector uint8) (uint, bool) {
	e := t.entries[selector]
	return uint(e.Length), e.Valid()
}
