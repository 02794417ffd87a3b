package packet

import (
	"testing"
)

func TestTableLengths(t *testing.T) {
	tests := []struct {
		sel    uint8
		length uint
		kind   Kind
	}{
		{0x02, 20, KindGenericInst},
		{0xFA, 20, KindGenericInst},
		{0x03, 12, KindValuInst},
		{0x5B, 12, KindValuInst},
		{0x00, 4, KindNone},
		{0xF0, 4, KindNone},
		{0x01, 64, KindLongTimestamp},
		{0x81, 64, KindLongTimestamp},
		{0x11, 64, KindNone},
		{0x21, 64, KindPacket21},
		{0x31, 64, KindPacket31},
		{0xB1, 64, KindPacket31},
		{0x41, 96, KindPacket41},
		{0x51, 24, KindPacket51},
		{0x61, 24, KindEventA},
		{0xE1, 32, KindEventB},
		{0x71, 64, KindInitiator},
		{0xF1, 64, KindInitiator},
		{0x04, 24, KindImmediate},
		{0x05, 20, KindWaveAllocEnd},
		{0x06, 52, KindPacket6},
		{0x16, 28, KindPacket6},
		{0x26, 52, KindPacket6},
		{0x08, 8, KindShortTimestamp},
		{0x09, 64, KindRegWrite},
		{0x0C, 32, KindWaveStart},
		{0x0D, 12, KindImmediateOne},
		{0x0E, 8, KindPacketE},
		{0x0F, 8, KindPacketF},
	}

	table := NewTable()
	for _, tt := range tests {
		e := table.Lookup(tt.sel)
		if e.Kind != tt.kind || uint(e.Length) != tt.length {
			t.Errorf("selector %#02x: got %v/%d, want %v/%d", tt.sel, e.Kind, e.Length, tt.kind, tt.length)
		}
		n, ok := table.Length(tt.sel)
		if !ok || n != tt.length {
			t.Errorf("Length(%#02x) = %d, %v", tt.sel, n, ok)
		}
	}
}

func TestTableUnknownSelectors(t *testing.T) {
	table := NewTable()
	for sel := 0; sel < 256; sel++ {
		_, ok := table.Length(uint8(sel))
		want := sel%16 != 7
		if ok != want {
			t.Errorf("selector %#02x: known=%v, want %v", sel, ok, want)
		}
	}
}

func TestDefaultTableMatchesClassify(t *testing.T) {
	for sel := 0; sel < 256; sel++ {
		if DefaultTable().Lookup(uint8(sel)) != classify(uint8(sel)) {
			t.Fatalf("selector %#02x differs from the decision tree", sel)
		}
	}
}

// Every field of every kind must lie inside the shortest packet the kind
// can have, after its selector bits, with no overlap.
func TestLayoutsFitPackets(t *testing.T) {
	minLen := map[Kind]uint{}
	table := NewTable()
	for sel := 0; sel < 256; sel++ {
		e := table.Lookup(uint8(sel))
		if !e.Valid() || e.Kind == KindNone {
			continue
		}
		if l, ok := minLen[e.Kind]; !ok || uint(e.Length) < l {
			minLen[e.Kind] = uint(e.Length)
		}
	}

	for _, k := range Kinds() {
		layout := LayoutOf(k)
		if len(layout) == 0 {
			t.Errorf("%v has no layout", k)
			continue
		}
		if len(layout.Stored()) > MaxFields {
			t.Errorf("%v stores %d fields", k, len(layout.Stored()))
		}
		l, ok := minLen[k]
		if !ok {
			t.Errorf("%v is not reachable from any selector", k)
			continue
		}
		deltas := 0
		prevHi := -1
		for _, f := range layout {
			if f.Lo > f.Hi {
				t.Errorf("%v %v: inverted range", k, f.Tag)
			}
			if int(f.Lo) <= prevHi {
				t.Errorf("%v %v overlaps the previous field", k, f.Tag)
			}
			if uint(f.Hi) >= l {
				t.Errorf("%v %v ends at bit %d of a %d bit packet", k, f.Tag, f.Hi, l)
			}
			if f.Tag == FieldDelta {
				deltas++
			}
			prevHi = int(f.Hi)
		}
		if deltas > 1 {
			t.Errorf("%v has %d delta fields", k, deltas)
		}
	}
}

func TestKindStrings(t *testing.T) {
	seen := map[string]bool{}
	for _, k := range Kinds() {
		s := k.String()
		if s == "" || seen[s] {
			t.Errorf("kind %d has name %q", k, s)
		}
		seen[s] = true
	}
	if KindNone.String() != "NONE" || Kind(200).String() != "KIND(200)" {
		t.Error("unexpected names for non-record kinds")
	}
}
