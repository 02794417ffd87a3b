package packet_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sqtt/internal/bitstream"
	"sqtt/internal/packet"
	"sqtt/tests/helpers"
)

// randomFields fills every field of k with a random value of its width.
func randomFields(rng *rand.Rand, k packet.Kind) helpers.Fields {
	f := helpers.Fields{}
	for _, fld := range packet.LayoutOf(k) {
		f[fld.Tag] = rng.Uint64() & (1<<fld.Width() - 1)
	}
	return f
}

func TestExtractRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, k := range packet.Kinds() {
		for _, junk := range []bool{false, true} {
			for i := 0; i < 20; i++ {
				want := randomFields(rng, k)
				b := &helpers.StreamBuilder{Junk: junk}
				b.AddRaw(rng.Uint64(), uint(i%8)) // misalign the packet start
				b.Add(k, want)
				data := b.Bytes(16)

				r := bitstream.NewReader(data)
				if err := r.Consume(uint(i % 8)); err != nil {
					t.Fatal(err)
				}
				row, ok := packet.Extract(packet.LayoutOf(k), &r)
				if !ok {
					t.Fatalf("%v: extraction failed", k)
				}

				got := helpers.Fields{}
				for _, tag := range packet.LayoutOf(k).Stored() {
					got[tag] = row.Field(k, tag)
				}
				if _, ok := want[packet.FieldDelta]; ok {
					got[packet.FieldDelta] = row.Delta
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("%v junk=%v (-want +got):\n%s", k, junk, diff)
				}
			}
		}
	}
}

func TestExtractTruncated(t *testing.T) {
	b := &helpers.StreamBuilder{}
	b.Add(packet.KindRegWrite, helpers.Fields{packet.FieldReg: 0xC342, packet.FieldValue: 0xDEADBEEF})
	data := b.Bytes(0)

	for cut := 1; cut < len(data); cut++ {
		r := bitstream.NewReader(data[:cut])
		if _, ok := packet.Extract(packet.LayoutOf(packet.KindRegWrite), &r); ok {
			t.Errorf("extraction of a %d byte prefix should fail", cut)
		}
	}
	r := bitstream.NewReader(data)
	row, ok := packet.Extract(packet.LayoutOf(packet.KindRegWrite), &r)
	if !ok || row.Field(packet.KindRegWrite, packet.FieldValue) != 0xDEADBEEF {
		t.Errorf("full packet: %+v, %v", row, ok)
	}
}

func TestRecordsColumns(t *testing.T) {
	recs := packet.NewRecords(packet.KindRegWrite)
	row := packet.Row{N: 6}
	// a0, a1, b0, is_write, reg, val
	row.Values = [packet.MaxFields]uint64{1, 2, 1, 1, 0xC343, 0x1234}
	recs.Append(5, 99, row)

	if recs.Len() != 1 || recs.Seq[0] != 5 || recs.Timestamp[0] != 99 {
		t.Fatalf("unexpected record set %+v", recs)
	}
	w := packet.RegWrites{Records: &recs}
	if w.Reg(0) != 0xC343 || w.Value(0) != 0x1234 || !w.IsWrite(0) {
		t.Errorf("typed view: reg=%#x val=%#x write=%v", w.Reg(0), w.Value(0), w.IsWrite(0))
	}
	if recs.Column(packet.FieldThreads) != nil {
		t.Error("register writes have no threads column")
	}
	if recs.Get(0, packet.FieldWaveID) != 0 {
		t.Error("missing field should read as 0")
	}
}
