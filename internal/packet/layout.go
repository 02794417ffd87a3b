package packet

// FieldTag names a bit field of a packet.
type FieldTag uint8

const (
	// FieldDelta bits are a timestamp delta. They are summed into the
	// running timestamp and not stored.
	FieldDelta FieldTag = iota
	FieldType
	FieldValue
	FieldTick
	FieldB0
	FieldA0
	FieldA1
	FieldA2
	FieldA3
	FieldSelector
	FieldStage
	FieldInitiatorType
	FieldIsWrite
	FieldReg
	FieldThreads
	FieldIsEnd
	FieldInsn
	FieldWaveMask
	FieldWaveID

	numFieldTags
)

var fieldNames = [numFieldTags]string{
	FieldDelta:         "dt",
	FieldType:          "type",
	FieldValue:         "val",
	FieldTick:          "tick",
	FieldB0:            "b0",
	FieldA0:            "a0",
	FieldA1:            "a1",
	FieldA2:            "a2",
	FieldA3:            "a3",
	FieldSelector:      "sel",
	FieldStage:         "stage",
	FieldInitiatorType: "init_type",
	FieldIsWrite:       "is_write",
	FieldReg:           "reg",
	FieldThreads:       "threads",
	FieldIsEnd:         "is_end",
	FieldInsn:          "insn",
	FieldWaveMask:      "wave_mask",
	FieldWaveID:        "wave_id",
}

func (f FieldTag) String() string {
	if f < numFieldTags {
		return fieldNames[f]
	}
	return "?"
}

// Field is an inclusive bit range [Lo, Hi] within a packet.
type Field struct {
	Lo, Hi uint8
	Tag    FieldTag
}

// Width returns the field width in bits.
func (f Field) Width() uint {
	return uint(f.Hi-f.Lo) + 1
}

// MaxFields bounds the number of fields in any layout.
const MaxFields = 8

// Layout is the ordered, non-overlapping field list of one kind, low bits
// first.
type Layout []Field

var layouts = [NumKinds]Layout{
	KindGenericInst: {{4, 6, FieldDelta}, {7, 7, FieldB0}, {8, 12, FieldA0}, {13, 19, FieldInsn}},
	KindValuInst:    {{3, 5, FieldDelta}, {6, 6, FieldB0}, {7, 11, FieldA0}},
	KindLongTimestamp: {
		{14, 15, FieldType}, {16, 63, FieldValue},
	},
	KindPacket21: {{8, 10, FieldDelta}},
	KindPacket31: {{7, 8, FieldDelta}},
	KindPacket41: {{7, 9, FieldDelta}},
	KindPacket51: {{7, 15, FieldDelta}},
	KindEventA: {
		{8, 10, FieldDelta}, {11, 11, FieldB0}, {12, 13, FieldSelector},
		{14, 17, FieldStage}, {18, 23, FieldA0},
	},
	KindEventB: {
		{8, 10, FieldDelta}, {11, 11, FieldB0}, {12, 13, FieldSelector},
		{14, 17, FieldStage}, {18, 19, FieldA0}, {20, 31, FieldA1},
	},
	KindInitiator: {
		{7, 9, FieldDelta}, {14, 15, FieldA0}, {16, 17, FieldA1},
		{18, 19, FieldInitiatorType}, {20, 52, FieldValue},
	},
	KindRegWrite: {
		{4, 6, FieldDelta}, {7, 8, FieldA0}, {9, 10, FieldA1}, {11, 11, FieldB0},
		{15, 15, FieldIsWrite}, {16, 31, FieldReg}, {32, 63, FieldValue},
	},
	KindWaveStart: {
		{4, 6, FieldDelta}, {7, 7, FieldA0}, {8, 9, FieldA1}, {10, 12, FieldA2},
		{13, 17, FieldA3}, {18, 21, FieldStage}, {25, 31, FieldThreads},
	},
	KindWaveAllocEnd: {
		{4, 4, FieldIsEnd}, {5, 7, FieldDelta}, {8, 8, FieldA0}, {9, 10, FieldA1},
		{11, 13, FieldA2}, {15, 19, FieldA3},
	},
	KindImmediate:      {{5, 7, FieldDelta}, {8, 23, FieldWaveMask}},
	KindImmediateOne:   {{4, 6, FieldDelta}, {7, 11, FieldWaveID}},
	KindShortTimestamp: {{4, 7, FieldTick}},
	KindPacket6:        {{5, 7, FieldDelta}},
	KindPacketE:        {{4, 5, FieldDelta}},
	KindPacketF:        {{4, 5, FieldDelta}},
}

// LayoutOf returns the field layout of k. The returned slice must not be
// modified.
func LayoutOf(k Kind) Layout {
	if k >= NumKinds {
		return nil
	}
	return layouts[k]
}

// Stored returns the fields of the layout that are kept as columns, in
// column order.
func (l Layout) Stored() []FieldTag {
	var tags []FieldTag
	for _, f := range l {
		if f.Tag != FieldDelta {
			tags = append(tags, f.Tag)
		}
	}
	return tags
}

// columnIndex[k][tag] is the column of tag in kind k's record set, or -1.
var columnIndex [NumKinds][numFieldTags]int8

func init() {
	for k := range columnIndex {
		for t := range columnIndex[k] {
			columnIndex[k][t] = -1
		}
		for i, tag := range layouts[k].Stored() {
			columnIndex[k][tag] = int8(i)
		}
	}
}
