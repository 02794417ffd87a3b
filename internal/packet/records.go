package packet

// Records is the columnar record set of one packet kind. All columns have
// the same length; rows are appended in decode order so Seq is strictly
// increasing.
type Records struct {
	Kind      Kind
	Seq       []uint32
	Timestamp []uint64
	cols      [][]uint64
}

// NewRecords returns an empty record set for kind k.
func NewRecords(k Kind) Records {
	return Records{
		Kind: k,
		cols: make([][]uint64, len(LayoutOf(k).Stored())),
	}
}

// Len returns the number of rows.
func (r *Records) Len() int {
	return len(r.Seq)
}

// Append commits one extracted row.
func (r *Records) Append(seq uint32, timestamp uint64, row Row) {
	r.Seq = append(r.Seq, seq)
	r.Timestamp = append(r.Timestamp, timestamp)
	for i := 0; i < row.N && i < len(r.cols); i++ {
		r.cols[i] = append(r.cols[i], row.Values[i])
	}
}

// Column returns the stored column for tag, or nil if the kind has no such
// field. The slice must not be modified.
func (r *Records) Column(tag FieldTag) []uint64 {
	if r.Kind >= NumKinds || tag >= numFieldTags {
		return nil
	}
	idx := columnIndex[r.Kind][tag]
	if idx < 0 || int(idx) >= len(r.cols) {
		return nil
	}
	return r.cols[idx]
}

// Get returns field tag of row i, or 0 if the kind has no such field.
func (r *Records) Get(i int, tag FieldTag) uint64 {
	col := r.Column(tag)
	if col == nil {
		return 0
	}
	return col[i]
}

// RegWrites is a typed view over register write records.
type RegWrites struct {
	*Records
}

// Reg returns the register dword address written by row i.
func (w RegWrites) Reg(i int) uint16 { return uint16(w.Get(i, FieldReg)) }

// Value returns the 32 bit value written by row i.
func (w RegWrites) Value(i int) uint32 { return uint32(w.Get(i, FieldValue)) }

// IsWrite reports the write flag of row i.
func (w RegWrites) IsWrite(i int) bool { return w.Get(i, FieldIsWrite) != 0 }

// Initiators is a typed view over initiator records.
type Initiators struct {
	*Records
}

// Type returns the initiator type of row i.
func (n Initiators) Type(i int) uint8 { return uint8(n.Get(i, FieldInitiatorType)) }

// Value returns the 33 bit initiator payload of row i.
func (n Initiators) Value(i int) uint64 { return n.Get(i, FieldValue) }
