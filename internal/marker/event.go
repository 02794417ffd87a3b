package marker

// Event is a reassembled marker. Seq and Timestamp come from the register
// write that completed the payload. Start and End are left zero for the
// consumer to fill from its own timing source.
type Event struct {
	ID         Identifier `json:"id" cbor:"1,keyasint"`
	APIType    uint32     `json:"api_type" cbor:"2,keyasint"`
	HasAPIType bool       `json:"has_api_type" cbor:"3,keyasint"`
	Words      []uint32   `json:"words" cbor:"4,keyasint"`
	Seq        uint32     `json:"seq" cbor:"5,keyasint"`
	Timestamp  uint64     `json:"timestamp" cbor:"6,keyasint"`
	Start      uint64     `json:"start" cbor:"7,keyasint"`
	End        uint64     `json:"end" cbor:"8,keyasint"`
}

func newEvent(u *Userdata, seq uint32, ts uint64) Event {
	api, ok := u.APIType()
	return Event{
		ID:         u.ID(),
		APIType:    api,
		HasAPIType: ok,
		Words:      u.Words(),
		Seq:        seq,
		Timestamp:  ts,
	}
}
