package printers

import (
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/fxamacker/cbor/v2"

	"sqtt/internal/marker"
	"sqtt/internal/packet"
	"sqtt/internal/pipeline"
)

// BufferReport summarizes one decoded trace buffer.
type BufferReport struct {
	Index        int            `json:"index" cbor:"1,keyasint"`
	ShaderEngine int32          `json:"shader_engine" cbor:"2,keyasint"`
	Size         int            `json:"size" cbor:"3,keyasint"`
	Digest       string         `json:"blake3" cbor:"4,keyasint"`
	State        string         `json:"state" cbor:"5,keyasint"`
	Truncated    bool           `json:"truncated,omitempty" cbor:"6,keyasint,omitempty"`
	Packets      uint32         `json:"packets" cbor:"7,keyasint"`
	Timestamp    uint64         `json:"timestamp" cbor:"8,keyasint"`
	Kinds        map[string]int `json:"kinds,omitempty" cbor:"9,keyasint,omitempty"`
	Events       []marker.Event `json:"events" cbor:"10,keyasint"`
	Error        string         `json:"error,omitempty" cbor:"11,keyasint,omitempty"`
}

// Report is the machine readable form of a pipeline result.
type Report struct {
	GPU     string         `json:"gpu" cbor:"1,keyasint"`
	Buffers []BufferReport `json:"buffers" cbor:"2,keyasint"`
}

// NewReport builds a report from res.
func NewReport(res *pipeline.Result) *Report {
	r := &Report{Buffers: make([]BufferReport, 0, len(res.Chunks))}
	if res.Asic != nil {
		r.GPU = res.Asic.GPUName()
	}
	for _, cr := range res.Chunks {
		br := BufferReport{
			Index:        int(cr.Index),
			ShaderEngine: cr.ShaderEngine,
			Size:         cr.Size,
			Digest:       hex.EncodeToString(cr.Digest[:]),
			Events:       cr.Events,
		}
		if br.Events == nil {
			br.Events = []marker.Event{}
		}
		if cr.Chunk != nil {
			br.State = cr.Chunk.State.String()
			br.Truncated = cr.Chunk.Truncated
			br.Packets = cr.Chunk.Packets
			br.Timestamp = cr.Chunk.Timestamp
			br.Kinds = map[string]int{}
			for _, k := range packet.Kinds() {
				if n := cr.Chunk.Kind(k).Len(); n > 0 {
					br.Kinds[k.String()] = n
				}
			}
		}
		if cr.Err != nil {
			br.Error = cr.Err.Error()
		}
		r.Buffers = append(r.Buffers, br)
	}
	return r
}

var cborEncMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.TextMarshaler = cbor.TextMarshalerTextString
	var err error
	cborEncMode, err = opts.EncMode()
	if err != nil {
		panic("printers: CBOR encoder initialization failed: " + err.Error())
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCBOR writes r with core deterministic CBOR encoding.
func WriteCBOR(w io.Writer, r *Report) error {
	return cborEncMode.NewEncoder(w).Encode(r)
}
