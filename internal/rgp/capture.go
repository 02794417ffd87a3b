// Package rgp walks the chunks of a Radeon GPU Profiler capture file and
// exposes its ASIC description and raw SQTT data payloads.
package rgp

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"sqtt/internal/common"
	"sqtt/internal/sqtt"
)

// Entry is one chunk of the file.
type Entry struct {
	Header EntryHeader
	Offset int
}

// Type returns the chunk type.
func (e Entry) Type() ChunkType { return e.Header.ID.Type }

// SqttData is the payload of one SQTT data chunk.
type SqttData struct {
	Index  uint8
	Offset int
	Desc   *SqttDesc
	Data   []byte
}

// Capture is a parsed capture file. Data slices alias the input buffer.
type Capture struct {
	Header  Header
	Asic    *AsicInfo
	Entries []Entry
	Sqtt    []SqttData
}

func containerErr(format string, args ...interface{}) error {
	return common.NewErrorMsg(sqtt.ErrSevError, sqtt.ErrBadContainer, fmt.Sprintf(format, args...))
}

func readAt(data []byte, off int, v interface{}) error {
	n := binary.Size(v)
	if off < 0 || off+n > len(data) {
		return containerErr("%T at offset %d runs past end of file (%d bytes)", v, off, len(data))
	}
	return binary.Read(bytes.NewReader(data[off:off+n]), binary.LittleEndian, v)
}

// Parse walks data and returns the capture it holds. A file without an
// ASIC info chunk is rejected with ErrNoAsicInfo.
func Parse(data []byte) (*Capture, error) {
	c := &Capture{}
	if err := readAt(data, 0, &c.Header); err != nil {
		return nil, err
	}
	if c.Header.Magic != Magic {
		return nil, containerErr("bad magic %#08x", c.Header.Magic)
	}

	descs := map[uint8]*SqttDesc{}
	off := int(c.Header.ChunkOffset)
	if off < HeaderSize {
		return nil, containerErr("chunk offset %d inside file header", off)
	}
	for off < len(data) {
		var e Entry
		e.Offset = off
		if err := readAt(data, off, &e.Header); err != nil {
			return nil, err
		}
		size := int(e.Header.Size)
		if size < EntryHeaderSize {
			return nil, containerErr("corrupt chunk at offset %d (size %d too small)", off, size)
		}
		if off+size > len(data) {
			return nil, containerErr("%v chunk at offset %d overruns file", e.Type(), off)
		}
		body := off + EntryHeaderSize

		switch e.Type() {
		case ChunkAsicInfo:
			asic := &AsicInfo{}
			if err := readAt(data[:off+size], body, asic); err != nil {
				return nil, err
			}
			c.Asic = asic
		case ChunkSqttDesc:
			desc := &SqttDesc{}
			if err := readAt(data[:off+size], body, desc); err != nil {
				return nil, err
			}
			descs[e.Header.ID.Index] = desc
		case ChunkSqttData:
			d, err := sqttPayload(data, e)
			if err != nil {
				return nil, err
			}
			c.Sqtt = append(c.Sqtt, d)
		}
		c.Entries = append(c.Entries, e)
		off += size
	}

	if c.Asic == nil {
		return nil, common.NewErrorMsg(sqtt.ErrSevError, sqtt.ErrNoAsicInfo, "no asic info found")
	}
	for i := range c.Sqtt {
		c.Sqtt[i].Desc = descs[c.Sqtt[i].Index]
	}
	return c, nil
}

// sqttPayload returns the trace bytes of an SQTT data chunk. The embedded
// size wins when it fits inside the chunk.
func sqttPayload(data []byte, e Entry) (SqttData, error) {
	end := e.Offset + int(e.Header.Size)
	start := e.Offset + EntryHeaderSize + sqttDataPrefix
	if start > end {
		return SqttData{}, containerErr("SQTT data chunk at offset %d too small", e.Offset)
	}
	var prefix struct {
		Offset int32
		Size   int32
	}
	if err := readAt(data, e.Offset+EntryHeaderSize, &prefix); err != nil {
		return SqttData{}, err
	}
	if n := int(prefix.Size); n >= 0 && start+n <= end {
		end = start + n
	}
	return SqttData{Index: e.Header.ID.Index, Offset: start, Data: data[start:end]}, nil
}

// Chunks returns the SQTT data payloads in file order.
func (c *Capture) Chunks() [][]byte {
	out := make([][]byte, len(c.Sqtt))
	for i, d := range c.Sqtt {
		out[i] = d.Data
	}
	return out
}
