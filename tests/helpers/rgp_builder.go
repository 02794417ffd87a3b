package helpers

import (
	"bytes"
	"encoding/binary"

	"sqtt/internal/rgp"
)

// RGPBuilder writes minimal capture files.
type RGPBuilder struct {
	buf bytes.Buffer
}

// NewRGPBuilder starts a file whose chunks follow the header directly.
func NewRGPBuilder() *RGPBuilder {
	b := &RGPBuilder{}
	b.write(rgp.Header{Magic: rgp.Magic, VersionMajor: 1, VersionMinor: 5, ChunkOffset: rgp.HeaderSize, Year: 2024})
	return b
}

func (b *RGPBuilder) write(v interface{}) {
	if err := binary.Write(&b.buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}

func (b *RGPBuilder) entry(t rgp.ChunkType, index uint8, bodySize int) {
	b.write(rgp.EntryHeader{
		ID:   rgp.ChunkID{Type: t, Index: index},
		Size: int32(rgp.EntryHeaderSize + bodySize),
	})
}

// AddAsicInfo appends an ASIC info chunk naming the GPU.
func (b *RGPBuilder) AddAsicInfo(name string, shaderEngines int32) *RGPBuilder {
	a := rgp.AsicInfo{ShaderEngines: shaderEngines, GpuTimestampFrequency: 100_000_000}
	copy(a.GpuNameRaw[:], name)
	b.entry(rgp.ChunkAsicInfo, 0, rgp.AsicInfoSize)
	b.write(a)
	return b
}

// AddSqttDesc appends the descriptor for SQTT chunk index.
func (b *RGPBuilder) AddSqttDesc(index uint8, shaderEngine int32) *RGPBuilder {
	b.entry(rgp.ChunkSqttDesc, index, rgp.SqttDescSize)
	b.write(rgp.SqttDesc{ShaderEngineIndex: shaderEngine, Version: 3})
	return b
}

// AddSqttData appends an SQTT data chunk holding trace.
func (b *RGPBuilder) AddSqttData(index uint8, trace []byte) *RGPBuilder {
	b.entry(rgp.ChunkSqttData, index, 8+len(trace))
	off := int32(b.buf.Len() + 8)
	b.write([2]int32{off, int32(len(trace))})
	b.buf.Write(trace)
	return b
}

// AddRaw appends a chunk of type t with an opaque body.
func (b *RGPBuilder) AddRaw(t rgp.ChunkType, body []byte) *RGPBuilder {
	b.entry(t, 0, len(body))
	b.buf.Write(body)
	return b
}

// Bytes returns the file contents.
func (b *RGPBuilder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}
