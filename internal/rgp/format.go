package rgp

import (
	"bytes"
	"fmt"
)

// Magic is the first word of every RGP file.
const Magic = 0x50303042

const (
	// HeaderSize is the encoded size of Header.
	HeaderSize = 56

	// EntryHeaderSize is the encoded size of EntryHeader.
	EntryHeaderSize = 16

	// sqttDataPrefix is the offset/size pair ahead of an SQTT data payload.
	sqttDataPrefix = 8
)

// Header is the fixed file header.
type Header struct {
	Magic             uint32
	VersionMajor      uint32
	VersionMinor      uint32
	Flags             uint32
	ChunkOffset       int32
	Second            int32
	Minute            int32
	Hour              int32
	DayInMonth        int32
	Month             int32
	Year              int32
	DayInWeek         int32
	DayInYear         int32
	IsDaylightSavings int32
}

// ChunkType identifies the contents of a chunk.
type ChunkType uint8

const (
	ChunkAsicInfo ChunkType = iota
	ChunkSqttDesc
	ChunkSqttData
	ChunkAPIInfo
	ChunkReserved
	ChunkQueueEventTimings
	ChunkClockCalibration
	ChunkCPUInfo
	ChunkSpmDB
	ChunkCodeObjectDatabase
	ChunkCodeObjectLoaderEvents
	ChunkPsoCorrelation
	ChunkInstrumentationTable
)

var chunkNames = [...]string{
	ChunkAsicInfo:               "ASIC_INFO",
	ChunkSqttDesc:               "SQTT_DESC",
	ChunkSqttData:               "SQTT_DATA",
	ChunkAPIInfo:                "API_INFO",
	ChunkReserved:               "RESERVED",
	ChunkQueueEventTimings:      "QUEUE_EVENT_TIMINGS",
	ChunkClockCalibration:       "CLOCK_CALIBRATION",
	ChunkCPUInfo:                "CPU_INFO",
	ChunkSpmDB:                  "SPM_DB",
	ChunkCodeObjectDatabase:     "CODE_OBJECT_DATABASE",
	ChunkCodeObjectLoaderEvents: "CODE_OBJECT_LOADER_EVENTS",
	ChunkPsoCorrelation:         "PSO_CORRELATION",
	ChunkInstrumentationTable:   "INSTRUMENTATION_TABLE",
}

func (t ChunkType) String() string {
	if int(t) < len(chunkNames) {
		return chunkNames[t]
	}
	return fmt.Sprintf("CHUNK_%d", uint8(t))
}

// ChunkID is the first word of an entry header.
type ChunkID struct {
	Type     ChunkType
	Index    uint8
	Reserved uint16
}

// EntryHeader precedes every chunk. Size includes the header.
type EntryHeader struct {
	ID           ChunkID
	VersionMajor uint16
	VersionMinor uint16
	Size         int32
	Reserved     int32
}

// AsicInfo describes the GPU the capture was taken on.
type AsicInfo struct {
	Flags                      uint64
	TraceShaderCoreClock       uint64
	TraceMemoryClock           uint64
	DeviceID                   int32
	DeviceRevisionID           int32
	VgprsPerSimd               int32
	SgprsPerSimd               int32
	ShaderEngines              int32
	ComputeUnitPerShaderEngine int32
	SimdPerComputeUnit         int32
	WavefrontsPerSimd          int32
	MinimumVgprAlloc           int32
	VgprAllocGranularity       int32
	MinimumSgprAlloc           int32
	SgprAllocGranularity       int32
	HardwareContexts           int32
	GpuType                    int32
	GfxipLevel                 int32
	GpuIndex                   int32
	GdsSize                    int32
	GdsPerShaderEngine         int32
	CeRAMSize                  int32
	CeRAMSizeGraphics          int32
	CeRAMSizeCompute           int32
	MaxNumberOfDedicatedCus    int32
	VramSize                   int64
	VramBusWidth               int32
	L2CacheSize                int32
	L1CacheSize                int32
	LdsSize                    int32
	GpuNameRaw                 [256]byte
	AluPerClock                float32
	TexturePerClock            float32
	PrimsPerClock              float32
	PixelsPerClock             float32
	GpuTimestampFrequency      uint64
	MaxShaderCoreClock         uint64
	MaxMemoryClock             uint64
	MemoryOpsPerClock          uint32
	MemoryChipType             uint32
	LdsGranularity             uint32
	CuMask                     [64]uint16
	Reserved1                  [128]byte
	Padding                    [4]byte
}

// AsicInfoSize is the encoded size of AsicInfo.
const AsicInfoSize = 704

// GPUName returns the NUL terminated device name.
func (a *AsicInfo) GPUName() string {
	name := a.GpuNameRaw[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// SqttDesc describes the shader engine an SQTT data chunk was captured
// on. SQTT data chunks and descriptors pair up by chunk index.
type SqttDesc struct {
	ShaderEngineIndex   int32
	Version             int32
	InstrumentationSpec int16
	InstrumentationAPI  int16
	ComputeUnitIndex    int32
}

// SqttDescSize is the encoded size of SqttDesc.
const SqttDescSize = 16
