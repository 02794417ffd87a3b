// Package pipeline decodes every SQTT data chunk of a capture in parallel
// and rebuilds the markers carried by each.
package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"sqtt/common"
	"sqtt/internal/decoder"
	"sqtt/internal/marker"
	"sqtt/internal/rgp"
	"sqtt/internal/sqtt"
)

// Config controls a Pipeline.
type Config struct {
	Logger common.Logger

	// Workers bounds the number of chunks decoded at once. 0 uses
	// GOMAXPROCS.
	Workers int

	Decoder *decoder.Config
	Marker  *marker.Config

	// SkipMarkers disables marker reassembly.
	SkipMarkers bool
}

// NewConfig creates a default configuration
func NewConfig() *Config {
	return &Config{
		Decoder: decoder.NewConfig(),
		Marker:  marker.NewConfig(),
	}
}

// ChunkResult is the outcome for one SQTT data chunk.
type ChunkResult struct {
	Index        sqtt.BufIndex
	ShaderEngine int32
	Size         int
	Digest       [32]byte

	// Data aliases the capture buffer.
	Data []byte

	Chunk  *decoder.Chunk
	Events []marker.Event
	Err    error
}

// Result holds every chunk of a capture in file order.
type Result struct {
	Asic   *rgp.AsicInfo
	Chunks []ChunkResult
}

// Err joins the errors of all failed chunks.
func (r *Result) Err() error {
	var errs []error
	for _, c := range r.Chunks {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return errors.Join(errs...)
}

// Pipeline fans chunk decoding out over a bounded set of goroutines.
type Pipeline struct {
	cfg     Config
	log     common.Logger
	decoder *decoder.Decoder
}

// New creates a pipeline. cfg may be nil.
func New(cfg *Config) *Pipeline {
	if cfg == nil {
		cfg = NewConfig()
	}
	p := &Pipeline{cfg: *cfg, log: common.OrNoOp(cfg.Logger)}
	if p.cfg.Workers <= 0 {
		p.cfg.Workers = runtime.GOMAXPROCS(0)
	}
	dcfg := decoder.NewConfig()
	if cfg.Decoder != nil {
		*dcfg = *cfg.Decoder
	}
	if dcfg.Logger == nil {
		dcfg.Logger = cfg.Logger
	}
	p.decoder = decoder.New(dcfg)
	return p
}

// Run parses a capture file and decodes all of its SQTT data chunks.
func (p *Pipeline) Run(data []byte) (*Result, error) {
	c, err := rgp.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse capture: %w", err)
	}
	p.log.Logf(common.SeverityInfo, "capture from %q: %d chunks, %d SQTT buffers",
		c.Asic.GPUName(), len(c.Entries), len(c.Sqtt))
	res := p.Process(c.Sqtt)
	res.Asic = c.Asic
	return res, nil
}

// Process decodes chunks. A failing chunk does not stop the others; its
// error is kept in its ChunkResult.
func (p *Pipeline) Process(chunks []rgp.SqttData) *Result {
	start := time.Now()
	res := &Result{Chunks: make([]ChunkResult, len(chunks))}

	sem := make(chan struct{}, p.cfg.Workers)
	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			res.Chunks[i] = p.processChunk(sqtt.BufIndex(i), chunks[i])
		}(i)
	}
	wg.Wait()

	if zl, ok := p.log.(*common.ZeroLogger); ok {
		zl.Elapsed(fmt.Sprintf("decoded %d buffers", len(chunks)), start)
	}
	return res
}

func (p *Pipeline) chunkLogger(index sqtt.BufIndex) common.Logger {
	if zl, ok := p.log.(*common.ZeroLogger); ok {
		return zl.With("buffer", int(index))
	}
	return p.log
}

func (p *Pipeline) processChunk(index sqtt.BufIndex, d rgp.SqttData) ChunkResult {
	cr := ChunkResult{
		Index:        index,
		ShaderEngine: -1,
		Size:         len(d.Data),
		Data:         d.Data,
		Digest:       blake3.Sum256(d.Data),
	}
	if d.Desc != nil {
		cr.ShaderEngine = d.Desc.ShaderEngineIndex
	}

	chunk, err := p.decoder.Decode(index, d.Data)
	cr.Chunk = chunk
	cr.Err = err
	if zl, ok := p.log.(*common.ZeroLogger); ok && chunk != nil {
		zl.Zerolog().Debug().
			Int("buffer", int(index)).
			Int32("shader_engine", cr.ShaderEngine).
			Hex("blake3", cr.Digest[:8]).
			Uint32("packets", chunk.Packets).
			Int("records", chunk.RecordCount()).
			Bool("truncated", chunk.Truncated).
			Msg("buffer decoded")
	}
	if p.cfg.SkipMarkers || chunk == nil {
		return cr
	}

	mcfg := marker.NewConfig()
	if p.cfg.Marker != nil {
		*mcfg = *p.cfg.Marker
	}
	if mcfg.Logger == nil {
		mcfg.Logger = p.chunkLogger(index)
	}
	events, merr := marker.NewReassembler(mcfg).Run(chunk.RegWrites(), chunk.Initiators())
	cr.Events = events
	if merr != nil {
		cr.Err = errors.Join(cr.Err, fmt.Errorf("buffer %d markers: %w", index, merr))
	}
	return cr
}
