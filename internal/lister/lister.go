// Package lister drives the capture pipeline and prints its results.
package lister

import (
	"fmt"
	"io"
	"os"

	"sqtt/common"
	"sqtt/internal/capture"
	"sqtt/internal/decoder"
	"sqtt/internal/marker"
	"sqtt/internal/pipeline"
	"sqtt/internal/printers"
)

// Run loads the capture named by cfg, decodes it and writes the listing.
// Per-buffer decode errors are printed and also returned once everything
// was listed.
func Run(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	w := cfg.OutputWriter
	if w == nil {
		w = os.Stdout
	}
	log := common.OrNoOp(cfg.Logger)

	text := cfg.Format == FormatText
	if text {
		fmt.Fprintln(w, "SQTT Packet Lister: SQTT decode library testing")
		fmt.Fprintln(w, "-----------------------------------------------")
		fmt.Fprintf(w, "SQTT Packet Lister : reading capture from path %s\n", cfg.CapturePath)
	}

	f, err := capture.Load(cfg.CapturePath)
	if err != nil {
		return fmt.Errorf("failed to read capture: %w", err)
	}
	if f.Compression != capture.CompressionNone {
		log.Logf(common.SeverityInfo, "%s: %v compressed, %d bytes unpacked", f.Path, f.Compression, len(f.Data))
	}

	res, err := pipeline.New(pipelineConfig(&cfg, log)).Run(f.Data)
	if err != nil {
		return fmt.Errorf("error processing capture: %w", err)
	}

	switch cfg.Format {
	case FormatJSON:
		if err := printers.WriteJSON(w, printers.NewReport(res)); err != nil {
			return err
		}
	case FormatCBOR:
		if err := printers.WriteCBOR(w, printers.NewReport(res)); err != nil {
			return err
		}
	default:
		printText(w, &cfg, f, res)
	}
	return res.Err()
}

func pipelineConfig(cfg *Config, log common.Logger) *pipeline.Config {
	pcfg := pipeline.NewConfig()
	pcfg.Logger = log
	pcfg.Workers = cfg.Workers
	pcfg.Decoder = &decoder.Config{Logger: log, MaxPackets: cfg.MaxPackets}
	pcfg.Marker = &marker.Config{Registers: cfg.Marker.Registers, MarkerCode: cfg.Marker.Code}
	pcfg.SkipMarkers = !cfg.Events
	return pcfg
}

func printText(w io.Writer, cfg *Config, f *capture.File, res *pipeline.Result) {
	fmt.Fprintf(w, "Capture GPU: %s; compression %v; %d SQTT buffers\n\n", res.Asic.GPUName(), f.Compression, len(res.Chunks))

	raw := printers.NewRawBufferPrinter(w, cfg.RawDump)
	pkts := printers.NewPktPrinter(w)
	pkts.SetNoTimePrint(cfg.NoTimePrint)
	if cfg.Stats {
		pkts.SetCollectStats()
	}
	events := printers.NewEventPrinter(w)
	events.SetNoTimePrint(cfg.NoTimePrint)

	for _, cr := range res.Chunks {
		if cfg.Buffer >= 0 && int(cr.Index) != cfg.Buffer {
			continue
		}
		fmt.Fprintf(w, "Buffer %d: SE %d; %d bytes; blake3 %x\n", cr.Index, cr.ShaderEngine, cr.Size, cr.Digest[:8])
		if cfg.RawDump > 0 {
			raw.PrintBuffer(cr.Index, cr.Data)
		}
		if cfg.Decode && cr.Chunk != nil {
			pkts.PrintChunk(cr.Chunk)
		}
		if cfg.Events {
			events.PrintEvents(cr.Index, cr.Events)
		}
		if cr.Chunk != nil {
			pkts.PrintSummary(cr.Chunk)
		}
		if cr.Err != nil {
			fmt.Fprintf(w, "ERROR: %v\n", cr.Err)
		}
		fmt.Fprintln(w)
	}
	if cfg.Stats {
		pkts.PrintStats()
	}
}
