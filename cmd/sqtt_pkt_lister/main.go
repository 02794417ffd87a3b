package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"sqtt/common"
	"sqtt/internal/lister"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "SQTT Packet Lister : Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("sqtt_pkt_lister", pflag.ContinueOnError)
	configPath := flags.String("config", "", "YAML file with lister settings; flags override it")
	capturePath := flags.String("capture", "", "path to the RGP capture (lz4, zstd or snappy compressed files are accepted)")
	decode := flags.Bool("decode", false, "list every decoded packet")
	events := flags.Bool("events", true, "list reassembled marker events")
	format := flags.String("format", lister.FormatText, "output format: text, json or cbor")
	workers := flags.Int("workers", 0, "buffers decoded in parallel (0 = GOMAXPROCS)")
	maxPackets := flags.Uint32("max_packets", 0, "stop each buffer after this many packets (0 = no limit)")
	noTime := flags.Bool("no_time_print", false, "do not print timestamps")
	stats := flags.Bool("stats", false, "print packet counts per kind")
	rawDump := flags.Int("raw_dump", 0, "hex dump this many leading bytes of each buffer")
	buffer := flags.Int("buffer", -1, "only list this buffer index (-1 = all)")
	logLevel := flags.String("log-level", "warning", "log level: debug, info, warning or error")
	logJSON := flags.Bool("log-json", false, "write logs as JSON lines instead of console text")

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg := lister.NewConfig()
	if *configPath != "" {
		loaded, err := lister.LoadConfigFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// flags given on the command line win over the file
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "capture":
			cfg.CapturePath = *capturePath
		case "decode":
			cfg.Decode = *decode
		case "events":
			cfg.Events = *events
		case "format":
			cfg.Format = *format
		case "workers":
			cfg.Workers = *workers
		case "max_packets":
			cfg.MaxPackets = *maxPackets
		case "no_time_print":
			cfg.NoTimePrint = *noTime
		case "stats":
			cfg.Stats = *stats
		case "raw_dump":
			cfg.RawDump = *rawDump
		case "buffer":
			cfg.Buffer = *buffer
		}
	})
	if cfg.CapturePath == "" && flags.NArg() > 0 {
		cfg.CapturePath = flags.Arg(0)
	}
	if cfg.CapturePath == "" {
		return fmt.Errorf("missing capture file; pass --capture or a positional path")
	}

	sev, err := common.ParseSeverity(*logLevel)
	if err != nil {
		return err
	}
	if *logJSON {
		cfg.Logger = common.NewZeroLogger(os.Stderr, sev)
	} else {
		cfg.Logger = common.NewConsoleLogger(os.Stderr, sev, false)
	}
	cfg.OutputWriter = os.Stdout

	return lister.Run(*cfg)
}
