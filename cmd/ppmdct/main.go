package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kpfaulkner/blockdct/core"
	"github.com/kpfaulkner/blockdct/imageformats"
	"github.com/kpfaulkner/blockdct/options"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

type config struct {
	infile      string
	outfile     string
	blockNumber int
	quality     int
	toStdout    bool
	bigEndian   bool
	verbose     bool
	profileMode string
}

func parseArgs(args []string) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("ppmdct", flag.ContinueOnError)
	fs.StringVar(&cfg.infile, "i", "", "input P6 ppm file (optionally zstd compressed)")
	fs.StringVar(&cfg.outfile, "o", "", "output text file")
	fs.IntVar(&cfg.blockNumber, "b", 0, "block number, clamped to the valid range")
	fs.IntVar(&cfg.quality, "q", options.DEFAULT_QUALITY, "quality 1-100, 50 uses the reference tables")
	fs.BoolVar(&cfg.toStdout, "stdout", false, "also print the matrices to stdout")
	fs.BoolVar(&cfg.bigEndian, "bigendian", false, "two byte samples are big endian instead of native order")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.StringVar(&cfg.profileMode, "profile", "", "write a cpu or mem profile to the current directory")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// also accept: ppmdct <input> <block> <output>
	if fs.NArg() == 3 {
		block, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return nil, fmt.Errorf("block number %q: %w", fs.Arg(1), err)
		}
		cfg.infile = fs.Arg(0)
		cfg.blockNumber = block
		cfg.outfile = fs.Arg(2)
	} else if fs.NArg() != 0 {
		return nil, fmt.Errorf("expected 0 or 3 positional arguments, got %d", fs.NArg())
	}

	if cfg.infile == "" || cfg.outfile == "" {
		return nil, fmt.Errorf("both input and output files must be specified")
	}
	if cfg.profileMode != "" && cfg.profileMode != "cpu" && cfg.profileMode != "mem" {
		return nil, fmt.Errorf("unknown profile mode %q", cfg.profileMode)
	}
	return cfg, nil
}

// run decodes the input and encodes the requested block, returning the text
// to write.
func run(cfg *config) ([]byte, error) {
	decoderOpts := []core.PPMDecoderOption{core.WithInputFilename(cfg.infile), core.ReadFileIntoMemory()}
	if cfg.bigEndian {
		decoderOpts = append(decoderOpts, core.WithByteOrder(binary.BigEndian))
	}
	decoder, err := core.NewPPMDecoder(decoderOpts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := decoder.Decode()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", cfg.infile, err)
	}
	log.Debugf("decoding took %d ms", time.Since(start).Milliseconds())

	encoder, err := core.NewBlockEncoder(img, core.WithQuality(cfg.quality))
	if err != nil {
		return nil, err
	}
	encoded, err := encoder.Encode(cfg.blockNumber)
	if err != nil {
		return nil, err
	}
	log.Debugf("encoded block %d at row %d col %d", encoded.Index, encoded.Row, encoded.Col)

	var buf bytes.Buffer
	if err := imageformats.WriteCoefficients(&buf, encoded.Channels()...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\nusage: ppmdct -i input.ppm -b block -o output.txt\n       ppmdct input.ppm block output.txt\n", err)
		os.Exit(1)
	}

	if cfg.verbose {
		log.SetLevel(log.DebugLevel)
	}

	switch cfg.profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	out, err := run(cfg)
	if err != nil {
		log.Fatalf("ppmdct: %v", err)
	}

	if err := os.WriteFile(cfg.outfile, out, 0666); err != nil {
		log.Fatalf("error writing %s: %v", cfg.outfile, err)
	}
	if cfg.toStdout {
		os.Stdout.Write(out)
	}
}
