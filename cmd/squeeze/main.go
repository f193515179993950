// Command squeeze compresses or decompresses a single file with one of the
// squeeze codecs.
//
// Usage:
//
//     squeeze [-d] [-a 1|2|3|huffman|lzw|arithmetic] [-o out] [-fixed] [-config file.yaml] [-v] file
//
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chronos-tachyon/squeeze"
)

var (
	dashd      bool
	dashv      bool
	dashfixed  bool
	dasha      string
	dasho      string
	dashconfig string
)

func init() {
	flag.BoolVar(&dashd, "d", false, "decompress instead of compress")
	flag.BoolVar(&dashv, "v", false, "log progress events to stderr")
	flag.BoolVar(&dashfixed, "fixed", false, "use fixed 12-bit LZW codes")
	flag.StringVar(&dasha, "a", "", "algorithm: 1=huffman, 2=lzw, 3=arithmetic (default huffman)")
	flag.StringVar(&dasho, "o", "", "output file (default: derived from the input name)")
	flag.StringVar(&dashconfig, "config", "", "YAML or JSON configuration file")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := args[0]

	cfg := DefaultConfig()
	if dashconfig != "" {
		var err error
		cfg, err = LoadConfig(dashconfig)
		if err != nil {
			exitf("%s\n", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.Algorithm = dasha
		case "fixed":
			cfg.FixedCodeWidth = dashfixed
		case "v":
			cfg.Verbose = dashv
		}
	})

	alg, err := squeeze.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		exitf("%s\n", err)
	}

	opts := []squeeze.Option{squeeze.WithFixedCodeWidth(cfg.FixedCodeWidth)}
	if cfg.Verbose {
		logger := log.New(os.Stderr, "[squeeze] ", log.LstdFlags)
		opts = append(opts, squeeze.WithListener(squeeze.NewLogListener(logger)))
	}
	codec, err := squeeze.New(alg, opts...)
	if err != nil {
		exitf("%s\n", err)
	}

	if !dashd {
		output := dasho
		if output == "" {
			output = compressedName(input, alg)
		}
		if err := squeeze.CompressFile(codec, input, output); err != nil {
			exitf("compressing %s: %s\n", input, err)
		}
		return
	}

	if _, err := decompress(codec, alg, input, dasho); err != nil {
		exitf("decompressing %s: %s\n", input, err)
	}
}

// decompress decodes input into output, or into a name derived from input
// and the recorded extension if output is empty.  Nothing is written until
// the final name is known.
func decompress(codec squeeze.Codec, alg squeeze.Algorithm, input, output string) (string, error) {
	path, _, err := squeeze.DecompressFileNamed(codec, input, func(hdr squeeze.Header) string {
		if output != "" {
			return output
		}
		return decompressedName(input, alg, hdr.Extension)
	})
	return path, err
}

// compressedName appends the algorithm's suffix.
func compressedName(input string, alg squeeze.Algorithm) string {
	return input + alg.Suffix()
}

// decompressedName strips the algorithm's suffix, restoring ext if the
// remaining name has no extension of its own.  Inputs without the suffix
// get ".out" appended so that the input is never overwritten.
func decompressedName(input string, alg squeeze.Algorithm, ext string) string {
	base := strings.TrimSuffix(input, alg.Suffix())
	if base == input {
		return input + ".out"
	}
	if filepath.Ext(base) == "" && ext != "" {
		return base + ext
	}
	return base
}
