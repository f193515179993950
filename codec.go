package squeeze

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Algorithm identifies a codec.  The numeric values are the ids used by
// command-line front ends.
type Algorithm int

const (
	Huffman    Algorithm = 1
	LZW        Algorithm = 2
	Arithmetic Algorithm = 3
)

var algorithmNames = map[Algorithm]string{
	Huffman:    "huffman",
	LZW:        "lzw",
	Arithmetic: "arithmetic",
}

var algorithmSuffixes = map[Algorithm]string{
	Huffman:    ".huf",
	LZW:        ".lzw",
	Arithmetic: ".ari",
}

// Algorithms lists every supported algorithm in id order.
func Algorithms() []Algorithm {
	return []Algorithm{Huffman, LZW, Arithmetic}
}

// String returns the lower-case name of the algorithm.
func (alg Algorithm) String() string {
	if name, ok := algorithmNames[alg]; ok {
		return name
	}
	return "Algorithm(" + strconv.Itoa(int(alg)) + ")"
}

// Suffix returns the file name suffix conventionally used for containers
// produced by the algorithm.
func (alg Algorithm) Suffix() string {
	return algorithmSuffixes[alg]
}

// ParseAlgorithm accepts either a numeric id ("1", "2", "3") or a name
// ("huffman", "lzw", "arithmetic"; case-insensitive).
func ParseAlgorithm(str string) (Algorithm, error) {
	if id, err := strconv.Atoi(str); err == nil {
		alg := Algorithm(id)
		if _, ok := algorithmNames[alg]; ok {
			return alg, nil
		}
		return 0, fmt.Errorf("unknown algorithm id %d", id)
	}
	lower := strings.ToLower(str)
	for alg, name := range algorithmNames {
		if name == lower {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", str)
}

// Header carries the metadata a container can record besides the data.
// Which fields a container actually stores depends on the algorithm.
type Header struct {
	// Extension is the original file's extension, including the dot.
	Extension string

	// Binary reports whether the original data looked like binary data.
	Binary bool
}

// Codec is the whole-buffer compress/decompress contract shared by all
// algorithms.  Encode and Decode are independent calls that share no state;
// a failed Decode never returns partial output.
type Codec interface {
	// Algorithm identifies the codec.
	Algorithm() Algorithm

	// Encode compresses src into a self-describing container.
	Encode(src []byte, hdr Header) ([]byte, error)

	// Decode reverses Encode, returning the data and whatever metadata
	// the container recorded.
	Decode(src []byte) ([]byte, Header, error)
}

// New returns the codec for alg.
func New(alg Algorithm, opts ...Option) (Codec, error) {
	switch alg {
	case Huffman:
		return NewHuffman(opts...), nil
	case LZW:
		return NewLZW(opts...), nil
	case Arithmetic:
		return NewArithmetic(opts...), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %v", alg)
	}
}

// CompressFile compresses the file at inPath into a container at outPath.
// The input's extension and binary-ness are recorded where the container
// allows it.  outPath is written only once encoding has succeeded.
func CompressFile(c Codec, inPath, outPath string) error {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return ioFailure("read", err)
	}
	hdr := Header{
		Extension: filepath.Ext(inPath),
		Binary:    DetectBinary(src),
	}
	out, err := c.Encode(src, hdr)
	if err != nil {
		return err
	}
	return writeFile(outPath, out)
}

// DecompressFile decodes the container at inPath into outPath, returning the
// metadata the container recorded.  outPath is written only once decoding
// has succeeded.
func DecompressFile(c Codec, inPath, outPath string) (Header, error) {
	_, hdr, err := DecompressFileNamed(c, inPath, func(Header) string {
		return outPath
	})
	return hdr, err
}

// DecompressFileNamed is like DecompressFile, but the output path is chosen
// by name once the container's metadata is known.  It returns the path that
// was written.
func DecompressFileNamed(c Codec, inPath string, name func(Header) string) (string, Header, error) {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return "", Header{}, ioFailure("read", err)
	}
	out, hdr, err := c.Decode(src)
	if err != nil {
		return "", hdr, err
	}
	outPath := name(hdr)
	return outPath, hdr, writeFile(outPath, out)
}

// writeFile writes data to a temporary file next to path and renames it
// into place, so that a failure never leaves a partial file at path.
func writeFile(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return ioFailure("create", err)
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if err == nil {
		err = f.Chmod(0o644)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
		return ioFailure("write", err)
	}
	return nil
}
