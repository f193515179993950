package squeeze

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/huff0"
)

func TestHuffman_AAAB(t *testing.T) {
	src := []byte{0x41, 0x41, 0x41, 0x42}

	tree, err := BuildHuffmanTree(BuildFrequencyTable(src))
	if err != nil {
		t.Fatalf("BuildHuffmanTree failed: %v", err)
	}
	codes := tree.Codes()
	a, _ := codes.Lookup('A')
	b, _ := codes.Lookup('B')
	if a.Size > b.Size {
		t.Errorf("'A' got a longer code (%s) than 'B' (%s)", a, b)
	}

	c := NewHuffman()
	enc, err := c.Encode(src, Header{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if size := binary.BigEndian.Uint32(enc[1:5]); size != 4 {
		t.Errorf("expected originalSize 4, got %d", size)
	}
	dec, _, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(src, dec) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", src, dec)
	}
}

func TestHuffman_Layout(t *testing.T) {
	// Tree for {A:3, B:1}: internal, leaf 'B', leaf 'A' = 19 bits, 3 bytes.
	// Payload "1110" = 4 bits, 1 byte.
	enc, err := NewHuffman().Encode([]byte("AAAB"), Header{Binary: true})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expect := []byte{
		0x01,                   // binary
		0x00, 0x00, 0x00, 0x04, // original size
		0x50, 0xa8, 0x20,       // 0 1 01000010 1 01000001 + padding
		0xe0,                   // 1110 + padding
		0x04,                   // meaningful bits in the last payload byte
	}
	if !bytes.Equal(expect, enc) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, enc)
	}
}

func TestHuffman_SingleSymbol(t *testing.T) {
	src := bytes.Repeat([]byte{'z'}, 4)
	c := NewHuffman()
	enc, err := c.Encode(src, Header{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// header (5) + tree (9 bits → 2 bytes) + payload (4 bits → 1 byte) + trailing (1)
	if len(enc) != 9 {
		t.Fatalf("expected a 9-byte container, got %d: %#v", len(enc), enc)
	}

	// A single-leaf tree needs no traversal bits, so garbage there is
	// never read.
	garbled := append([]byte(nil), enc...)
	garbled[7] = 0xff
	dec, _, err := c.Decode(garbled)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(src, dec) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", src, dec)
	}

	// The payload still has to account for one bit per byte.
	stripped := append(append([]byte(nil), enc[:7]...), enc[8])
	if _, _, err := c.Decode(stripped); !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("expected ErrInvalidContainer without a payload, got %v", err)
	}
}

func TestHuffman_Empty(t *testing.T) {
	c := NewHuffman()
	enc, err := c.Encode(nil, Header{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expect := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(expect, enc) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, enc)
	}
	dec, _, err := c.Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(dec) != 0 {
		t.Errorf("expected empty output, got %#v", dec)
	}
}

func TestHuffman_Corrupt(t *testing.T) {
	c := NewHuffman()
	good, err := c.Encode([]byte("hello, world"), Header{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	truncated := append(append([]byte(nil), good[:len(good)-2]...), 0x00)
	badTrailing := append(append([]byte(nil), good[:len(good)-1]...), 0x09)
	oversized := append([]byte(nil), good...)
	binary.BigEndian.PutUint32(oversized[1:5], 0xfffffff0)
	single, err := c.Encode([]byte("zzzz"), Header{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	binary.BigEndian.PutUint32(single[1:5], 0xfffffff0)

	type testRow struct {
		name   string
		data   []byte
		expect error
	}

	testData := [...]testRow{
		{name: "short-header", data: []byte{0x00, 0x00, 0x01}, expect: ErrInvalidContainer},
		{name: "bad-binary-flag", data: []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x00}, expect: ErrInvalidContainer},
		{name: "missing-trailing", data: []byte{0x00, 0x00, 0x00, 0x00, 0x05}, expect: ErrInvalidContainer},
		{name: "bad-trailing", data: badTrailing, expect: ErrInvalidContainer},
		{name: "bad-tree", data: []byte{0x00, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00}, expect: ErrCorruptTree},
		{name: "truncated-payload", data: truncated, expect: ErrCorruptStream},
		{name: "oversized", data: oversized, expect: ErrInvalidContainer},
		{name: "oversized-single-leaf", data: single, expect: ErrInvalidContainer},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			out, _, err := c.Decode(row.data)
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
			if out != nil {
				t.Errorf("expected no output, got %#v", out)
			}
		})
	}
}

// TestHuffman_Optimal checks the payload against huff0, whose
// length-limited prefix code can never beat an unrestricted Huffman code.
func TestHuffman_Optimal(t *testing.T) {
	for _, src := range [][]byte{makeLZWText(50000), []byte(strings.Repeat("abracadabra ", 500))} {
		table := BuildFrequencyTable(src)
		tree, err := BuildHuffmanTree(table)
		if err != nil {
			t.Fatalf("BuildHuffmanTree failed: %v", err)
		}
		codes := tree.Codes()
		var bits uint64
		for value, count := range table {
			hc, _ := codes.Lookup(value)
			bits += count * uint64(hc.Size)
		}

		ref, _, err := huff0.Compress1X(src, nil)
		if err != nil {
			t.Fatalf("huff0.Compress1X failed: %v", err)
		}
		if ours := (bits + 7) / 8; ours > uint64(len(ref)) {
			t.Errorf("payload of %d bytes is larger than huff0's %d", ours, len(ref))
		}
	}
}
