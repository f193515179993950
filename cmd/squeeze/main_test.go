package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chronos-tachyon/squeeze"
)

func TestCompressedName(t *testing.T) {
	if name := compressedName("notes.txt", squeeze.LZW); name != "notes.txt.lzw" {
		t.Errorf("expected %q, got %q", "notes.txt.lzw", name)
	}
}

func TestDecompressedName(t *testing.T) {
	type testRow struct {
		input  string
		alg    squeeze.Algorithm
		ext    string
		expect string
	}

	testData := [...]testRow{
		{"notes.txt.huf", squeeze.Huffman, "", "notes.txt"},
		{"notes.lzw", squeeze.LZW, ".txt", "notes.txt"},
		{"notes.txt.lzw", squeeze.LZW, ".md", "notes.txt"},
		{"notes.ari", squeeze.Arithmetic, "", "notes"},
		{"notes.bin", squeeze.Arithmetic, ".txt", "notes.bin.out"},
	}
	for _, row := range testData {
		if actual := decompressedName(row.input, row.alg, row.ext); actual != row.expect {
			t.Errorf("decompressedName(%q, %v, %q): expected %q, got %q", row.input, row.alg, row.ext, row.expect, actual)
		}
	}
}

func TestDecompress_KeepsUnrelatedFile(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "notes.txt")
	packed := filepath.Join(dir, "notes.lzw")
	bystander := filepath.Join(dir, "notes")

	data := []byte("the quick brown fox jumps over the lazy dog\n")
	if err := os.WriteFile(original, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	codec := squeeze.NewLZW()
	if err := squeeze.CompressFile(codec, original, packed); err != nil {
		t.Fatalf("CompressFile failed: %v", err)
	}
	if err := os.Remove(original); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := os.WriteFile(bystander, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	path, err := decompress(codec, squeeze.LZW, packed, "")
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if path != original {
		t.Errorf("expected output %q, got %q", original, path)
	}
	if out, err := os.ReadFile(original); err != nil || string(out) != string(data) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q (%v)", data, out, err)
	}
	if kept, err := os.ReadFile(bystander); err != nil || string(kept) != "keep me" {
		t.Errorf("unrelated file changed: %q (%v)", kept, err)
	}
}

func TestDecompress_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	packed := filepath.Join(dir, "data.ari")
	codec := squeeze.NewArithmetic()
	enc, err := codec.Encode([]byte("payload"), squeeze.Header{Extension: ".txt"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := os.WriteFile(packed, enc, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	output := filepath.Join(dir, "chosen")
	path, err := decompress(codec, squeeze.Arithmetic, packed, output)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if path != output {
		t.Errorf("expected output %q, got %q", output, path)
	}
	if _, err := os.Stat(filepath.Join(dir, "data.txt")); !os.IsNotExist(err) {
		t.Errorf("derived name was written despite an explicit output: %v", err)
	}
}
