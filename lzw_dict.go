package squeeze

import (
	"github.com/chronos-tachyon/assert"
)

const (
	lzwEOS       = 256 // end of stream
	lzwClear     = 257 // dictionary reset
	lzwFirstCode = 258 // first dynamically assigned code

	lzwMinWidth = 9
	lzwMaxWidth = 12

	// lzwDictSize is the number of codes representable at lzwMaxWidth.
	lzwDictSize = 1 << lzwMaxWidth
)

// lzwWidth tracks the active code width.  Variable-width sessions start at
// lzwMinWidth and grow one bit at a time as codes stop fitting; fixed-width
// sessions always use lzwMaxWidth.
type lzwWidth struct {
	width uint
	fixed bool
}

func (w *lzwWidth) reset() {
	if w.fixed {
		w.width = lzwMaxWidth
	} else {
		w.width = lzwMinWidth
	}
}

// fit widens the code until n is representable, capped at lzwMaxWidth.
func (w *lzwWidth) fit(n int) {
	for w.width < lzwMaxWidth && n >= 1<<w.width {
		w.width++
	}
}

// lzwEncoderDict maps byte sequences to codes.  It is stored as a trie: a
// sequence is identified by the code of its prefix plus its final byte.
type lzwEncoderDict struct {
	children map[uint32]uint16
	parent   [lzwDictSize]int32
	suffix   [lzwDictSize]byte
	nextCode int
	lzwWidth
}

func newLZWEncoderDict(fixed bool) *lzwEncoderDict {
	d := &lzwEncoderDict{lzwWidth: lzwWidth{fixed: fixed}}
	d.reset()
	return d
}

// reset restores the dictionary to the 256 single-byte literals.
func (d *lzwEncoderDict) reset() {
	d.children = make(map[uint32]uint16, lzwDictSize)
	for code := 0; code < 256; code++ {
		d.parent[code] = -1
		d.suffix[code] = byte(code)
	}
	d.nextCode = lzwFirstCode
	d.lzwWidth.reset()
}

func lzwKey(prefix int, b byte) uint32 {
	return uint32(prefix)<<8 | uint32(b)
}

// lookup returns the code for the sequence formed by prefix followed by b.
func (d *lzwEncoderDict) lookup(prefix int, b byte) (int, bool) {
	code, found := d.children[lzwKey(prefix, b)]
	return int(code), found
}

// full reports whether every code up to lzwDictSize-1 is assigned.
func (d *lzwEncoderDict) full() bool {
	return d.nextCode >= lzwDictSize
}

// insert assigns the next free code to prefix followed by b, then widens the
// code if the following code would not fit.
func (d *lzwEncoderDict) insert(prefix int, b byte) {
	assert.Assertf(!d.full(), "insert into full LZW dictionary")
	code := d.nextCode
	d.children[lzwKey(prefix, b)] = uint16(code)
	d.parent[code] = int32(prefix)
	d.suffix[code] = b
	d.nextCode++
	d.fit(d.nextCode)
}

// sequence reconstructs the byte sequence for code.
func (d *lzwEncoderDict) sequence(code int) []byte {
	var rev []byte
	for c := int32(code); c >= 0; c = d.parent[c] {
		rev = append(rev, d.suffix[c])
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// lzwDecoderDict maps codes to byte sequences.  It evolves exactly like
// lzwEncoderDict but runs one insertion behind it, so its width is computed
// for the code after next.
type lzwDecoderDict struct {
	entries  [][]byte
	nextCode int
	lzwWidth
}

func newLZWDecoderDict(fixed bool) *lzwDecoderDict {
	d := &lzwDecoderDict{
		entries:  make([][]byte, lzwDictSize),
		lzwWidth: lzwWidth{fixed: fixed},
	}
	d.reset()
	return d
}

func (d *lzwDecoderDict) reset() {
	for code := 0; code < 256; code++ {
		d.entries[code] = []byte{byte(code)}
	}
	for code := 256; code < lzwDictSize; code++ {
		d.entries[code] = nil
	}
	d.nextCode = lzwFirstCode
	d.lzwWidth.reset()
}

// lookup returns the sequence for code, or nil if code is unassigned or a
// control code.
func (d *lzwDecoderDict) lookup(code int) []byte {
	if code < 0 || code >= d.nextCode {
		return nil
	}
	return d.entries[code]
}

// insert assigns the next free code to seq.  Once the dictionary is full the
// encoder always clears it, so an insert into a full dictionary is dropped.
func (d *lzwDecoderDict) insert(seq []byte) {
	if d.nextCode >= lzwDictSize {
		return
	}
	d.entries[d.nextCode] = seq
	d.nextCode++
	d.fit(d.nextCode + 1)
}
