package squeeze

import (
	"io"

	"github.com/chronos-tachyon/assert"
)

// BitWriter accumulates bits MSB-first into an 8-bit buffer and writes each
// completed byte to the underlying io.ByteWriter.  Write errors are sticky:
// the first one is kept and reported by Flush and Err, and every later write
// is a no-op.
type BitWriter struct {
	w       io.ByteWriter
	err     error
	acc     byte
	nbits   uint // number of bits held in acc; always < 8
	written uint64
}

// NewBitWriter returns a BitWriter that writes to w.
func NewBitWriter(w io.ByteWriter) *BitWriter {
	return &BitWriter{w: w}
}

// WriteBit writes the least significant bit of bit.
func (bw *BitWriter) WriteBit(bit uint) {
	bw.acc = bw.acc<<1 | byte(bit&1)
	bw.nbits++
	bw.written++
	if bw.nbits == 8 {
		bw.emit(bw.acc)
		bw.acc = 0
		bw.nbits = 0
	}
}

// WriteBits writes the low count bits of value, most significant bit first.
func (bw *BitWriter) WriteBits(value uint64, count uint) {
	assert.Assertf(count <= 64, "count %d > 64", count)
	for count > 0 {
		count--
		bw.WriteBit(uint(value >> count))
	}
}

// WriteCode writes the bits of hc in order.
func (bw *BitWriter) WriteCode(hc Code) {
	bw.WriteBits(hc.Bits, uint(hc.Size))
}

// Pending returns the number of bits waiting in the partial final byte.
func (bw *BitWriter) Pending() uint {
	return bw.nbits
}

// BitsWritten returns the total number of bits written, not counting the
// padding added by Flush.
func (bw *BitWriter) BitsWritten() uint64 {
	return bw.written
}

// Flush pads the partial final byte, if any, with zero bits on the low end
// and writes it out.
func (bw *BitWriter) Flush() error {
	if bw.nbits != 0 {
		bw.emit(bw.acc << (8 - bw.nbits))
		bw.acc = 0
		bw.nbits = 0
	}
	return bw.err
}

// Err returns the first error reported by the underlying writer.
func (bw *BitWriter) Err() error {
	return bw.err
}

func (bw *BitWriter) emit(b byte) {
	if bw.err != nil {
		return
	}
	bw.err = bw.w.WriteByte(b)
}

// BitReader reads bits MSB-first from an io.ByteReader.  Reading past the end
// of the source never fails: the missing bits read as zero and are counted by
// Overrun.  Callers must therefore know how much to read.
type BitReader struct {
	r       io.ByteReader
	err     error
	acc     byte
	nbits   uint // number of unread bits left in acc
	read    uint64
	overrun uint64
	eof     bool
}

// NewBitReader returns a BitReader that reads from r.
func NewBitReader(r io.ByteReader) *BitReader {
	return &BitReader{r: r}
}

// ReadBit reads a single bit.
func (br *BitReader) ReadBit() uint {
	if br.nbits == 0 {
		br.fill()
	}
	br.read++
	if br.nbits == 0 {
		br.overrun++
		return 0
	}
	br.nbits--
	return uint(br.acc>>br.nbits) & 1
}

// ReadBits reads count bits and assembles them MSB-first.
func (br *BitReader) ReadBits(count uint) uint64 {
	assert.Assertf(count <= 64, "count %d > 64", count)
	var value uint64
	for i := uint(0); i < count; i++ {
		value = value<<1 | uint64(br.ReadBit())
	}
	return value
}

// BitsRead returns the number of bits consumed so far, including any
// zero-padding returned past the end of the source.
func (br *BitReader) BitsRead() uint64 {
	return br.read
}

// Overrun returns the number of zero bits that were returned because the
// source was exhausted.
func (br *BitReader) Overrun() uint64 {
	return br.overrun
}

// Err returns the first non-EOF error reported by the underlying reader.
func (br *BitReader) Err() error {
	return br.err
}

func (br *BitReader) fill() {
	if br.eof {
		return
	}
	b, err := br.r.ReadByte()
	if err != nil {
		if err != io.EOF {
			br.err = err
		}
		br.eof = true
		return
	}
	br.acc = b
	br.nbits = 8
}
