package squeeze

import (
	"bytes"
	"encoding/binary"
	"math"
)

// maxContainerSize is the largest input a container can describe, since
// originalSize is stored as a uint32.
const maxContainerSize = math.MaxUint32

// containerWriter builds a container in memory.
type containerWriter struct {
	buf bytes.Buffer
}

func (cw *containerWriter) putBool(v bool) {
	if v {
		cw.buf.WriteByte(1)
	} else {
		cw.buf.WriteByte(0)
	}
}

func (cw *containerWriter) putUint8(v uint8) {
	cw.buf.WriteByte(v)
}

func (cw *containerWriter) putUint16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	cw.buf.Write(tmp[:])
}

func (cw *containerWriter) putUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	cw.buf.Write(tmp[:])
}

func (cw *containerWriter) putString(s string) error {
	if len(s) > math.MaxUint16 {
		return invalidContainerf("string of %d bytes does not fit a container (max %d)", len(s), math.MaxUint16)
	}
	cw.putUint16(uint16(len(s)))
	cw.buf.WriteString(s)
	return nil
}

func (cw *containerWriter) putBytes(b []byte) {
	cw.buf.Write(b)
}

// bitWriter returns a BitWriter that appends to the container.  The caller
// must Flush it before using any other put method.
func (cw *containerWriter) bitWriter() *BitWriter {
	return NewBitWriter(&cw.buf)
}

func (cw *containerWriter) Bytes() []byte {
	return cw.buf.Bytes()
}

// containerReader parses a container held in memory.  Every getter reports
// truncation as ErrInvalidContainer.
type containerReader struct {
	data []byte
	pos  int
}

func newContainerReader(data []byte) *containerReader {
	return &containerReader{data: data}
}

func (cr *containerReader) take(n int, what string) ([]byte, error) {
	if n < 0 || len(cr.data)-cr.pos < n {
		return nil, invalidContainerf("truncated %s: need %d bytes at offset %d, have %d", what, n, cr.pos, len(cr.data)-cr.pos)
	}
	b := cr.data[cr.pos : cr.pos+n]
	cr.pos += n
	return b, nil
}

func (cr *containerReader) getBool(what string) (bool, error) {
	b, err := cr.take(1, what)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, invalidContainerf("%s: invalid boolean byte 0x%02x", what, b[0])
	}
}

func (cr *containerReader) getUint8(what string) (uint8, error) {
	b, err := cr.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (cr *containerReader) getUint16(what string) (uint16, error) {
	b, err := cr.take(2, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (cr *containerReader) getUint32(what string) (uint32, error) {
	b, err := cr.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (cr *containerReader) getString(what string) (string, error) {
	n, err := cr.getUint16(what + " length")
	if err != nil {
		return "", err
	}
	b, err := cr.take(int(n), what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// rest returns every unread byte.
func (cr *containerReader) rest() []byte {
	b := cr.data[cr.pos:]
	cr.pos = len(cr.data)
	return b
}

func (cr *containerReader) remaining() int {
	return len(cr.data) - cr.pos
}

// initialCapacity bounds the preallocation for a declared output size by
// what the payload could plausibly produce.  Decoders still grow past it if
// the data really is that large.
func initialCapacity(size uint32, limit int) int {
	if limit < 0 {
		limit = 0
	}
	if uint64(size) < uint64(limit) {
		return int(size)
	}
	return limit
}

func checkInputSize(src []byte) error {
	if uint64(len(src)) > maxContainerSize {
		return invalidContainerf("input of %d bytes exceeds the container limit of %d bytes", len(src), uint64(maxContainerSize))
	}
	return nil
}
