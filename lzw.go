package squeeze

import (
	"bytes"
)

// LZWCodec implements Codec with adaptive-dictionary LZW.  Codes 0-255 are
// literals, 256 ends the stream, 257 clears the dictionary, and 258-4095 are
// assigned as new sequences are seen.  Codes start at 9 bits and grow to 12
// unless the codec is configured with WithFixedCodeWidth(true).
//
// Container layout:
//
//     extension         string
//     originalSize      uint32
//     compressed        uint8 (0 or 1)
//     compressedLength  uint32, present only if compressed
//     payload           LZW codes if compressed, else the original bytes
//
// The original bytes are stored whenever the LZW payload would not be smaller.
//
type LZWCodec struct {
	fixed  bool
	events notifier
}

// NewLZW returns an LZW codec.
func NewLZW(opts ...Option) *LZWCodec {
	cfg := buildConfig(opts)
	return &LZWCodec{
		fixed:  cfg.FixedCodeWidth,
		events: notifier{alg: LZW, listeners: cfg.Listeners},
	}
}

// Algorithm returns LZW.
func (c *LZWCodec) Algorithm() Algorithm {
	return LZW
}

// Encode compresses src.  hdr.Extension is recorded; hdr.Binary is not.
func (c *LZWCodec) Encode(src []byte, hdr Header) ([]byte, error) {
	if err := checkInputSize(src); err != nil {
		return nil, err
	}
	c.events.notify(EventCompressionStart, int64(len(src)), "")

	var cw containerWriter
	if err := cw.putString(hdr.Extension); err != nil {
		return nil, err
	}
	cw.putUint32(uint32(len(src)))

	var payload bytes.Buffer
	enc := newLZWEncoder(&payload, c.fixed, c.events)
	if err := enc.encode(src); err != nil {
		return nil, err
	}

	if payload.Len() < len(src) {
		cw.putBool(true)
		cw.putUint32(uint32(payload.Len()))
		cw.putBytes(payload.Bytes())
	} else {
		cw.putBool(false)
		cw.putBytes(src)
	}

	out := cw.Bytes()
	c.events.notify(EventCompressionEnd, int64(len(out)), "")
	return out, nil
}

// Decode reverses Encode.
func (c *LZWCodec) Decode(src []byte) ([]byte, Header, error) {
	c.events.notify(EventDecompressionStart, int64(len(src)), "")

	var hdr Header
	cr := newContainerReader(src)
	ext, err := cr.getString("extension")
	if err != nil {
		return nil, hdr, err
	}
	hdr.Extension = ext
	size, err := cr.getUint32("original size")
	if err != nil {
		return nil, hdr, err
	}
	compressed, err := cr.getBool("compressed flag")
	if err != nil {
		return nil, hdr, err
	}

	var out []byte
	if compressed {
		n, err := cr.getUint32("compressed length")
		if err != nil {
			return nil, hdr, err
		}
		payload, err := cr.take(int(n), "payload")
		if err != nil {
			return nil, hdr, err
		}
		// No code is narrower than lzwMinWidth or expands to more than
		// lzwDictSize bytes.
		if limit := uint64(len(payload)) * 8 / lzwMinWidth * lzwDictSize; uint64(size) > limit {
			return nil, hdr, invalidContainerf("original size %d exceeds the %d bytes a %d-byte payload can hold", size, limit, len(payload))
		}
		dec := newLZWDecoder(payload, c.fixed, c.events)
		out, err = dec.decode(int(size))
		if err != nil {
			return nil, hdr, err
		}
	} else {
		stored, err := cr.take(int(size), "stored data")
		if err != nil {
			return nil, hdr, err
		}
		out = append(make([]byte, 0, len(stored)), stored...)
	}
	if n := cr.remaining(); n != 0 {
		return nil, hdr, invalidContainerf("%d unexpected bytes after payload", n)
	}

	hdr.Binary = DetectBinary(out)
	c.events.notify(EventDecompressionEnd, int64(len(out)), "")
	return out, hdr, nil
}

var _ Codec = (*LZWCodec)(nil)

// lzwEncoder turns bytes into a stream of LZW codes.
type lzwEncoder struct {
	dict   *lzwEncoderDict
	bw     *BitWriter
	events notifier
	codes  int
	resets int

	// onCode, if set, observes every code written along with its width.
	onCode func(code int, width uint)
}

func newLZWEncoder(w *bytes.Buffer, fixed bool, events notifier) *lzwEncoder {
	return &lzwEncoder{
		dict:   newLZWEncoderDict(fixed),
		bw:     NewBitWriter(w),
		events: events,
	}
}

func (e *lzwEncoder) emit(code int) {
	if e.onCode != nil {
		e.onCode(code, e.dict.width)
	}
	e.bw.WriteBits(uint64(code), e.dict.width)
	e.codes++
}

func (e *lzwEncoder) encode(src []byte) error {
	if len(src) != 0 {
		pattern := int(src[0])
		for i := 1; i < len(src); i++ {
			b := src[i]
			if code, found := e.dict.lookup(pattern, b); found {
				pattern = code
				continue
			}
			e.emit(pattern)
			e.dict.insert(pattern, b)
			if e.dict.full() {
				e.emit(lzwClear)
				e.dict.reset()
				e.resets++
				e.events.notify(EventDictionaryReset, int64(i), "")
			}
			pattern = int(b)
		}
		e.emit(pattern)

		// The decoder reads the next code one insertion ahead of the
		// encoder, so EOS is written at the width it will expect.
		e.dict.fit(e.dict.nextCode + 1)
	}
	e.emit(lzwEOS)
	return e.bw.Flush()
}

// lzwDecoder turns a stream of LZW codes back into bytes.
type lzwDecoder struct {
	dict   *lzwDecoderDict
	br     *BitReader
	events notifier
	codes  int
	resets int

	// onCode, if set, observes every code read along with its width.
	onCode func(code int, width uint)
}

func newLZWDecoder(payload []byte, fixed bool, events notifier) *lzwDecoder {
	return &lzwDecoder{
		dict:   newLZWDecoderDict(fixed),
		br:     NewBitReader(bytes.NewReader(payload)),
		events: events,
	}
}

// decode reads codes until size bytes are produced or EOS is seen.
func (d *lzwDecoder) decode(size int) ([]byte, error) {
	out := make([]byte, 0, size)
	var prev []byte
	for len(out) < size {
		width := d.dict.width
		code := int(d.br.ReadBits(width))
		if d.br.Overrun() != 0 {
			return nil, corruptStreamf("code stream truncated after %d of %d bytes", len(out), size)
		}
		if d.onCode != nil {
			d.onCode(code, width)
		}
		d.codes++

		switch code {
		case lzwEOS:
			return nil, corruptStreamf("end of stream after %d of %d bytes", len(out), size)
		case lzwClear:
			d.dict.reset()
			d.resets++
			prev = nil
			d.events.notify(EventDictionaryReset, int64(len(out)), "")
			continue
		}

		entry := d.dict.lookup(code)
		if entry == nil {
			if code != d.dict.nextCode || prev == nil {
				return nil, corruptStreamf("invalid code %d (next code %d)", code, d.dict.nextCode)
			}
			// The code being defined by this very step: the previous
			// sequence followed by its own first byte.
			entry = make([]byte, len(prev)+1)
			copy(entry, prev)
			entry[len(prev)] = prev[0]
		}
		if len(out)+len(entry) > size {
			return nil, corruptStreamf("code %d overruns the original size %d", code, size)
		}
		out = append(out, entry...)

		if prev != nil {
			seq := make([]byte, len(prev)+1)
			copy(seq, prev)
			seq[len(prev)] = entry[0]
			d.dict.insert(seq)
		}
		prev = entry
	}
	return out, nil
}
