package squeeze

import (
	"bytes"
	"fmt"
	"math"
)

// ArithmeticCodec implements Codec with order-0 arithmetic coding over a
// static model stored in the container.
//
// Container layout:
//
//     isBinary      uint8 (0 or 1, informational)
//     extension     string
//     originalSize  uint32
//     entryCount    uint16
//     entries       entryCount × (symbol uint8, count uint32), ascending symbols
//     stream        range-coded bits, terminated by EOFSymbol
//
// The entries list the occurrence counts of the bytes present in the input;
// the model adds one to every symbol, including EOFSymbol, on both sides.
//
type ArithmeticCodec struct {
	events notifier
}

// NewArithmetic returns an arithmetic codec.
func NewArithmetic(opts ...Option) *ArithmeticCodec {
	cfg := buildConfig(opts)
	return &ArithmeticCodec{events: notifier{alg: Arithmetic, listeners: cfg.Listeners}}
}

// Algorithm returns Arithmetic.
func (c *ArithmeticCodec) Algorithm() Algorithm {
	return Arithmetic
}

// Encode compresses src.  Both hdr.Binary and hdr.Extension are recorded.
func (c *ArithmeticCodec) Encode(src []byte, hdr Header) ([]byte, error) {
	if err := checkInputSize(src); err != nil {
		return nil, err
	}
	c.events.notify(EventCompressionStart, int64(len(src)), "")

	var cw containerWriter
	cw.putBool(hdr.Binary)
	if err := cw.putString(hdr.Extension); err != nil {
		return nil, err
	}
	cw.putUint32(uint32(len(src)))

	table := BuildFrequencyTable(src)
	symbols := table.Symbols()
	cw.putUint16(uint16(len(symbols)))
	for _, value := range symbols {
		cw.putUint8(value)
		cw.putUint32(uint32(table[value]))
	}

	model := NewFrequencyModel(table)
	enc := newRangeEncoder(cw.bitWriter())
	for _, b := range src {
		enc.encode(model, Symbol(b))
	}
	enc.encode(model, EOFSymbol)
	if err := enc.finish(); err != nil {
		return nil, err
	}

	out := cw.Bytes()
	c.events.notify(EventCompressionEnd, int64(len(out)), "")
	return out, nil
}

// Decode reverses Encode.
func (c *ArithmeticCodec) Decode(src []byte) ([]byte, Header, error) {
	c.events.notify(EventDecompressionStart, int64(len(src)), "")

	var hdr Header
	cr := newContainerReader(src)
	binary, err := cr.getBool("binary flag")
	if err != nil {
		return nil, hdr, err
	}
	hdr.Binary = binary
	ext, err := cr.getString("extension")
	if err != nil {
		return nil, hdr, err
	}
	hdr.Extension = ext
	size, err := cr.getUint32("original size")
	if err != nil {
		return nil, hdr, err
	}
	table, err := readModelEntries(cr, size)
	if err != nil {
		return nil, hdr, err
	}

	model := NewFrequencyModel(table)
	stream := cr.rest()
	dec := newRangeDecoder(NewBitReader(bytes.NewReader(stream)))
	out, err := c.decodeSymbols(dec, model, size, initialCapacity(size, 8*len(stream)))
	if err != nil {
		return nil, hdr, err
	}

	c.events.notify(EventDecompressionEnd, int64(len(out)), "")
	return out, hdr, nil
}

// decodeSymbols decodes until size bytes are produced, preallocating
// capacity bytes.  An end-of-file symbol before that point means the stream
// and the header disagree.
func (c *ArithmeticCodec) decodeSymbols(dec *rangeDecoder, model *FrequencyModel, size uint32, capacity int) ([]byte, error) {
	out := make([]byte, 0, capacity)
	for uint32(len(out)) < size {
		target := dec.target(model)
		s, ok := model.Lookup(target)
		if !ok {
			c.events.notify(EventLookupAnomaly, int64(len(out)),
				fmt.Sprintf("no symbol interval contains %d of %d; using symbol %d", target, model.Total(), s))
		}
		dec.consume(model, s)
		if s == EOFSymbol {
			return nil, corruptStreamf("end-of-file symbol after %d of %d bytes", len(out), size)
		}
		out = append(out, byte(s))
	}
	return out, nil
}

var _ Codec = (*ArithmeticCodec)(nil)

func readModelEntries(cr *containerReader, size uint32) (FrequencyTable, error) {
	n, err := cr.getUint16("model entry count")
	if err != nil {
		return nil, err
	}
	if n > math.MaxUint8+1 {
		return nil, invalidContainerf("%d model entries for a 256-symbol alphabet", n)
	}

	table := make(FrequencyTable, n)
	var sum uint64
	for i := uint16(0); i < n; i++ {
		value, err := cr.getUint8("model symbol")
		if err != nil {
			return nil, err
		}
		count, err := cr.getUint32("model count")
		if err != nil {
			return nil, err
		}
		if _, dup := table[value]; dup {
			return nil, invalidContainerf("model symbol 0x%02x listed twice", value)
		}
		if count == 0 {
			return nil, invalidContainerf("model symbol 0x%02x has a zero count", value)
		}
		table[value] = uint64(count)
		sum += uint64(count)
	}
	if sum != uint64(size) {
		return nil, invalidContainerf("model counts sum to %d but original size is %d", sum, size)
	}
	return table, nil
}
