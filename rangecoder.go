package squeeze

import (
	"github.com/chronos-tachyon/assert"
)

const (
	rangeHalf         = uint32(1) << 31
	rangeQuarter      = uint32(1) << 30
	rangeThreeQuarter = rangeHalf + rangeQuarter
)

// rangeEncoder is a 32-bit binary arithmetic encoder.  Bits whose value is
// not yet known, because the interval straddles the midpoint, are counted in
// pending and written once the next decided bit resolves them.
type rangeEncoder struct {
	bw      *BitWriter
	low     uint32
	high    uint32
	pending uint64
}

func newRangeEncoder(bw *BitWriter) *rangeEncoder {
	return &rangeEncoder{bw: bw, low: 0, high: ^uint32(0)}
}

func (e *rangeEncoder) emit(bit uint) {
	e.bw.WriteBit(bit)
	for ; e.pending > 0; e.pending-- {
		e.bw.WriteBit(bit ^ 1)
	}
}

// encode narrows the interval to s and rescales it.
func (e *rangeEncoder) encode(m *FrequencyModel, s Symbol) {
	cl, ch := m.Bounds(s)
	total := uint64(m.Total())
	r := uint64(e.high-e.low) + 1
	e.high = e.low + uint32(r*uint64(ch)/total-1)
	e.low = e.low + uint32(r*uint64(cl)/total)
	assert.Assertf(e.low <= e.high, "range coder interval inverted: [%#x, %#x]", e.low, e.high)

	for {
		switch {
		case e.high < rangeHalf:
			e.emit(0)
		case e.low >= rangeHalf:
			e.emit(1)
			e.low -= rangeHalf
			e.high -= rangeHalf
		case e.low >= rangeQuarter && e.high < rangeThreeQuarter:
			e.pending++
			e.low -= rangeQuarter
			e.high -= rangeQuarter
		default:
			return
		}
		e.low <<= 1
		e.high = e.high<<1 | 1
	}
}

// finish writes enough bits to pin a value inside the final interval.
func (e *rangeEncoder) finish() error {
	e.pending++
	if e.low < rangeQuarter {
		e.emit(0)
	} else {
		e.emit(1)
	}
	return e.bw.Flush()
}

// rangeDecoder mirrors rangeEncoder, keeping a 32-bit window of the stream
// in value.
type rangeDecoder struct {
	br    *BitReader
	low   uint32
	high  uint32
	value uint32
}

func newRangeDecoder(br *BitReader) *rangeDecoder {
	return &rangeDecoder{
		br:    br,
		low:   0,
		high:  ^uint32(0),
		value: uint32(br.ReadBits(32)),
	}
}

// target returns the scaled position of value within the current interval,
// in the model's cumulative count units.
func (d *rangeDecoder) target(m *FrequencyModel) uint32 {
	r := uint64(d.high-d.low) + 1
	return uint32(((uint64(d.value-d.low)+1)*uint64(m.Total()) - 1) / r)
}

// consume narrows the interval to s and rescales it, shifting in one new
// bit per step.
func (d *rangeDecoder) consume(m *FrequencyModel, s Symbol) {
	cl, ch := m.Bounds(s)
	total := uint64(m.Total())
	r := uint64(d.high-d.low) + 1
	d.high = d.low + uint32(r*uint64(ch)/total-1)
	d.low = d.low + uint32(r*uint64(cl)/total)

	for {
		switch {
		case d.high < rangeHalf:
		case d.low >= rangeHalf:
			d.low -= rangeHalf
			d.high -= rangeHalf
			d.value -= rangeHalf
		case d.low >= rangeQuarter && d.high < rangeThreeQuarter:
			d.low -= rangeQuarter
			d.high -= rangeQuarter
			d.value -= rangeQuarter
		default:
			return
		}
		d.low <<= 1
		d.high = d.high<<1 | 1
		d.value = d.value<<1 | uint32(d.br.ReadBit())
	}
}
