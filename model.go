package squeeze

import (
	"sort"

	"github.com/chronos-tachyon/assert"
)

// maxModelTotal bounds the sum of the model's counts.  The range coder's
// interval never shrinks below a quarter of 2^32, so keeping the total at or
// below 2^24 gives every symbol a non-empty sub-interval and keeps
// range*count within 64 bits.
const maxModelTotal = 1 << 24

// FrequencyModel is a static order-0 model over the 257-symbol alphabet of
// byte values plus EOFSymbol.  Every symbol is seeded with a count of one and
// gains one per observed occurrence; counts are then scaled down together if
// their total would exceed 2^24.
//
// Symbol s owns the half-open interval [cum[s], cum[s+1]) of [0, total), so
// the intervals ordered by symbol exactly partition the whole range.
type FrequencyModel struct {
	counts [NumSymbols]uint32
	cum    [NumSymbols + 1]uint32
}

// NewFrequencyModel builds a model from observed byte occurrences.
func NewFrequencyModel(table FrequencyTable) *FrequencyModel {
	var raw [NumSymbols]uint64
	for i := range raw {
		raw[i] = 1
	}
	for value, count := range table {
		raw[value] = saturatingAdd(raw[value], count)
	}

	m := &FrequencyModel{}
	for shift := uint(0); ; shift++ {
		var total uint64
		for i, count := range raw {
			scaled := count >> shift
			if scaled == 0 {
				scaled = 1
			}
			m.counts[i] = uint32(scaled)
			total += scaled
		}
		if total <= maxModelTotal {
			break
		}
	}

	for i, count := range m.counts {
		m.cum[i+1] = m.cum[i] + count
	}
	return m
}

// Total returns the sum of all counts.
func (m *FrequencyModel) Total() uint32 {
	return m.cum[NumSymbols]
}

// Count returns the scaled count of s.
func (m *FrequencyModel) Count(s Symbol) uint32 {
	return m.counts[s]
}

// Bounds returns the cumulative count interval [low, high) of s.
func (m *FrequencyModel) Bounds(s Symbol) (low, high uint32) {
	assert.Assertf(s >= 0 && int(s) < NumSymbols, "symbol %d out of range", s)
	return m.cum[s], m.cum[s+1]
}

// Interval returns the fraction of [0, 1) owned by s.
func (m *FrequencyModel) Interval(s Symbol) (low, high float64) {
	cl, ch := m.Bounds(s)
	total := float64(m.Total())
	return float64(cl) / total, float64(ch) / total
}

// Lookup returns the symbol whose cumulative interval contains target, which
// must lie in [0, Total()).  It binary-searches the interval table, falls
// back to a linear scan, and as a last resort returns symbol 0 with ok set to
// false.
func (m *FrequencyModel) Lookup(target uint32) (s Symbol, ok bool) {
	i := sort.Search(NumSymbols, func(i int) bool {
		return m.cum[i+1] > target
	})
	if i < NumSymbols && m.cum[i] <= target && target < m.cum[i+1] {
		return Symbol(i), true
	}
	for i := 0; i < NumSymbols; i++ {
		if m.cum[i] <= target && target < m.cum[i+1] {
			return Symbol(i), true
		}
	}
	return 0, false
}
