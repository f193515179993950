package squeeze

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FrequencyTable maps each observed byte value to its number of
// occurrences.  Bytes that never occur are absent.
type FrequencyTable map[byte]uint64

// BuildFrequencyTable counts the occurrences of every byte in data.
func BuildFrequencyTable(data []byte) FrequencyTable {
	var counts [256]uint64
	for _, b := range data {
		counts[b]++
	}
	table := make(FrequencyTable)
	for value, count := range counts {
		if count != 0 {
			table[byte(value)] = count
		}
	}
	return table
}

// Symbols returns the observed byte values in ascending order.
func (table FrequencyTable) Symbols() []byte {
	keys := maps.Keys(table)
	slices.Sort(keys)
	return keys
}

// Total returns the sum of all counts.
func (table FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range table {
		total = saturatingAdd(total, count)
	}
	return total
}
