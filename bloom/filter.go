// Package bloom provides receipt number membership tests using Bloom
// filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter of receipt numbers.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewIndex returns a filter holding items, sized for their count.
func NewIndex(items []string, fpRate float64) *Filter {
	f := NewFilter(uint(max(len(items), 1)), fpRate)
	for _, s := range items {
		f.Add(s)
	}
	return f
}

// Add adds a receipt number to the filter.
func (f *Filter) Add(s string) {
	f.f.AddString(s)
}

// Test returns true if the receipt number might be in the filter.
// False positives are possible; false negatives are not. Test is safe
// for concurrent use as long as no Add runs alongside it.
func (f *Filter) Test(s string) bool {
	return f.f.TestString(s)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
