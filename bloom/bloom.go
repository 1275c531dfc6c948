// Package bloom provides a probabilistic seen-URL filter for batch
// extraction. A bloom filter keeps memory flat for arbitrarily large
// input lists; false positives skip a URL that was never processed,
// which batch callers accept in exchange for never processing the same
// URL twice.
package bloom

import (
	bloomfilter "github.com/bits-and-blooms/bloom/v3"
)

// Filter tracks URLs that have already been scheduled.
type Filter struct {
	filter *bloomfilter.BloomFilter
	count  uint
}

// NewFilter creates a filter sized for the expected number of URLs at
// the given false-positive rate.
func NewFilter(expectedURLs uint, falsePositiveRate float64) *Filter {
	return &Filter{
		filter: bloomfilter.NewWithEstimates(expectedURLs, falsePositiveRate),
	}
}

// Seen records the URL and reports whether it was already present.
func (f *Filter) Seen(url string) bool {
	if f.filter.TestString(url) {
		return true
	}
	f.filter.AddString(url)
	f.count++
	return false
}

// Count returns the number of distinct URLs recorded so far.
func (f *Filter) Count() uint {
	return f.count
}
