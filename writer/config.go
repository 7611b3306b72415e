package writer

import (
	"github.com/arloliu/tsfile/bloom"
	"github.com/arloliu/tsfile/internal/options"
)

// Defaults for the writer configuration.
const (
	// DefaultPageSizeThreshold bounds a chunk's single page body.
	DefaultPageSizeThreshold = 64 * 1024

	// DefaultBloomFilterErrorRate is the target false-positive rate of the
	// footer bloom filter.
	DefaultBloomFilterErrorRate = 0.05

	// DefaultMaxDegreeOfIndexNode is the fanout of the footer index tree.
	DefaultMaxDegreeOfIndexNode = 256

	// minPageSizeThreshold keeps the budget above one sample of the widest
	// type plus page framing, so the first write always fits.
	minPageSizeThreshold = 64

	// minMaxDegreeOfIndexNode is the smallest fanout that still reduces.
	minMaxDegreeOfIndexNode = 2
)

type config struct {
	pageSizeThreshold    int
	bloomFilterErrorRate float64
	maxDegreeOfIndexNode int
}

func defaultConfig() config {
	return config{
		pageSizeThreshold:    DefaultPageSizeThreshold,
		bloomFilterErrorRate: DefaultBloomFilterErrorRate,
		maxDegreeOfIndexNode: DefaultMaxDegreeOfIndexNode,
	}
}

// Option represents a functional option for configuring the TsFileWriter.
type Option = options.Option[*config]

// WithPageSizeThreshold sets the advisory byte budget of a chunk's single
// page. Writes that would exceed it fail with ErrPageOverflow. Values below
// the internal floor are raised to it.
func WithPageSizeThreshold(bytes int) Option {
	return options.NoError(func(c *config) {
		if bytes < minPageSizeThreshold {
			bytes = minPageSizeThreshold
		}
		c.pageSizeThreshold = bytes
	})
}

// WithBloomFilterErrorRate sets the target false-positive rate of the
// footer bloom filter, clamped to [0.01, 0.10].
func WithBloomFilterErrorRate(rate float64) Option {
	return options.NoError(func(c *config) {
		if rate < bloom.MinErrorRate {
			rate = bloom.MinErrorRate
		}
		if rate > bloom.MaxErrorRate {
			rate = bloom.MaxErrorRate
		}
		c.bloomFilterErrorRate = rate
	})
}

// WithMaxDegreeOfIndexNode sets the maximum children per footer index node.
// Values below 2 are raised to 2.
func WithMaxDegreeOfIndexNode(degree int) Option {
	return options.NoError(func(c *config) {
		if degree < minMaxDegreeOfIndexNode {
			degree = minMaxDegreeOfIndexNode
		}
		c.maxDegreeOfIndexNode = degree
	})
}
