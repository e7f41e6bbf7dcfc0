package mdf4

import (
	"github.com/go-kit/log"
)

// Option configures how a file is opened.
type Option func(*options)

type options struct {
	logger       log.Logger
	concurrency  int
	unsortedScan bool
	metrics      *SourceMetrics
}

func defaultOptions() *options {
	return &options{
		logger:      log.NewNopLogger(),
		concurrency: 1,
	}
}

// WithLogger sets the logger for debug events such as visited blocks and
// unsupported features. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency parses up to n data groups in parallel. The resulting graph
// is identical to a sequential parse.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.concurrency = n
		}
	}
}

// WithUnsortedScan allows decoding channel groups of unsorted data groups by
// scanning the record ids of the interleaved records. Without it those groups
// report ErrUnsupported.
func WithUnsortedScan() Option {
	return func(o *options) {
		o.unsortedScan = true
	}
}

// WithMetrics counts the reads issued against the source.
func WithMetrics(m *SourceMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
