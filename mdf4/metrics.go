package mdf4

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SourceMetrics counts reads against a Source.
type SourceMetrics struct {
	Reads     prometheus.Counter
	BytesRead prometheus.Counter
	Errors    prometheus.Counter
}

// NewSourceMetrics creates and registers the source metrics with reg.
func NewSourceMetrics(reg prometheus.Registerer) *SourceMetrics {
	reads := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mdf4_source_reads_total",
		Help: "Total positioned reads issued against MDF4 sources",
	})
	bytesRead := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mdf4_source_read_bytes_total",
		Help: "Total bytes read from MDF4 sources",
	})
	readErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mdf4_source_read_errors_total",
		Help: "Total failed reads against MDF4 sources",
	})

	reg.MustRegister(reads, bytesRead, readErrors)

	return &SourceMetrics{
		Reads:     reads,
		BytesRead: bytesRead,
		Errors:    readErrors,
	}
}

// InstrumentSource wraps src so that every read is counted in m.
func InstrumentSource(src Source, m *SourceMetrics) Source {
	if m == nil {
		return src
	}
	return &instrumentedSource{src: src, m: m}
}

type instrumentedSource struct {
	src Source
	m   *SourceMetrics
}

func (s *instrumentedSource) ReadAt(p []byte, off int64) (int, error) {
	n, err := s.src.ReadAt(p, off)
	s.m.Reads.Inc()
	s.m.BytesRead.Add(float64(n))
	if err != nil && n < len(p) {
		s.m.Errors.Inc()
	}
	return n, err
}

func (s *instrumentedSource) Size() int64 {
	return s.src.Size()
}
