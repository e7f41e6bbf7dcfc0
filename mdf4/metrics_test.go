package mdf4

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-mdf4/internal/mdftest"
)

func TestSourceMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSourceMetrics(reg)

	data := mdftest.Build(t, oneGroup(8, mdftest.Float64Records(1, 2, 3), mdftest.Float64("x", 0)))
	f, err := OpenSource(bytes.NewReader(data), WithMetrics(m))
	require.NoError(t, err)

	opened := testutil.ToFloat64(m.Reads)
	require.Greater(t, opened, 0.0)
	require.Zero(t, testutil.ToFloat64(m.Errors))

	before := testutil.ToFloat64(m.BytesRead)
	_, err = firstGroup(t, f).Channels()[0].ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, before+24, testutil.ToFloat64(m.BytesRead), "one read of the record data")
	require.Greater(t, testutil.ToFloat64(m.Reads), opened)
}

func TestSourceMetricsWithOpen(t *testing.T) {
	data := mdftest.Build(t, oneGroup(8, mdftest.Float64Records(1), mdftest.Float64("x", 0)))
	path := filepath.Join(t.TempDir(), "m.mf4")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	reg := prometheus.NewRegistry()
	m := NewSourceMetrics(reg)
	f, err := Open(path, WithMetrics(m))
	require.NoError(t, err)
	defer f.Close()

	require.Greater(t, testutil.ToFloat64(m.Reads), 0.0)
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestInstrumentSourceNil(t *testing.T) {
	src := bytes.NewReader([]byte("x"))
	require.Same(t, Source(src), InstrumentSource(src, nil))
}
