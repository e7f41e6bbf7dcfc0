package mdf4

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-mdf4/internal/mdftest"
)

func openFixture(t *testing.T, fixture *mdftest.File, opts ...Option) *File {
	t.Helper()
	f, err := OpenSource(bytes.NewReader(mdftest.Build(t, fixture)), opts...)
	require.NoError(t, err)
	return f
}

// oneGroup describes a file with a single sorted channel group.
func oneGroup(dataBytes uint32, records [][]byte, channels ...mdftest.Channel) *mdftest.File {
	return &mdftest.File{
		Groups: []mdftest.DataGroup{{
			ChannelGroups: []mdftest.ChannelGroup{{
				DataBytes: dataBytes,
				Channels:  channels,
				Records:   records,
			}},
		}},
	}
}

func firstGroup(t *testing.T, f *File) *ChannelGroup {
	t.Helper()
	require.NotEmpty(t, f.DataGroups())
	require.NotEmpty(t, f.DataGroups()[0].ChannelGroups())
	return f.DataGroups()[0].ChannelGroups()[0]
}

// trackingSource records the furthest byte read.
type trackingSource struct {
	*bytes.Reader
	mu  sync.Mutex
	end int64
}

func (s *trackingSource) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	s.end = max(s.end, off+int64(len(p)))
	s.mu.Unlock()
	return s.Reader.ReadAt(p, off)
}

func bytesReader(t *testing.T, fixture *mdftest.File) *bytes.Reader {
	t.Helper()
	return bytes.NewReader(mdftest.Build(t, fixture))
}
