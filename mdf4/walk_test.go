package mdf4

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-mdf4/internal/mdftest"
)

func walkFixture() *mdftest.File {
	return &mdftest.File{
		Groups: []mdftest.DataGroup{
			{
				RecordIDSize: 1,
				ChannelGroups: []mdftest.ChannelGroup{
					{RecordID: 1, DataBytes: 8, Channels: []mdftest.Channel{mdftest.Float64("a", 0), mdftest.Float64("b", 0)}},
					{RecordID: 2, DataBytes: 8, Channels: []mdftest.Channel{mdftest.Float64("c", 0)}},
				},
			},
			{
				ChannelGroups: []mdftest.ChannelGroup{
					{DataBytes: 4, Channels: []mdftest.Channel{mdftest.Uint("d", 0, 0, 32)}},
				},
			},
		},
	}
}

func TestWalk(t *testing.T) {
	f := openFixture(t, walkFixture())

	var paths []string
	err := Walk(f, func(path string, obj any) error {
		switch obj.(type) {
		case *DataGroup, *ChannelGroup, *Channel:
		default:
			t.Fatalf("unexpected object %T", obj)
		}
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"/0", "/0/0", "/0/0/a", "/0/0/b", "/0/1", "/0/1/c",
		"/1", "/1/0", "/1/0/d",
	}, paths)
}

func TestWalkSkipChildren(t *testing.T) {
	f := openFixture(t, walkFixture())

	var paths []string
	err := Walk(f, func(path string, obj any) error {
		paths = append(paths, path)
		if dg, ok := obj.(*DataGroup); ok && dg.Index() == 0 {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"/0", "/1", "/1/0", "/1/0/d"}, paths)
}

func TestWalkStop(t *testing.T) {
	f := openFixture(t, walkFixture())

	var n int
	err := Walk(f, func(path string, obj any) error {
		n++
		if _, ok := obj.(*Channel); ok {
			return ErrStopWalk
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	boom := errors.New("boom")
	err = Walk(f, func(path string, obj any) error { return boom })
	require.ErrorIs(t, err, boom)
}
