package mdf4

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-mdf4/internal/mdftest"
)

func TestOpenStructure(t *testing.T) {
	src := &mdftest.Source{Name: "ECU1", Path: "CAN1/ECU1", Type: 1}
	fixture := &mdftest.File{
		Program:     "go-mdf4",
		StartTimeNs: uint64(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixNano()),
		Comment:     "<HDcomment><TX>bench run</TX></HDcomment>",
		Groups: []mdftest.DataGroup{
			{
				Comment: "first",
				ChannelGroups: []mdftest.ChannelGroup{{
					AcqName:   "10ms",
					Source:    src,
					DataBytes: 16,
					Channels: []mdftest.Channel{
						{Name: "time", Unit: "s", Type: 2, SyncType: 1, DataType: 4, BitCount: 64},
						{Name: "speed", Unit: "km/h", Comment: "vehicle speed", DataType: 4, ByteOffset: 8, BitCount: 64, Source: src},
					},
					Records: [][]byte{make([]byte, 16)},
				}},
			},
			{
				ChannelGroups: []mdftest.ChannelGroup{{
					DataBytes: 4,
					Channels:  []mdftest.Channel{mdftest.Uint("counter", 0, 0, 32)},
					Records:   mdftest.Uint32Records(1, 2),
				}},
			},
		},
	}
	f := openFixture(t, fixture)

	require.Equal(t, 410, f.Version())
	require.Equal(t, "4.10", f.VersionString())
	require.Equal(t, "go-mdf4", f.Program())
	require.Equal(t, "<HDcomment><TX>bench run</TX></HDcomment>", f.Comment())
	require.True(t, f.StartTime().Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	dgs := f.DataGroups()
	require.Len(t, dgs, 2)
	require.Equal(t, "first", dgs[0].Comment())
	require.True(t, dgs[0].Sorted())
	require.Same(t, f, dgs[1].File())

	cg := dgs[0].ChannelGroups()[0]
	require.Equal(t, "10ms", cg.Name())
	require.Equal(t, uint64(1), cg.CycleCount())
	require.Equal(t, uint64(16), cg.RecordLength())
	require.Equal(t, "ECU1", cg.Source().Name)
	require.Equal(t, SourceECU, cg.Source().Type)

	chs := cg.Channels()
	require.Len(t, chs, 2)
	require.Equal(t, "time", chs[0].Name())
	require.True(t, chs[0].IsMaster())
	require.Same(t, chs[0], cg.Master())
	require.Equal(t, "km/h", chs[1].Unit())
	require.Equal(t, "vehicle speed", chs[1].Comment())
	require.Equal(t, FloatLE, chs[1].DataType())
	require.Equal(t, uint32(8), chs[1].ByteOffset())
	require.Same(t, cg.Source(), chs[1].Source(), "shared source parsed once")
	require.Same(t, cg, chs[1].Group())
	require.Nil(t, chs[1].Conversion())

	counter := dgs[1].ChannelGroups()[0].Channels()[0]
	require.Equal(t, "/1/0/counter", counter.Path())
}

func TestOpenNotMDF4(t *testing.T) {
	data := make([]byte, 4096)
	copy(data, "MDF     3.30    ")
	copy(data[64:], "##HD")
	src := &trackingSource{Reader: bytes.NewReader(data)}

	_, err := OpenSource(src)
	require.ErrorIs(t, err, ErrNotMDF4)
	require.ErrorIs(t, err, ErrFormat)
	require.LessOrEqual(t, src.end, int64(64), "no block past the ID block may be read")

	copy(data, "HDF5    ")
	src = &trackingSource{Reader: bytes.NewReader(data)}
	_, err = OpenSource(src)
	require.ErrorIs(t, err, ErrNotMDF4)
	require.LessOrEqual(t, src.end, int64(64))
}

func TestOpenUnsupportedVersion(t *testing.T) {
	data := mdftest.Build(t, &mdftest.File{Version: 500})
	_, err := OpenSource(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestOpenEmptyFile(t *testing.T) {
	f := openFixture(t, &mdftest.File{})
	require.Empty(t, f.DataGroups())

	_, err := f.DataGroup(0)
	require.ErrorIs(t, err, ErrRange)
}

func TestOpenCyclicDataGroups(t *testing.T) {
	fixture := &mdftest.File{
		Groups: []mdftest.DataGroup{
			{ChannelGroups: []mdftest.ChannelGroup{{DataBytes: 8, Channels: []mdftest.Channel{mdftest.Float64("a", 0)}}}},
			{ChannelGroups: []mdftest.ChannelGroup{{DataBytes: 8, Channels: []mdftest.Channel{mdftest.Float64("b", 0)}}}},
		},
		CycleDataGroups: true,
	}
	_, err := OpenSource(bytes.NewReader(mdftest.Build(t, fixture)))
	require.ErrorIs(t, err, ErrCyclicLink)
	require.ErrorIs(t, err, ErrFormat)
}

func TestOpenCyclicChannels(t *testing.T) {
	fixture := oneGroup(8, nil, mdftest.Float64("a", 0), mdftest.Float64("b", 0))
	fixture.Groups[0].ChannelGroups[0].CycleChannels = true

	_, err := OpenSource(bytes.NewReader(mdftest.Build(t, fixture)))
	require.ErrorIs(t, err, ErrCyclicLink)
}

func TestOpenSelfLinkedChannel(t *testing.T) {
	fixture := oneGroup(8, nil, mdftest.Float64("a", 0))
	fixture.Groups[0].ChannelGroups[0].CycleChannels = true

	_, err := OpenSource(bytes.NewReader(mdftest.Build(t, fixture)))
	require.ErrorIs(t, err, ErrCyclicLink)
}

func TestOpenTruncatedFile(t *testing.T) {
	data := mdftest.Build(t, oneGroup(8, mdftest.Float64Records(1, 2), mdftest.Float64("x", 0)))

	for _, cut := range []int{70, 100, 200} {
		_, err := OpenSource(bytes.NewReader(data[:cut]))
		require.Error(t, err, "cut at %d", cut)
		require.ErrorIs(t, err, ErrFormat, "cut at %d", cut)
	}
}

func TestOpenParallelMatchesSequential(t *testing.T) {
	fixture := &mdftest.File{}
	shared := mdftest.Linear(2, 0)
	for i := range 12 {
		fixture.Groups = append(fixture.Groups, mdftest.DataGroup{
			ChannelGroups: []mdftest.ChannelGroup{{
				DataBytes: 4,
				Channels: []mdftest.Channel{
					{Name: string(rune('a' + i)), DataType: 0, BitCount: 32, Conversion: shared},
				},
				Records: mdftest.Uint32Records(uint32(i), uint32(i+1)),
			}},
		})
	}
	data := mdftest.Build(t, fixture)

	seq, err := OpenSource(bytes.NewReader(data))
	require.NoError(t, err)
	par, err := OpenSource(bytes.NewReader(data), WithConcurrency(4))
	require.NoError(t, err)

	require.Len(t, par.DataGroups(), len(seq.DataGroups()))
	for i, dg := range par.DataGroups() {
		require.Equal(t, i, dg.Index())
		want := seq.DataGroups()[i].ChannelGroups()[0].Channels()[0]
		got := dg.ChannelGroups()[0].Channels()[0]
		require.Equal(t, want.Name(), got.Name())

		vals, err := got.ReadFloat64()
		require.NoError(t, err)
		require.Equal(t, []float64{float64(2 * i), float64(2 * (i + 1))}, vals)
	}

	first := par.DataGroups()[0].ChannelGroups()[0].Channels()[0].Conversion()
	last := par.DataGroups()[11].ChannelGroups()[0].Channels()[0].Conversion()
	require.Same(t, first, last, "shared conversion parsed once")
}

func TestOpenPath(t *testing.T) {
	data := mdftest.Build(t, oneGroup(8, mdftest.Float64Records(1.5, 2.5), mdftest.Float64("x", 0)))
	path := filepath.Join(t.TempDir(), "rec.mf4")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Path())

	vals, err := firstGroup(t, f).Channels()[0].ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 2.5}, vals)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close(), "second Close is a no-op")

	_, err = firstGroup(t, f).Channels()[0].ReadFloat64()
	require.ErrorIs(t, err, ErrClosed)
}

func TestOpenMissingPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mf4"))
	require.ErrorIs(t, err, ErrIO)
}

func TestLookup(t *testing.T) {
	f := openFixture(t, oneGroup(8, mdftest.Float64Records(4), mdftest.Float64("CAN/Speed", 0)))

	ch, err := f.Lookup("/0/0/CAN/Speed")
	require.NoError(t, err)
	require.Equal(t, "CAN/Speed", ch.Name())
	require.Equal(t, "/0/0/CAN/Speed", ch.Path())

	_, err = f.Lookup("/0/0/missing")
	require.ErrorIs(t, err, ErrRange)
	_, err = f.Lookup("/0/3/CAN/Speed")
	require.ErrorIs(t, err, ErrRange)
	_, err = f.Lookup("/9/0/x")
	require.ErrorIs(t, err, ErrRange)
	_, err = f.Lookup("/zero/0/x")
	require.Error(t, err)
}

func TestParseChannelPath(t *testing.T) {
	tests := []struct {
		path    string
		dg, cg  int
		name    string
		wantErr bool
	}{
		{"/0/0/EngineSpeed", 0, 0, "EngineSpeed", false},
		{"2/1/CAN/Frame.ID", 2, 1, "CAN/Frame.ID", false},
		{"/0/0/", 0, 0, "", true},
		{"/0/speed", 0, 0, "", true},
		{"/-1/0/x", 0, 0, "", true},
		{"", 0, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			dg, cg, name, err := ParseChannelPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.dg, dg)
			require.Equal(t, tt.cg, cg)
			require.Equal(t, tt.name, name)
			require.Equal(t, "/"+strings.TrimPrefix(tt.path, "/"), JoinChannelPath(dg, cg, name))
		})
	}
}
