package mdf4

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-mdf4/internal/mdftest"
)

func TestRangeTableClampsAtEdges(t *testing.T) {
	conv := &mdftest.Conversion{Type: 6, Values: []float64{0, 10, 1, 20, 30, 2, -1}}
	ch := mdftest.Channel{Name: "state", DataType: 2, BitCount: 8, Conversion: conv}
	recs := [][]byte{{byte(0x9C)}, {5}, {15}, {25}, {100}} // -100, 5, 15, 25, 100
	f := openFixture(t, oneGroup(1, recs, ch))

	vals, err := firstGroup(t, f).Channels()[0].ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, -1, 2, 2}, vals)
}

func TestRangeTableFloatChannel(t *testing.T) {
	conv := &mdftest.Conversion{Type: 6, Values: []float64{0, 10, 1, 10, 20, 2, 0}}
	fixture := &mdftest.File{
		Groups: []mdftest.DataGroup{{
			ChannelGroups: []mdftest.ChannelGroup{{
				DataBytes: 9,
				Channels: []mdftest.Channel{
					{Name: "f", DataType: 4, BitCount: 64, Conversion: conv},
					{Name: "i", DataType: 0, ByteOffset: 8, BitCount: 8, Conversion: conv},
				},
				Records: [][]byte{append(mdftest.Float64Records(10)[0], 10)},
			}},
		}},
	}
	f := openFixture(t, fixture)
	cg := firstGroup(t, f)

	fv, err := cg.Channels()[0].ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, []float64{2}, fv, "float channels use half-open ranges")

	iv, err := cg.Channels()[1].ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, []float64{1}, iv, "integer channels include the upper bound")
}

func TestRationalDivisionByZero(t *testing.T) {
	// raw / (raw - 2)
	conv := &mdftest.Conversion{Type: 2, Values: []float64{0, 1, 0, 0, 1, -2}}
	ch := mdftest.Uint("ratio", 0, 0, 32)
	ch.Conversion = conv
	f := openFixture(t, oneGroup(4, mdftest.Uint32Records(0, 2, 4), ch))

	vals, err := firstGroup(t, f).Channels()[0].ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 0.0, vals[0])
	require.True(t, math.IsNaN(vals[1]))
	require.Equal(t, 2.0, vals[2])

	_, err = firstGroup(t, f).Channels()[0].Conversion().Eval(2)
	require.ErrorIs(t, err, ErrDivisionByZero)
	require.ErrorIs(t, err, ErrArithmetic)
}

func TestUnsupportedConversionKeepsRaw(t *testing.T) {
	for _, kind := range []uint8{3, 7} {
		conv := &mdftest.Conversion{Type: kind}
		ch := mdftest.Uint("gear", 0, 0, 32)
		ch.Conversion = conv
		f := openFixture(t, oneGroup(4, mdftest.Uint32Records(1, 2, 3), ch))

		c := firstGroup(t, f).Channels()[0]
		require.False(t, c.Conversion().Kind.Supported())

		vals, err := c.ReadFloat64()
		require.ErrorIs(t, err, ErrUnsupported, "kind %d", kind)
		require.Equal(t, []float64{1, 2, 3}, vals, "raw values survive")

		raw, err := c.ReadRaw()
		require.NoError(t, err)
		require.Equal(t, vals, raw)
	}
}

func TestConversionMetadata(t *testing.T) {
	conv := &mdftest.Conversion{Type: 1, Name: "rpm scale", Unit: "rpm", Values: []float64{0, 60}}
	withUnit := mdftest.Uint("a", 0, 0, 8)
	withUnit.Unit = "1/s"
	withUnit.Conversion = conv
	without := mdftest.Uint("b", 0, 0, 8)
	without.Conversion = conv

	f := openFixture(t, oneGroup(1, [][]byte{{2}}, withUnit, without))
	cg := firstGroup(t, f)

	require.Equal(t, "1/s", cg.Channels()[0].Unit())
	require.Equal(t, "rpm", cg.Channels()[1].Unit(), "unit falls back to the conversion")
	require.Same(t, cg.Channels()[0].Conversion(), cg.Channels()[1].Conversion())
	require.Equal(t, "rpm scale", cg.Channels()[0].Conversion().Name)
	require.Equal(t, ConversionLinear, cg.Channels()[0].Conversion().Kind)

	vals, err := cg.Channels()[1].ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, []float64{120}, vals)
}

func TestMalformedConversionAbortsOpen(t *testing.T) {
	conv := &mdftest.Conversion{Type: 2, Values: []float64{1, 2}}
	ch := mdftest.Uint("x", 0, 0, 8)
	ch.Conversion = conv

	_, err := OpenSource(bytesReader(t, oneGroup(1, [][]byte{{1}}, ch)))
	require.ErrorIs(t, err, ErrFormat)
}

func TestApplyAllExported(t *testing.T) {
	c, err := NewConversion(ConversionTable, []float64{0, 10, 1, 20})
	require.NoError(t, err)

	vals := []float64{-1, 0.4, 0.6, 9}
	require.NoError(t, ApplyAll(c, vals))
	require.Equal(t, []float64{10, 10, 20, 20}, vals)

	_, err = NewConversion(ConversionRational, []float64{1})
	require.ErrorIs(t, err, ErrFormat)
}
