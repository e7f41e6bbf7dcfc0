package block

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	binpkg "github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
)

// file is a tiny fixture: blocks are appended after a 64-byte zero prefix so
// that no block sits at the null offset.
type file struct {
	buf binpkg.Buffer
	end uint64
}

func newFile() *file {
	f := &file{end: 64}
	f.buf.WriteAt(make([]byte, 64), 0)
	return f
}

func (f *file) add(t *testing.T, sig Signature, links []uint64, data []byte) uint64 {
	t.Helper()
	off := f.end
	n, err := Write(binpkg.NewWriter(&f.buf), off, sig, links, data)
	require.NoError(t, err)
	f.end += n
	return off
}

func (f *file) reader() *binpkg.Reader {
	return binpkg.NewReader(bytes.NewReader(f.buf.Bytes()))
}

func le(vals ...any) []byte {
	var b bytes.Buffer
	for _, v := range vals {
		binary.Write(&b, binary.LittleEndian, v)
	}
	return b.Bytes()
}

func TestReadHeader(t *testing.T) {
	f := newFile()
	off := f.add(t, SigDG, []uint64{0, 0, 0, 0}, make([]byte, 8))

	h, err := ReadHeader(f.reader(), off, SigDG)
	require.NoError(t, err)
	require.Equal(t, SigDG, h.Signature)
	require.Equal(t, uint64(24+32+8), h.Length)
	require.Equal(t, uint64(4), h.LinkCount)
	require.Equal(t, off+24+32, h.DataOffset())
	require.Equal(t, uint64(8), h.DataSize())
}

func TestReadHeaderBadSignature(t *testing.T) {
	f := newFile()
	off := f.add(t, SigCG, nil, nil)

	_, err := ReadHeader(f.reader(), off, SigDG)
	require.ErrorIs(t, err, errs.ErrBadSignature)
	require.ErrorIs(t, err, errs.ErrFormat)

	// Zero prefix is not a block at all
	_, err = ReadHeader(f.reader(), 8)
	require.ErrorIs(t, err, errs.ErrBadSignature)
}

func TestReadHeaderTruncated(t *testing.T) {
	tests := []struct {
		name      string
		length    uint64
		linkCount uint64
		pad       int
	}{
		{"length below header", 16, 0, 0},
		{"links exceed length", 32, 4, 8},
		{"length past EOF", 4096, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, 64)
			data = append(data, "##DG"...)
			data = append(data, 0, 0, 0, 0)
			data = append(data, le(tt.length, tt.linkCount)...)
			data = append(data, make([]byte, tt.pad)...)

			_, err := ReadHeader(binpkg.NewReader(bytes.NewReader(data)), 64, SigDG)
			require.ErrorIs(t, err, errs.ErrTruncatedBlock)
		})
	}
}

func TestReadHeaderOutsideFile(t *testing.T) {
	f := newFile()
	_, err := ReadHeader(f.reader(), 1<<20, SigDG)
	require.ErrorIs(t, err, errs.ErrTruncatedBlock)

	_, err = ReadHeader(f.reader(), 0, SigDG)
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestReadLinksDeferred(t *testing.T) {
	f := newFile()
	// Link targets far outside the file are returned untouched.
	off := f.add(t, SigDG, []uint64{1 << 40, 0, 12345, 0}, make([]byte, 8))

	dg, err := ReadDG(f.reader(), off)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), dg.Next)
	require.Equal(t, uint64(12345), dg.Data)
	require.Zero(t, dg.CGFirst)
}

func TestReadLinkCount(t *testing.T) {
	f := newFile()
	off := f.add(t, SigCG, []uint64{0, 0}, make([]byte, 32))

	_, err := ReadCG(f.reader(), off)
	require.ErrorIs(t, err, errs.ErrLinkCount)
}

func TestReadFixedTruncated(t *testing.T) {
	f := newFile()
	off := f.add(t, SigCG, make([]uint64, 6), make([]byte, 16))

	_, err := ReadCG(f.reader(), off)
	require.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestReadHD(t *testing.T) {
	f := newFile()
	data := le(uint64(1_600_000_000_000_000_000), int16(60), int16(0), uint8(HDTimeOffsetsSet), uint8(0), uint8(0), uint8(0), 0.0, 0.0)
	off := f.add(t, SigHD, []uint64{999, 0, 0, 0, 0, 0}, data)

	hd, err := ReadHD(f.reader(), off)
	require.NoError(t, err)
	require.Equal(t, uint64(999), hd.DGFirst)
	require.Equal(t, uint64(1_600_000_000_000_000_000), hd.StartTimeNs)
	require.Equal(t, int16(60), hd.TZOffsetMinutes)
	require.Equal(t, uint8(HDTimeOffsetsSet), hd.TimeFlags)
}

func TestReadCG(t *testing.T) {
	f := newFile()
	data := le(uint64(3), uint64(1000), uint16(CGFlagVLSD), uint16('.'), uint32(0), uint32(12), uint32(1))
	off := f.add(t, SigCG, []uint64{11, 22, 33, 44, 0, 66}, data)

	cg, err := ReadCG(f.reader(), off)
	require.NoError(t, err)
	require.Equal(t, uint64(11), cg.Next)
	require.Equal(t, uint64(22), cg.CNFirst)
	require.Equal(t, uint64(33), cg.TXAcqName)
	require.Equal(t, uint64(44), cg.SIAcqSource)
	require.Equal(t, uint64(66), cg.MDComment)
	require.Equal(t, uint64(3), cg.RecordID)
	require.Equal(t, uint64(1000), cg.CycleCount)
	require.Equal(t, uint16(CGFlagVLSD), cg.Flags)
	require.Equal(t, uint32(12), cg.DataBytes)
	require.Equal(t, uint32(1), cg.InvalBytes)
}

func TestReadCN(t *testing.T) {
	f := newFile()
	data := le(
		uint8(CNTypeMaster), uint8(1), uint8(4), uint8(3),
		uint32(2), uint32(13), uint32(CNFlagInvalBitValid), uint32(5),
		uint8(0), uint8(0), uint16(0),
		-1.0, 1.0, 0.0, 0.0, 0.0, 0.0,
	)
	off := f.add(t, SigCN, []uint64{1, 2, 3, 4, 5, 6, 7, 8}, data)

	cn, err := ReadCN(f.reader(), off)
	require.NoError(t, err)
	require.Equal(t, uint64(3), cn.TXName)
	require.Equal(t, uint64(5), cn.CCConversion)
	require.Equal(t, uint64(7), cn.MDUnit)
	require.Equal(t, uint8(CNTypeMaster), cn.Type)
	require.Equal(t, uint8(4), cn.DataType)
	require.Equal(t, uint8(3), cn.BitOffset)
	require.Equal(t, uint32(2), cn.ByteOffset)
	require.Equal(t, uint32(13), cn.BitCount)
	require.Equal(t, uint32(5), cn.InvalBitPos)
	require.Equal(t, -1.0, cn.ValRangeMin)
}

func TestReadCC(t *testing.T) {
	f := newFile()
	data := le(uint8(1), uint8(0), uint16(0), uint16(1), uint16(2), 0.0, 0.0, 0.5, 2.0)
	off := f.add(t, SigCC, []uint64{0, 0, 0, 0, 777}, data)

	cc, err := ReadCC(f.reader(), off)
	require.NoError(t, err)
	require.Equal(t, uint8(1), cc.Type)
	require.Equal(t, []uint64{777}, cc.Refs)
	require.Equal(t, []float64{0.5, 2.0}, cc.Values)
}

func TestReadCCMissingValues(t *testing.T) {
	f := newFile()
	data := le(uint8(2), uint8(0), uint16(0), uint16(0), uint16(6), 0.0, 0.0, 1.0)
	off := f.add(t, SigCC, make([]uint64, 4), data)

	_, err := ReadCC(f.reader(), off)
	require.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestReadSI(t *testing.T) {
	f := newFile()
	off := f.add(t, SigSI, []uint64{10, 20, 30}, le(uint8(2), uint8(2), uint8(0), [5]byte{}))

	si, err := ReadSI(f.reader(), off)
	require.NoError(t, err)
	require.Equal(t, uint64(10), si.TXName)
	require.Equal(t, uint64(20), si.TXPath)
	require.Equal(t, uint8(2), si.Type)
	require.Equal(t, uint8(2), si.BusType)
}

func TestReadText(t *testing.T) {
	f := newFile()
	tx := f.add(t, SigTX, nil, []byte("engine_speed\x00\x00\x00\x00"))
	md := f.add(t, SigMD, nil, []byte("<CNcomment><TX>rpm</TX></CNcomment>\x00"))
	dg := f.add(t, SigDG, make([]uint64, 4), make([]byte, 8))

	s, err := ReadText(f.reader(), tx)
	require.NoError(t, err)
	require.Equal(t, "engine_speed", s)

	s, err = ReadText(f.reader(), md)
	require.NoError(t, err)
	require.Equal(t, "<CNcomment><TX>rpm</TX></CNcomment>", s)

	s, err = ReadText(f.reader(), 0)
	require.NoError(t, err)
	require.Empty(t, s)

	_, err = ReadText(f.reader(), dg)
	require.ErrorIs(t, err, errs.ErrBadSignature)
}

func TestReadDL(t *testing.T) {
	f := newFile()

	equal := f.add(t, SigDL, []uint64{0, 100, 200}, le(uint8(DLFlagEqualLength), [3]byte{}, uint32(2), uint64(64)))
	dl, err := ReadDL(f.reader(), equal)
	require.NoError(t, err)
	require.Equal(t, []uint64{100, 200}, dl.Data)
	require.Equal(t, uint64(64), dl.EqualLength)

	offsets := f.add(t, SigDL, []uint64{equal, 300, 400}, le(uint8(0), [3]byte{}, uint32(2), uint64(0), uint64(48)))
	dl, err = ReadDL(f.reader(), offsets)
	require.NoError(t, err)
	require.Equal(t, equal, dl.Next)
	require.Equal(t, []uint64{0, 48}, dl.Offsets)

	short := f.add(t, SigDL, []uint64{0, 100}, le(uint8(0), [3]byte{}, uint32(3), uint64(0), uint64(0), uint64(0)))
	_, err = ReadDL(f.reader(), short)
	require.ErrorIs(t, err, errs.ErrLinkCount)
}

func TestReadNaNValues(t *testing.T) {
	f := newFile()
	data := le(uint8(0), uint8(0), uint16(0), uint16(0), uint16(1), 0.0, 0.0, math.NaN())
	off := f.add(t, SigCC, make([]uint64, 4), data)

	cc, err := ReadCC(f.reader(), off)
	require.NoError(t, err)
	require.True(t, math.IsNaN(cc.Values[0]))
}
