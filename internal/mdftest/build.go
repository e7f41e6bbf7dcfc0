package mdftest

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/robert-malhotra/go-mdf4/internal/alloc"
	binpkg "github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/idblock"
)

// Build encodes f and fails the test on error.
func Build(tb testing.TB, f *File) []byte {
	tb.Helper()
	data, err := f.Bytes()
	if err != nil {
		tb.Fatalf("building MDF4 file: %v", err)
	}
	return data
}

// Bytes encodes the file.
func (f *File) Bytes() ([]byte, error) {
	b := &builder{
		alloc: alloc.New(idblock.HeaderOffset),
		ccs:   make(map[*Conversion]uint64),
		sis:   make(map[*Source]uint64),
	}
	b.w = binpkg.NewWriter(&b.buf)

	version := f.Version
	if version == 0 {
		version = 410
	}
	if err := idblock.Write(b.w, version, f.Program); err != nil {
		return nil, err
	}
	b.file(f)
	if b.err != nil {
		return nil, b.err
	}
	if err := b.alloc.Validate(); err != nil {
		return nil, err
	}
	return b.buf.Bytes(), nil
}

type builder struct {
	buf   binpkg.Buffer
	w     *binpkg.Writer
	alloc *alloc.Allocator
	ccs   map[*Conversion]uint64
	sis   map[*Source]uint64
	err   error
}

func (b *builder) reserve(sig block.Signature, links, dataSize int) uint64 {
	return b.alloc.Alloc(block.Size(links, dataSize), string(sig))
}

func (b *builder) put(off uint64, sig block.Signature, links []uint64, data []byte) {
	if b.err != nil {
		return
	}
	_, b.err = block.Write(b.w, off, sig, links, data)
}

func (b *builder) block(sig block.Signature, links []uint64, data []byte) uint64 {
	off := b.reserve(sig, len(links), len(data))
	b.put(off, sig, links, data)
	return off
}

func (b *builder) text(sig block.Signature, s string) uint64 {
	if s == "" {
		return 0
	}
	data := []byte(s)
	data = append(data, make([]byte, 8-len(data)%8)...)
	return b.block(sig, nil, data)
}

func (b *builder) file(f *File) {
	hd := b.reserve(block.SigHD, 6, 32)

	dgs := make([]uint64, len(f.Groups))
	for i := range f.Groups {
		dgs[i] = b.reserve(block.SigDG, 4, 8)
	}
	for i := range f.Groups {
		next := uint64(0)
		switch {
		case i+1 < len(dgs):
			next = dgs[i+1]
		case f.CycleDataGroups:
			next = dgs[0]
		}
		b.dataGroup(dgs[i], next, &f.Groups[i])
	}

	var fixed []byte
	fixed = binary.LittleEndian.AppendUint64(fixed, f.StartTimeNs)
	fixed = append(fixed, make([]byte, 8)...) // tz, dst, flags, class, flags, reserved
	fixed = binary.LittleEndian.AppendUint64(fixed, math.Float64bits(0))
	fixed = binary.LittleEndian.AppendUint64(fixed, math.Float64bits(0))
	b.put(hd, block.SigHD, []uint64{first(dgs), 0, 0, 0, 0, b.text(block.SigMD, f.Comment)}, fixed)
}

func (b *builder) dataGroup(off, next uint64, dg *DataGroup) {
	cgs := make([]uint64, len(dg.ChannelGroups))
	for i := range dg.ChannelGroups {
		cgs[i] = b.channelGroup(&dg.ChannelGroups[i])
	}
	for i := 0; i+1 < len(cgs); i++ {
		b.patchLink(cgs[i], 0, cgs[i+1])
	}

	data := dg.Data
	if data == nil {
		data = records(dg)
	}
	link := b.data(dg, data)

	fixed := make([]byte, 8)
	fixed[0] = dg.RecordIDSize
	b.put(off, block.SigDG, []uint64{next, first(cgs), link, b.text(block.SigMD, dg.Comment)}, fixed)
}

// patchLink overwrites link i of the block at off.
func (b *builder) patchLink(off uint64, i int, target uint64) {
	if b.err != nil {
		return
	}
	b.err = b.w.At(int64(off) + block.HeaderSize + int64(i)*8).WriteUint64(target)
}

func (b *builder) channelGroup(cg *ChannelGroup) uint64 {
	off := b.reserve(block.SigCG, 6, 32)

	cns := make([]uint64, len(cg.Channels))
	for i := range cg.Channels {
		cns[i] = b.reserve(block.SigCN, 8, 72)
	}
	for i := range cg.Channels {
		next := uint64(0)
		switch {
		case i+1 < len(cns):
			next = cns[i+1]
		case cg.CycleChannels:
			next = cns[0]
		}
		b.channel(cns[i], next, &cg.Channels[i])
	}

	cycles := cg.Cycles
	if cycles == 0 {
		cycles = uint64(len(cg.Records))
	}
	var fixed []byte
	fixed = binary.LittleEndian.AppendUint64(fixed, cg.RecordID)
	fixed = binary.LittleEndian.AppendUint64(fixed, cycles)
	fixed = binary.LittleEndian.AppendUint16(fixed, cg.Flags)
	fixed = binary.LittleEndian.AppendUint16(fixed, 0)
	fixed = append(fixed, 0, 0, 0, 0)
	fixed = binary.LittleEndian.AppendUint32(fixed, cg.DataBytes)
	fixed = binary.LittleEndian.AppendUint32(fixed, cg.InvalBytes)

	links := []uint64{0, first(cns), b.text(block.SigTX, cg.AcqName), b.source(cg.Source), 0, b.text(block.SigMD, cg.Comment)}
	b.put(off, block.SigCG, links, fixed)
	return off
}

func (b *builder) channel(off, next uint64, cn *Channel) {
	var fixed []byte
	fixed = append(fixed, cn.Type, cn.SyncType, cn.DataType, cn.BitOffset)
	fixed = binary.LittleEndian.AppendUint32(fixed, cn.ByteOffset)
	fixed = binary.LittleEndian.AppendUint32(fixed, cn.BitCount)
	fixed = binary.LittleEndian.AppendUint32(fixed, cn.Flags)
	fixed = binary.LittleEndian.AppendUint32(fixed, cn.InvalBitPos)
	fixed = append(fixed, 0, 0, 0, 0) // precision, reserved, attachment count
	fixed = append(fixed, make([]byte, 48)...)

	links := []uint64{
		next, 0,
		b.text(block.SigTX, cn.Name),
		b.source(cn.Source),
		b.conversion(cn.Conversion),
		0,
		b.text(block.SigTX, cn.Unit),
		b.text(block.SigMD, cn.Comment),
	}
	b.put(off, block.SigCN, links, fixed)
}

func (b *builder) conversion(cc *Conversion) uint64 {
	if cc == nil {
		return 0
	}
	if off, ok := b.ccs[cc]; ok {
		return off
	}
	var fixed []byte
	fixed = append(fixed, cc.Type, 0, 0, 0)
	fixed = binary.LittleEndian.AppendUint16(fixed, 0)
	fixed = binary.LittleEndian.AppendUint16(fixed, uint16(len(cc.Values)))
	fixed = append(fixed, make([]byte, 16)...)
	for _, v := range cc.Values {
		fixed = binary.LittleEndian.AppendUint64(fixed, math.Float64bits(v))
	}
	links := []uint64{b.text(block.SigTX, cc.Name), b.text(block.SigTX, cc.Unit), 0, 0}
	off := b.block(block.SigCC, links, fixed)
	b.ccs[cc] = off
	return off
}

func (b *builder) source(si *Source) uint64 {
	if si == nil {
		return 0
	}
	if off, ok := b.sis[si]; ok {
		return off
	}
	fixed := []byte{si.Type, si.BusType, 0, 0, 0, 0, 0, 0}
	links := []uint64{
		b.text(block.SigTX, si.Name),
		b.text(block.SigTX, si.Path),
		b.text(block.SigMD, si.Comment),
	}
	off := b.block(block.SigSI, links, fixed)
	b.sis[si] = off
	return off
}

func (b *builder) data(dg *DataGroup, data []byte) uint64 {
	if dg.Compressed {
		return b.block(block.SigDZ, nil, make([]byte, 24+len(data)))
	}
	if len(data) == 0 {
		return 0
	}
	if len(dg.Split) == 0 {
		return b.block(block.SigDT, nil, data)
	}

	var chunks [][]byte
	for _, n := range dg.Split {
		n = min(n, len(data))
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	if len(data) > 0 {
		chunks = append(chunks, data)
	}

	per := dg.PerList
	if per <= 0 {
		per = len(chunks)
	}
	var lists [][][]byte
	for len(chunks) > 0 {
		n := min(per, len(chunks))
		lists = append(lists, chunks[:n])
		chunks = chunks[n:]
	}

	dls := make([]uint64, len(lists))
	for i, l := range lists {
		dls[i] = b.reserve(block.SigDL, 1+len(l), 8+8*len(l))
	}
	var logical uint64
	for i, l := range lists {
		links := []uint64{0}
		if i+1 < len(dls) {
			links[0] = dls[i+1]
		}
		fixed := []byte{0, 0, 0, 0}
		fixed = binary.LittleEndian.AppendUint32(fixed, uint32(len(l)))
		for _, c := range l {
			links = append(links, b.block(block.SigDT, nil, c))
			fixed = binary.LittleEndian.AppendUint64(fixed, logical)
			logical += uint64(len(c))
		}
		b.put(dls[i], block.SigDL, links, fixed)
	}
	return dls[0]
}

// records concatenates the channel group records, each prefixed by its
// record id.
func records(dg *DataGroup) []byte {
	var out []byte
	emit := func(cg *ChannelGroup, rec []byte) {
		out = appendID(out, cg.RecordID, dg.RecordIDSize)
		if cg.Flags&block.CGFlagVLSD != 0 {
			out = binary.LittleEndian.AppendUint32(out, uint32(len(rec)))
		}
		out = append(out, rec...)
	}

	if !dg.Interleave {
		for i := range dg.ChannelGroups {
			cg := &dg.ChannelGroups[i]
			for _, rec := range cg.Records {
				emit(cg, rec)
			}
		}
		return out
	}
	for n := 0; ; n++ {
		wrote := false
		for i := range dg.ChannelGroups {
			cg := &dg.ChannelGroups[i]
			if n < len(cg.Records) {
				emit(cg, cg.Records[n])
				wrote = true
			}
		}
		if !wrote {
			return out
		}
	}
}

func appendID(b []byte, id uint64, size uint8) []byte {
	switch size {
	case 0:
		return b
	case 1:
		return append(b, uint8(id))
	case 2:
		return binary.LittleEndian.AppendUint16(b, uint16(id))
	case 4:
		return binary.LittleEndian.AppendUint32(b, uint32(id))
	case 8:
		return binary.LittleEndian.AppendUint64(b, id)
	}
	panic(fmt.Sprintf("mdftest: record id size %d", size))
}

func first(offs []uint64) uint64 {
	if len(offs) == 0 {
		return 0
	}
	return offs[0]
}
