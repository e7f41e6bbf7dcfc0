package mdf4

import (
	"fmt"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/robert-malhotra/go-mdf4/internal/binary"
	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/conversion"
	"github.com/robert-malhotra/go-mdf4/internal/dtype"
	"github.com/robert-malhotra/go-mdf4/internal/errs"
	"github.com/robert-malhotra/go-mdf4/internal/layout"
)

// indexer builds the File graph. Conversion and source blocks are shared
// between channels, so they are parsed once per offset.
type indexer struct {
	file   *File
	r      *binary.Reader
	logger log.Logger

	mu      sync.Mutex
	convs   map[uint64]*conversion.Conversion
	sources map[uint64]*SourceInfo
}

func newIndexer(f *File) *indexer {
	return &indexer{
		file:    f,
		r:       f.reader,
		logger:  f.opts.logger,
		convs:   make(map[uint64]*conversion.Conversion),
		sources: make(map[uint64]*SourceInfo),
	}
}

// chain follows a singly linked block list. visit returns the next link.
func chain(first uint64, what string, visit func(off uint64) (uint64, error)) error {
	visited := make(map[uint64]struct{})
	for off := first; off != 0; {
		if _, ok := visited[off]; ok {
			return fmt.Errorf("%w: %s list revisits %#x", errs.ErrCyclicLink, what, off)
		}
		visited[off] = struct{}{}
		next, err := visit(off)
		if err != nil {
			return err
		}
		off = next
	}
	return nil
}

func (ix *indexer) dataGroups(first uint64) ([]*DataGroup, error) {
	var dgs []*block.DG
	err := chain(first, "data group", func(off uint64) (uint64, error) {
		dg, err := block.ReadDG(ix.r, off)
		if err != nil {
			return 0, fmt.Errorf("reading data group at %#x: %w", off, err)
		}
		dgs = append(dgs, dg)
		return dg.Next, nil
	})
	if err != nil {
		return nil, err
	}

	groups := make([]*DataGroup, len(dgs))
	var g errgroup.Group
	g.SetLimit(ix.file.opts.concurrency)
	for i, dg := range dgs {
		g.Go(func() error {
			parsed, err := ix.dataGroup(i, dg)
			if err != nil {
				return fmt.Errorf("data group %d: %w", i, err)
			}
			groups[i] = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (ix *indexer) dataGroup(index int, b *block.DG) (*DataGroup, error) {
	dg := &DataGroup{
		file:         ix.file,
		index:        index,
		offset:       b.Offset,
		recordIDSize: b.RecordIDSize,
	}
	switch b.RecordIDSize {
	case 0, 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%w: record id size %d", errs.ErrFormat, b.RecordIDSize)
	}

	var err error
	if dg.comment, err = block.ReadText(ix.r, b.MDComment); err != nil {
		return nil, fmt.Errorf("reading comment: %w", err)
	}

	err = chain(b.CGFirst, "channel group", func(off uint64) (uint64, error) {
		cg, next, err := ix.channelGroup(dg, len(dg.groups), off)
		if err != nil {
			return 0, fmt.Errorf("reading channel group at %#x: %w", off, err)
		}
		dg.groups = append(dg.groups, cg)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	if dg.data, err = layout.New(ix.r, b.Data); err != nil {
		return nil, err
	}
	if verr := dg.data.Validate(); verr != nil {
		level.Debug(ix.logger).Log("msg", "data group data not decodable", "index", index, "err", verr)
	}
	if len(dg.groups) > 1 && b.RecordIDSize == 0 {
		return nil, fmt.Errorf("%w: %d channel groups share a data group without record ids", errs.ErrFormat, len(dg.groups))
	}

	level.Debug(ix.logger).Log("msg", "data group parsed", "index", index, "offset", fmt.Sprintf("%#x", b.Offset),
		"channel_groups", len(dg.groups), "data_bytes", dg.data.Size())
	return dg, nil
}

func (ix *indexer) channelGroup(dg *DataGroup, index int, off uint64) (*ChannelGroup, uint64, error) {
	b, err := block.ReadCG(ix.r, off)
	if err != nil {
		return nil, 0, err
	}
	cg := &ChannelGroup{
		dg:         dg,
		index:      index,
		offset:     off,
		recordID:   b.RecordID,
		cycles:     b.CycleCount,
		flags:      b.Flags,
		dataBytes:  b.DataBytes,
		invalBytes: b.InvalBytes,
	}
	if cg.name, err = block.ReadText(ix.r, b.TXAcqName); err != nil {
		return nil, 0, fmt.Errorf("reading acquisition name: %w", err)
	}
	if cg.comment, err = block.ReadText(ix.r, b.MDComment); err != nil {
		return nil, 0, fmt.Errorf("reading comment: %w", err)
	}
	if cg.source, err = ix.source(b.SIAcqSource); err != nil {
		return nil, 0, err
	}
	if cg.IsVLSD() || cg.flags&(block.CGFlagBusEvent|block.CGFlagPlainBusEvent) != 0 {
		level.Debug(ix.logger).Log("msg", "channel group not decodable", "flags", b.Flags, "offset", fmt.Sprintf("%#x", off))
	}

	err = chain(b.CNFirst, "channel", func(off uint64) (uint64, error) {
		ch, next, err := ix.channel(cg, len(cg.channels), off)
		if err != nil {
			return 0, fmt.Errorf("reading channel at %#x: %w", off, err)
		}
		cg.channels = append(cg.channels, ch)
		return next, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return cg, b.Next, nil
}

func (ix *indexer) channel(cg *ChannelGroup, index int, off uint64) (*Channel, uint64, error) {
	b, err := block.ReadCN(ix.r, off)
	if err != nil {
		return nil, 0, err
	}
	ch := &Channel{
		cg:          cg,
		index:       index,
		offset:      off,
		kind:        ChannelType(b.Type),
		syncType:    b.SyncType,
		flags:       b.Flags,
		invalBitPos: b.InvalBitPos,
		field: dtype.Field{
			Type:       dtype.DataType(b.DataType),
			ByteOffset: b.ByteOffset,
			BitOffset:  b.BitOffset,
			BitCount:   b.BitCount,
		},
	}
	if ch.name, err = block.ReadText(ix.r, b.TXName); err != nil {
		return nil, 0, fmt.Errorf("reading name: %w", err)
	}
	if ch.unit, err = block.ReadText(ix.r, b.MDUnit); err != nil {
		return nil, 0, fmt.Errorf("reading unit: %w", err)
	}
	if ch.comment, err = block.ReadText(ix.r, b.MDComment); err != nil {
		return nil, 0, fmt.Errorf("reading comment: %w", err)
	}
	if ch.source, err = ix.source(b.SISource); err != nil {
		return nil, 0, err
	}

	conv, err := ix.conversion(b.CCConversion)
	if err != nil {
		return nil, 0, err
	}
	if ch.field.Type.IsFloat() {
		conv = conv.WithFloatInput()
	}
	ch.conv = conv
	if ch.unit == "" && conv != nil {
		ch.unit = conv.Unit
	}
	return ch, b.Next, nil
}

func (ix *indexer) conversion(off uint64) (*conversion.Conversion, error) {
	if off == 0 {
		return nil, nil
	}
	ix.mu.Lock()
	c, ok := ix.convs[off]
	ix.mu.Unlock()
	if ok {
		return c, nil
	}

	b, err := block.ReadCC(ix.r, off)
	if err != nil {
		return nil, fmt.Errorf("reading conversion at %#x: %w", off, err)
	}
	c, err = conversion.FromBlock(b)
	if err != nil {
		return nil, err
	}
	if c.Name, err = block.ReadText(ix.r, b.TXName); err != nil {
		return nil, fmt.Errorf("reading conversion name: %w", err)
	}
	if c.Unit, err = block.ReadText(ix.r, b.MDUnit); err != nil {
		return nil, fmt.Errorf("reading conversion unit: %w", err)
	}
	if c.Comment, err = block.ReadText(ix.r, b.MDComment); err != nil {
		return nil, fmt.Errorf("reading conversion comment: %w", err)
	}
	if !c.Kind.Supported() {
		level.Debug(ix.logger).Log("msg", "unsupported conversion", "kind", c.Kind, "offset", fmt.Sprintf("%#x", off))
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if prev, ok := ix.convs[off]; ok {
		return prev, nil
	}
	ix.convs[off] = c
	return c, nil
}

func (ix *indexer) source(off uint64) (*SourceInfo, error) {
	if off == 0 {
		return nil, nil
	}
	ix.mu.Lock()
	s, ok := ix.sources[off]
	ix.mu.Unlock()
	if ok {
		return s, nil
	}

	b, err := block.ReadSI(ix.r, off)
	if err != nil {
		return nil, fmt.Errorf("reading source information at %#x: %w", off, err)
	}
	s = &SourceInfo{Type: SourceType(b.Type), BusType: b.BusType}
	if s.Name, err = block.ReadText(ix.r, b.TXName); err != nil {
		return nil, fmt.Errorf("reading source name: %w", err)
	}
	if s.Path, err = block.ReadText(ix.r, b.TXPath); err != nil {
		return nil, fmt.Errorf("reading source path: %w", err)
	}
	if s.Comment, err = block.ReadText(ix.r, b.MDComment); err != nil {
		return nil, fmt.Errorf("reading source comment: %w", err)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if prev, ok := ix.sources[off]; ok {
		return prev, nil
	}
	ix.sources[off] = s
	return s, nil
}
