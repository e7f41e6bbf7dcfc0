package mdf4

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/robert-malhotra/go-mdf4/internal/block"
	"github.com/robert-malhotra/go-mdf4/internal/conversion"
	"github.com/robert-malhotra/go-mdf4/internal/dtype"
	"github.com/robert-malhotra/go-mdf4/internal/record"
)

// DecodeFloat64 returns the raw value of ch for every record of the group,
// in record order, before conversion. Virtual channels yield the record
// index.
//
// It fails with ErrRange if ch belongs to another group or its bits do not
// fit the record, ErrTypeMismatch for string and byte array channels and
// ErrUnsupported for VLSD, bus event and (without WithUnsortedScan) unsorted
// groups.
func (cg *ChannelGroup) DecodeFloat64(ch *Channel) ([]float64, error) {
	if err := cg.prepare(ch); err != nil {
		return nil, err
	}
	if ch.IsVirtual() {
		return cg.indices()
	}
	if !ch.field.Type.IsNumeric() {
		return nil, fmt.Errorf("%w: channel %q has data type %s", ErrTypeMismatch, ch.name, ch.field.Type)
	}

	out := make([]float64, 0, cg.capacity())
	err := cg.walk(func(_ uint64, rec []byte) error {
		out = append(out, ch.field.Float64(rec))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("channel %q: %w", ch.name, err)
	}
	return out, nil
}

// ReadPhysical decodes ch and applies its conversion. When the conversion is
// unsupported the raw values are returned together with an error wrapping
// ErrUnsupported. Values for which the conversion is undefined are NaN.
func (cg *ChannelGroup) ReadPhysical(ch *Channel) ([]float64, error) {
	values, err := cg.DecodeFloat64(ch)
	if err != nil {
		return nil, err
	}
	if err := conversion.ApplyAll(ch.conv, values); err != nil {
		return values, fmt.Errorf("channel %q: %w", ch.name, err)
	}
	return values, nil
}

// Time returns the physical values of the master channel, or the record
// index when the group has none.
func (cg *ChannelGroup) Time() ([]float64, error) {
	m := cg.Master()
	if m == nil {
		return cg.indices()
	}
	return cg.ReadPhysical(m)
}

// DecodeBytes returns the raw bytes of ch for every record.
func (cg *ChannelGroup) DecodeBytes(ch *Channel) ([][]byte, error) {
	if err := cg.prepare(ch); err != nil {
		return nil, err
	}
	if ch.IsVirtual() {
		return nil, fmt.Errorf("%w: virtual channel %q has no stored bytes", ErrTypeMismatch, ch.name)
	}

	out := make([][]byte, 0, cg.capacity())
	err := cg.walk(func(_ uint64, rec []byte) error {
		out = append(out, ch.field.Bytes(rec))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("channel %q: %w", ch.name, err)
	}
	return out, nil
}

// DecodeStrings decodes a string channel. Trailing NUL padding is removed.
func (cg *ChannelGroup) DecodeStrings(ch *Channel) ([]string, error) {
	if err := cg.prepare(ch); err != nil {
		return nil, err
	}
	if !ch.field.Type.IsString() {
		return nil, fmt.Errorf("%w: channel %q has data type %s", ErrTypeMismatch, ch.name, ch.field.Type)
	}

	out := make([]string, 0, cg.capacity())
	err := cg.walk(func(_ uint64, rec []byte) error {
		s, err := dtype.DecodeString(ch.field.Type, ch.field.Bytes(rec))
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("channel %q: %w", ch.name, err)
	}
	return out, nil
}

// DecodeValidity reports for every record whether the value of ch is valid
// according to the invalidation bits.
func (cg *ChannelGroup) DecodeValidity(ch *Channel) ([]bool, error) {
	if err := cg.prepare(ch); err != nil {
		return nil, err
	}
	if ch.AllInvalid() || ch.flags&block.CNFlagInvalBitValid == 0 {
		n, err := cg.recordCount()
		if err != nil {
			return nil, err
		}
		out := make([]bool, n)
		if !ch.AllInvalid() {
			for i := range out {
				out[i] = true
			}
		}
		return out, nil
	}

	l := cg.layout()
	if ch.invalBitPos>>3 >= cg.invalBytes {
		return nil, fmt.Errorf("%w: channel %q invalidation bit %d outside %d invalidation bytes",
			ErrRange, ch.name, ch.invalBitPos, cg.invalBytes)
	}
	out := make([]bool, 0, cg.capacity())
	err := cg.walk(func(_ uint64, rec []byte) error {
		out = append(out, !l.Invalid(rec, ch.invalBitPos))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("channel %q: %w", ch.name, err)
	}
	return out, nil
}

// prepare checks that ch can be decoded from this group.
func (cg *ChannelGroup) prepare(ch *Channel) error {
	if ch == nil || ch.cg != cg {
		return fmt.Errorf("%w: channel is not part of channel group %d", ErrRange, cg.index)
	}
	if ch.kind == ChannelVLSD {
		return fmt.Errorf("%w: VLSD channel %q", ErrUnsupported, ch.name)
	}
	if ch.IsVirtual() {
		return nil
	}
	if err := ch.field.Validate(cg.dataBytes); err != nil {
		return fmt.Errorf("channel %q: %w", ch.name, err)
	}
	return nil
}

// decodable reports whether the group's records can be walked.
func (cg *ChannelGroup) decodable() error {
	if err := cg.dg.file.checkOpen(); err != nil {
		return err
	}
	switch {
	case cg.IsVLSD():
		return fmt.Errorf("%w: VLSD channel group %d", ErrUnsupported, cg.index)
	case cg.IsBusEvent():
		return fmt.Errorf("%w: bus event channel group %d", ErrUnsupported, cg.index)
	case !cg.dg.Sorted() && !cg.dg.file.opts.unsortedScan:
		return fmt.Errorf("%w: unsorted data group %d", ErrUnsupported, cg.dg.index)
	}
	return nil
}

func (cg *ChannelGroup) walk(fn record.VisitFunc) error {
	if err := cg.decodable(); err != nil {
		return err
	}
	dg := cg.dg
	if dg.Sorted() {
		return record.Sorted(dg.data, cg.layout(), cg.cycles, fn)
	}
	level.Debug(dg.file.opts.logger).Log("msg", "scanning unsorted data group", "data_group", dg.index, "record_id", cg.recordID)
	return record.Unsorted(dg.data, dg.recordIDSize, dg.recordGroups(), cg.recordID, cg.cycles, fn)
}

// capacity bounds the preallocation for decoded values by what the data
// could actually hold.
func (cg *ChannelGroup) capacity() uint64 {
	stride := cg.layout().Stride()
	if stride == 0 {
		return 0
	}
	return min(cg.cycles, cg.dg.data.Size()/stride)
}

// maxEmptyRecords limits the cycle count of groups whose records occupy no
// bytes, where the data size gives no bound.
const maxEmptyRecords = 1 << 24

// recordCount returns the cycle count of a decodable group after checking
// that the data can hold that many records.
func (cg *ChannelGroup) recordCount() (uint64, error) {
	if err := cg.decodable(); err != nil {
		return 0, err
	}
	if err := cg.dg.data.Validate(); err != nil {
		return 0, err
	}
	stride := cg.layout().Stride()
	if stride == 0 {
		if cg.cycles > maxEmptyRecords {
			return 0, fmt.Errorf("%w: %d records of zero length in channel group %d", ErrRange, cg.cycles, cg.index)
		}
		return cg.cycles, nil
	}
	if held := cg.dg.data.Size() / stride; cg.cycles > held {
		return 0, fmt.Errorf("%w: channel group %d has %d records, data holds at most %d",
			ErrTruncatedBlock, cg.index, cg.cycles, held)
	}
	return cg.cycles, nil
}

// indices yields the record index of every record, the value of virtual
// channels.
func (cg *ChannelGroup) indices() ([]float64, error) {
	n, err := cg.recordCount()
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out, nil
}
