package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/robert-malhotra/go-mdf4/mdf4"
)

// table holds the selected columns of one channel group.
type table struct {
	names  []string
	units  []string
	values [][]float64
}

type tableFormat struct {
	columnHeader bool
	unitRow      bool
	delimiter    string
	rowDelimiter string
}

// errUsage marks selection errors the user can fix with flags.
var errUsage = errors.New("usage error")

// selectGroup picks the channel group to export. A negative index means
// "not given", which is only allowed when there is exactly one candidate.
func selectGroup(f *mdf4.File, dgIndex, cgIndex int) (*mdf4.ChannelGroup, error) {
	dgs := f.DataGroups()
	if dgIndex < 0 {
		if len(dgs) > 1 {
			return nil, fmt.Errorf("%w: file has %d data groups, use -g to choose one", errUsage, len(dgs))
		}
		dgIndex = 0
	}
	if dgIndex >= len(dgs) {
		return nil, fmt.Errorf("%w: data group %d does not exist", errUsage, dgIndex)
	}

	cgs := dgs[dgIndex].ChannelGroups()
	if cgIndex < 0 {
		if len(cgs) > 1 {
			return nil, fmt.Errorf("%w: data group %d has %d channel groups, use -p to choose one", errUsage, dgIndex, len(cgs))
		}
		cgIndex = 0
	}
	if cgIndex >= len(cgs) {
		return nil, fmt.Errorf("%w: channel group %d does not exist in data group %d", errUsage, cgIndex, dgIndex)
	}
	return cgs[cgIndex], nil
}

// readTable decodes the physical values of the selected channels. Channels
// with an unsupported conversion are exported raw with a warning.
func readTable(logger log.Logger, cg *mdf4.ChannelGroup, selected []int) (*table, error) {
	channels := cg.Channels()
	t := &table{}
	for _, i := range selected {
		ch := channels[i]
		values, err := cg.ReadPhysical(ch)
		switch {
		case errors.Is(err, mdf4.ErrUnsupported) && values != nil:
			level.Warn(logger).Log("msg", "exporting raw values", "channel", ch.Name(), "err", err)
		case err != nil:
			return nil, err
		}
		t.names = append(t.names, ch.Name())
		t.units = append(t.units, ch.Unit())
		t.values = append(t.values, values)
	}
	return t, nil
}

func (t *table) rows() int {
	if len(t.values) == 0 {
		return 0
	}
	n := len(t.values[0])
	for _, col := range t.values[1:] {
		n = min(n, len(col))
	}
	return n
}

// write prints the table. Numbers are formatted like %f.
func (t *table) write(w io.Writer, format tableFormat) error {
	if len(t.values) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				bw.WriteString(format.delimiter)
			}
			bw.WriteString(c)
		}
		bw.WriteString(format.rowDelimiter)
	}

	if format.columnHeader {
		writeRow(t.names)
	}
	if format.unitRow {
		writeRow(t.units)
	}

	var buf []byte
	for r := range t.rows() {
		for c, col := range t.values {
			if c > 0 {
				bw.WriteString(format.delimiter)
			}
			buf = strconv.AppendFloat(buf[:0], col[r], 'f', 6, 64)
			bw.Write(buf)
		}
		bw.WriteString(format.rowDelimiter)
	}
	return bw.Flush()
}
