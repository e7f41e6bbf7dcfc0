package mdf4

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChannelPath splits a channel path into data group index, channel
// group index and channel name.
// Path format: /<data group>/<channel group>/<channel name>
//
// Examples:
//   - "/0/0/EngineSpeed" -> dg=0, cg=0, name="EngineSpeed"
//   - "2/1/CAN/Frame.ID" -> dg=2, cg=1, name="CAN/Frame.ID"
//
// The channel name is everything after the second separator, so it may
// itself contain slashes.
func ParseChannelPath(path string) (dg, cg int, name string, err error) {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) != 3 || parts[2] == "" {
		return 0, 0, "", fmt.Errorf("channel path must be /<dg>/<cg>/<name>: %q", path)
	}
	if dg, err = strconv.Atoi(parts[0]); err != nil || dg < 0 {
		return 0, 0, "", fmt.Errorf("invalid data group index in %q", path)
	}
	if cg, err = strconv.Atoi(parts[1]); err != nil || cg < 0 {
		return 0, 0, "", fmt.Errorf("invalid channel group index in %q", path)
	}
	return dg, cg, parts[2], nil
}

// JoinChannelPath builds the path of a channel.
func JoinChannelPath(dg, cg int, name string) string {
	return fmt.Sprintf("/%d/%d/%s", dg, cg, name)
}

// Path returns the channel group path, "/<dg>/<cg>".
func (cg *ChannelGroup) Path() string {
	return fmt.Sprintf("/%d/%d", cg.dg.index, cg.index)
}

// Path returns the channel path.
func (ch *Channel) Path() string {
	return JoinChannelPath(ch.cg.dg.index, ch.cg.index, ch.name)
}

// Lookup returns the channel at path.
func (f *File) Lookup(path string) (*Channel, error) {
	di, ci, name, err := ParseChannelPath(path)
	if err != nil {
		return nil, err
	}
	dg, err := f.DataGroup(di)
	if err != nil {
		return nil, err
	}
	if ci >= len(dg.groups) {
		return nil, fmt.Errorf("%w: channel group %d of %d in data group %d", ErrRange, ci, len(dg.groups), di)
	}
	ch, ok := dg.groups[ci].Channel(name)
	if !ok {
		return nil, fmt.Errorf("%w: no channel %q in %s", ErrRange, name, dg.groups[ci].Path())
	}
	return ch, nil
}
