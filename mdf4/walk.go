package mdf4

import (
	"errors"
	"fmt"
)

// WalkFunc is called for each data group, channel group and channel.
// path is "/<dg>", "/<dg>/<cg>" or "/<dg>/<cg>/<name>".
// obj is *DataGroup, *ChannelGroup or *Channel.
// Return nil to continue, SkipChildren to skip the children of a group, or
// any other error to stop.
type WalkFunc func(path string, obj any) error

// SkipChildren can be returned from a WalkFunc for a data group or channel
// group to skip its contents.
var SkipChildren = errors.New("skip children")

// ErrStopWalk can be returned from a WalkFunc to stop walking without an error.
var ErrStopWalk = errors.New("walk stopped")

// Walk visits the file structure depth-first in file order.
//
// Example:
//
//	mdf4.Walk(f, func(path string, obj any) error {
//	    if ch, ok := obj.(*mdf4.Channel); ok {
//	        fmt.Println(path, ch.Unit())
//	    }
//	    return nil
//	})
func Walk(f *File, fn WalkFunc) error {
	err := walkFile(f, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walkFile(f *File, fn WalkFunc) error {
	for _, dg := range f.groups {
		err := fn(fmt.Sprintf("/%d", dg.index), dg)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}

		for _, cg := range dg.groups {
			err := fn(cg.Path(), cg)
			if errors.Is(err, SkipChildren) {
				continue
			}
			if err != nil {
				return err
			}

			for _, ch := range cg.channels {
				if err := fn(ch.Path(), ch); err != nil && !errors.Is(err, SkipChildren) {
					return err
				}
			}
		}
	}
	return nil
}
