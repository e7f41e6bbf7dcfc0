package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseChannelList expands a LIST of ranges into channel indices, in the
// order given. Each comma separated range is one of N, N-, N-M or -M, with
// channels counted from 0. An index at or beyond count is an error.
func parseChannelList(list string, count int) ([]int, error) {
	var out []int
	for _, r := range strings.Split(list, ",") {
		idx, err := parseRange(strings.TrimSpace(r), count)
		if err != nil {
			return nil, err
		}
		out = append(out, idx...)
	}
	return out, nil
}

func parseRange(r string, count int) ([]int, error) {
	if r == "" {
		return nil, fmt.Errorf("empty channel range")
	}
	startStr, endStr, isRange := strings.Cut(r, "-")

	start, end := 0, count-1
	var err error
	switch {
	case !isRange:
		if start, err = channelIndex(r, count); err != nil {
			return nil, err
		}
		end = start
	case startStr == "" && endStr == "":
		return nil, fmt.Errorf("invalid channel range %q", r)
	default:
		if startStr != "" {
			if start, err = channelIndex(startStr, count); err != nil {
				return nil, err
			}
		}
		if endStr != "" {
			if end, err = channelIndex(endStr, count); err != nil {
				return nil, err
			}
		}
	}
	if end < start {
		return nil, fmt.Errorf("channel range %q is reversed", r)
	}

	idx := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		idx = append(idx, i)
	}
	return idx, nil
}

func channelIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid channel index %q", s)
	}
	if n >= count {
		return 0, fmt.Errorf("channel %d does not exist", n)
	}
	return n, nil
}
