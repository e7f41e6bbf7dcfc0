// Diagnostic tool for analyzing MDF4 files
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-mdf4/mdf4"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/diagnose/main.go <file.mf4>")
		os.Exit(1)
	}

	if err := diagnose(os.Stdout, os.Args[1]); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func diagnose(w io.Writer, filename string) error {
	fmt.Fprintf(w, "=== Analyzing %s ===\n\n", filename)

	f, err := mdf4.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(w, "Version: %s (%d)\n", f.VersionString(), f.Version())
	fmt.Fprintf(w, "Program: %q\n", f.Program())
	fmt.Fprintf(w, "Start:   %s\n", f.StartTime().UTC().Format("2006-01-02 15:04:05.000000000 MST"))
	if c := f.Comment(); c != "" {
		fmt.Fprintf(w, "Comment: %q\n", c)
	}
	fmt.Fprintf(w, "Data groups: %d\n\n", len(f.DataGroups()))

	return mdf4.Walk(f, func(path string, obj any) error {
		switch o := obj.(type) {
		case *mdf4.DataGroup:
			fmt.Fprintf(w, "DataGroup %s @%#x: record id %d bytes, %d bytes of data in %d blocks\n",
				path, o.Offset(), o.RecordIDSize(), o.DataSize(), o.DataBlocks())
			if !o.Sorted() {
				fmt.Fprintf(w, "  [UNSORTED - %d channel groups]\n", len(o.ChannelGroups()))
			}
		case *mdf4.ChannelGroup:
			fmt.Fprintf(w, "  ChannelGroup %s %q @%#x: id %d, %d records of %d bytes\n",
				path, o.Name(), o.Offset(), o.RecordID(), o.CycleCount(), o.RecordLength())
			switch {
			case o.IsVLSD():
				fmt.Fprintln(w, "    [VLSD - not decoded]")
				return mdf4.SkipChildren
			case o.IsBusEvent():
				fmt.Fprintln(w, "    [BUS EVENT - not decoded]")
			}
			if src := o.Source(); src != nil {
				fmt.Fprintf(w, "    Source: %q (%s)\n", src.Name, src.Type)
			}
		case *mdf4.Channel:
			fmt.Fprintf(w, "    Channel %q [%s] %s %s, offset %d.%d, %d bits",
				o.Name(), o.Unit(), o.Type(), o.DataType(), o.ByteOffset(), o.BitOffset(), o.BitCount())
			if c := o.Conversion(); !c.IsIdentity() {
				fmt.Fprintf(w, ", conversion %s", c.Kind)
				if !c.Kind.Supported() {
					fmt.Fprint(w, " (unsupported)")
				}
			}
			fmt.Fprintln(w)
		}
		return nil
	})
}
