// Command mdf4-export writes the channels of one MDF4 channel group as
// delimited text.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-mdf4/mdf4"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprintln(os.Stderr, "Try `mdf4-export --help' for more information.")
		}
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "mdf4-export",
		Usage:       "Export data channels from an MDF4 file to delimited text",
		ArgsUsage:   "FILE",
		Version:     version,
		HideVersion: true,
		Flags:       exportFlags(),
		Writer:      stdout,
		ErrWriter:   stderr,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if showVersion {
				_, err := fmt.Fprintf(stdout, "mdf4-export/%s\n", cmd.Version)
				return err
			}
			applyConfig(cmd, LoadConfig())
			resolveInverseFlags()
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("%w: expected exactly one FILE, got %d", errUsage, cmd.Args().Len())
			}
			logger, err := newLogger(stderr, logLevel)
			if err != nil {
				return err
			}
			return run(logger, cmd.Args().First(), stdout)
		},
	}
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var allow level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn", "warning":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, fmt.Errorf("%w: unknown log level %q", errUsage, lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, allow), nil
}

func run(logger log.Logger, path string, out io.Writer) error {
	f, err := mdf4.Open(path,
		mdf4.WithLogger(logger),
		mdf4.WithConcurrency(int(concurrency)),
	)
	if err != nil {
		return err
	}
	defer f.Close()

	level.Debug(logger).Log("msg", "opened file", "path", path, "version", f.VersionString(), "data_groups", len(f.DataGroups()))

	cg, err := selectGroup(f, int(dataGroup), int(channelGroup))
	if err != nil {
		return err
	}

	count := len(cg.Channels())
	selected := make([]int, count)
	for i := range selected {
		selected[i] = i
	}
	if channelList != "" {
		if selected, err = parseChannelList(channelList, count); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
	}

	t, err := readTable(logger, cg, selected)
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "exporting", "group", cg.Path(), "channels", len(selected), "records", t.rows())

	return t.write(out, tableFormat{
		columnHeader: columnHeader,
		unitRow:      unitRow,
		delimiter:    delimiter,
		rowDelimiter: rowDelimiter,
	})
}
