package main

import "github.com/urfave/cli/v3"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	columnHeader   bool
	noColumnHeader bool
	unitRow        bool
	noUnitRow      bool
	showVersion    bool
	delimiter      string
	rowDelimiter   string
	dataGroup      int64
	channelGroup   int64
	channelList    string
	concurrency    int64
	logLevel       string
)

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "column-header",
			Aliases:     []string{"s"},
			Usage:       "print column header with channel names",
			Value:       true,
			Destination: &columnHeader,
		},
		&cli.BoolFlag{
			Name:        "no-column-header",
			Aliases:     []string{"S"},
			Usage:       "do not print the column header",
			Destination: &noColumnHeader,
		},
		&cli.BoolFlag{
			Name:        "unit-row",
			Aliases:     []string{"u"},
			Usage:       "print row with channel units",
			Value:       true,
			Destination: &unitRow,
		},
		&cli.BoolFlag{
			Name:        "no-unit-row",
			Aliases:     []string{"U"},
			Usage:       "do not print the unit row",
			Destination: &noUnitRow,
		},
		&cli.StringFlag{
			Name:        "delimiter",
			Aliases:     []string{"d"},
			Usage:       "field delimiter",
			Value:       ",",
			Destination: &delimiter,
		},
		&cli.StringFlag{
			Name:        "row-delimiter",
			Aliases:     []string{"r"},
			Usage:       "row delimiter",
			Value:       "\n",
			Destination: &rowDelimiter,
		},
		&cli.Int64Flag{
			Name:        "data-group",
			Aliases:     []string{"g"},
			Usage:       "use only this data group (required when the file has more than one)",
			Value:       -1,
			Destination: &dataGroup,
		},
		&cli.Int64Flag{
			Name:        "channel-group",
			Aliases:     []string{"p"},
			Usage:       "use only this channel group (required when the data group has more than one)",
			Value:       -1,
			Destination: &channelGroup,
		},
		&cli.StringFlag{
			Name:        "channels",
			Aliases:     []string{"c"},
			Usage:       "print only channels in `LIST` (N, N-, N-M or -M, comma separated, counted from 0)",
			Destination: &channelList,
		},
		&cli.Int64Flag{
			Name:        "concurrency",
			Usage:       "data groups indexed in parallel while opening",
			Value:       1,
			Destination: &concurrency,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"V"},
			Usage:       "print the version",
			Destination: &showVersion,
		},
	}
}
