package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var (
	descendingFlag = cli.BoolFlag{
		Name:  "descending",
		Usage: "walk the range from high to low",
	}
)

var Range = cli.Command{
	Action:    rangeCmd,
	Name:      "range",
	Usage:     "loads \"key value\" lines from stdin, then prints an inclusive key range",
	ArgsUsage: "[lo] [hi]",
	Flags: []cli.Flag{
		&descendingFlag,
	},
}

func rangeCmd(context *cli.Context) error {
	if context.Args().Len() > 2 {
		return fmt.Errorf("expected at most [lo] [hi]")
	}
	tr, err := loadFromStdin(context)
	if err != nil {
		return err
	}

	var lo, hi *string
	if context.Args().Len() >= 1 {
		v := context.Args().Get(0)
		lo = &v
	}
	if context.Args().Len() == 2 {
		v := context.Args().Get(1)
		hi = &v
	}

	var cursor = tr.Range(lo, hi)
	advance := cursor.Next
	if context.Bool(descendingFlag.Name) {
		cursor = tr.RangeDescending(lo, hi)
		advance = cursor.Prev
	}

	for cursor.Valid() {
		fmt.Printf("%q -> %q\n", cursor.Key(), cursor.Value())
		if err := advance(); err != nil {
			return err
		}
	}
	return nil
}
