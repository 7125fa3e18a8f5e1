package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Build = cli.Command{
	Action: build,
	Name:   "build",
	Usage:  "bulk-loads \"key value\" lines from stdin and reports the resulting tree shape",
}

func build(context *cli.Context) error {
	pairs, err := readPairs(context.App.Reader)
	if err != nil {
		return err
	}
	b, err := newBuilder(context)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if err := b.Add(p[0], p[1]); err != nil {
			return fmt.Errorf("adding %q: %w", p[0], err)
		}
	}
	tr, err := b.Build()
	if err != nil {
		return err
	}
	fmt.Printf("built tree: %d entries, height %d\n", tr.Len(), tr.Height())
	return nil
}
