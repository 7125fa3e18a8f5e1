package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

var Dump = cli.Command{
	Action: dump,
	Name:   "dump",
	Usage:  "loads \"key value\" lines from stdin, then prints the tree's node structure",
}

func dump(context *cli.Context) error {
	tr, err := loadFromStdin(context)
	if err != nil {
		return err
	}
	tr.Dump(os.Stdout)
	return nil
}
