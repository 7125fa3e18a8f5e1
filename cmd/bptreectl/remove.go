package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Remove = cli.Command{
	Action:    remove,
	Name:      "remove",
	Usage:     "loads \"key value\" lines from stdin, then removes a key",
	ArgsUsage: "<key>",
}

func remove(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly <key>")
	}
	tr, err := loadFromStdin(context)
	if err != nil {
		return err
	}
	key := context.Args().Get(0)
	removed, err := tr.Remove(key)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("%q not found\n", key)
		return nil
	}
	fmt.Printf("removed %q; tree now holds %d entries\n", key, tr.Len())
	return nil
}
