package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Add = cli.Command{
	Action:    add,
	Name:      "add",
	Usage:     "loads \"key value\" lines from stdin, then adds one more key",
	ArgsUsage: "<key> <value>",
}

func add(context *cli.Context) error {
	if context.Args().Len() != 2 {
		return fmt.Errorf("expected exactly <key> <value>")
	}
	tr, err := loadFromStdin(context)
	if err != nil {
		return err
	}
	key, value := context.Args().Get(0), context.Args().Get(1)
	if err := tr.Add(key, value); err != nil {
		return err
	}
	fmt.Printf("added %q -> %q; tree now holds %d entries\n", key, value, tr.Len())
	return nil
}
