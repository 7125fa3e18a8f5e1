package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Get = cli.Command{
	Action:    get,
	Name:      "get",
	Usage:     "loads \"key value\" lines from stdin, then looks up a key",
	ArgsUsage: "<key>",
}

func get(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly <key>")
	}
	tr, err := loadFromStdin(context)
	if err != nil {
		return err
	}
	key := context.Args().Get(0)
	value, ok := tr.TryGet(key)
	if !ok {
		fmt.Printf("%q not found\n", key)
		return nil
	}
	fmt.Printf("%q -> %q\n", key, value)
	return nil
}
