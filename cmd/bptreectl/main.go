// Command bptreectl is a small driver around the bptree package for poking
// at a tree from the shell: feed it "key value" lines on stdin and ask it
// to add, get, remove, range, build, or dump.
//
// Run using
//  go run ./cmd/bptreectl <command> <flags>
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	leafCapFlag = cli.IntFlag{
		Name:  "leaf-capacity",
		Usage: "maximum entries per leaf node",
		Value: 0,
	}
	internalCapFlag = cli.IntFlag{
		Name:  "internal-capacity",
		Usage: "maximum separators per internal node",
		Value: 0,
	}
)

func main() {
	app := &cli.App{
		Name:  "bptreectl",
		Usage: "bplustree toolbox",
		Flags: []cli.Flag{
			&leafCapFlag,
			&internalCapFlag,
		},
		Commands: []*cli.Command{
			&Build,
			&Add,
			&Get,
			&Remove,
			&Range,
			&Dump,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
