package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MkazemAkhgary/bplustree/bptree"
	"github.com/urfave/cli/v2"
)

// readPairs parses "key value" lines from r, one pair per line, skipping
// blank lines. Fields after the first two are joined back into the value so
// values may contain spaces.
func readPairs(r io.Reader) ([][2]string, error) {
	var pairs [][2]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed line %q: expected \"key value\"", line)
		}
		pairs = append(pairs, [2]string{fields[0], fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// newTree constructs an empty tree honoring the global capacity flags.
func newTree(context *cli.Context) (*bptree.Tree[string, string], error) {
	var opts []bptree.Option[string, string]
	if v := context.Int(leafCapFlag.Name); v > 0 {
		opts = append(opts, bptree.WithLeafCapacity[string, string](v))
	}
	if v := context.Int(internalCapFlag.Name); v > 0 {
		opts = append(opts, bptree.WithInternalCapacity[string, string](v))
	}
	return bptree.New[string, string](bptree.Ordered[string](), opts...)
}

// newBuilder constructs an empty Builder honoring the global capacity flags.
func newBuilder(context *cli.Context) (*bptree.Builder[string, string], error) {
	var opts []bptree.Option[string, string]
	if v := context.Int(leafCapFlag.Name); v > 0 {
		opts = append(opts, bptree.WithLeafCapacity[string, string](v))
	}
	if v := context.Int(internalCapFlag.Name); v > 0 {
		opts = append(opts, bptree.WithInternalCapacity[string, string](v))
	}
	return bptree.NewBuilder[string, string](bptree.Ordered[string](), opts...)
}

// loadFromStdin builds a tree from "key value" lines on stdin by repeated
// Add calls, failing with an error (and no tree) at the first duplicate key.
func loadFromStdin(context *cli.Context) (*bptree.Tree[string, string], error) {
	pairs, err := readPairs(context.App.Reader)
	if err != nil {
		return nil, err
	}
	tr, err := newTree(context)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if err := tr.Add(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("adding %q: %w", p[0], err)
		}
	}
	return tr, nil
}
