package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/ir"
)

// Quads reads back each ".int" file in args and prints its quads.
func (c *Cmd) Quads(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
			continue
		}
		prog, err := ir.ParseInt(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
			continue
		}
		for _, q := range prog.Quads() {
			fmt.Fprintln(stdio.Stdout, q)
		}
	}
	if failed {
		return fmt.Errorf("quads: one or more files failed")
	}
	return nil
}
