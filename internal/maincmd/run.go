package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/interp"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/ir"
)

// Run executes each ".int" file in args with the tree-walking quad
// interpreter, reading "inp" values from stdio.Stdin and writing "out"
// values to stdio.Stdout.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
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
		if err := interp.Run(prog, stdio.Stdin, stdio.Stdout); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("run: one or more files failed")
	}
	return nil
}
