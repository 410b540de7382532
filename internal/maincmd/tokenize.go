package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/scanner"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
			continue
		}
		toks, err := scanner.New(path, src).ScanAll()
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			failed = true
			continue
		}
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%s:%d: %s %q\n", path, tok.Line, tok.Family, tok.Lexeme)
		}
	}
	if failed {
		return fmt.Errorf("tokenize: one or more files failed")
	}
	return nil
}
