package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/mainer"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/asm"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/compileerr"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/config"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/ir"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/parser"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/scanner"
)

// Compile scans, parses, and translates each source file in args, writing
// its ".int" quad file (and, unless --no-asm was given, its ".asm" RISC-V
// file) under the configured output directory.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "compile: loading config: %s\n", err)
		return err
	}

	var failed bool
	for _, path := range args {
		if err := c.compileOne(stdio, cfg, path); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("compile: one or more files failed")
	}
	return nil
}

func (c *Cmd) compileOne(stdio mainer.Stdio, cfg *config.Config, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return compileerr.IOf("%s", err)
	}
	toks, err := scanner.New(path, src).ScanAll()
	if err != nil {
		return err
	}
	res, err := parser.Parse(path, toks)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return compileerr.IOf("%s", err)
	}

	intPath := filepath.Join(cfg.OutDir, base+".int")
	intFile, err := os.Create(intPath)
	if err != nil {
		return compileerr.IOf("%s", err)
	}
	defer intFile.Close()
	if err := ir.WriteInt(intFile, res.Program); err != nil {
		return compileerr.IOf("%s: %s", intPath, err)
	}
	fmt.Fprintf(stdio.Stdout, "wrote %s\n", intPath)

	if !c.NoAsm {
		asmPath := filepath.Join(cfg.OutDir, base+".asm")
		asmFile, err := os.Create(asmPath)
		if err != nil {
			return compileerr.IOf("%s", err)
		}
		defer asmFile.Close()
		if err := asm.Write(asmFile, res.Program, res.Symbols, cfg.StackSize, cfg.RuntimeRegister); err != nil {
			return compileerr.IOf("%s: %s", asmPath, err)
		}
		fmt.Fprintf(stdio.Stdout, "wrote %s\n", asmPath)
	}

	if c.WithSymbols {
		res.Symbols.WriteDebug(stdio.Stdout)
	}
	return nil
}
