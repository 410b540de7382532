package ir

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteInt serializes prog's quads to w in the ".int" textual format
// (spec.md §6): one quad per line, exactly
//
//	<label>: <op>, <x>, <y>, <z>
//
// with unused operand positions written as the literal underscore.
func WriteInt(w io.Writer, prog *Program) error {
	bw := bufio.NewWriter(w)
	for _, q := range prog.quads {
		if _, err := fmt.Fprintf(bw, "%d: %s, %s, %s, %s\n", q.Label, q.Op, q.X, q.Y, q.Z); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseInt reads back a ".int" file produced by WriteInt. It is used by the
// "run" CLI subcommand to execute a previously compiled program without
// reparsing the Cimple source, and by tests that want to assert on quad
// output loaded from a golden file.
func ParseInt(r io.Reader) (*Program, error) {
	prog := NewProgram()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		q, err := parseQuadLine(line)
		if err != nil {
			return nil, fmt.Errorf("parsing .int line %d: %w", lineNo, err)
		}
		if q.Label != prog.NextQuad() {
			return nil, fmt.Errorf("parsing .int line %d: expected label %d, got %d", lineNo, prog.NextQuad(), q.Label)
		}
		prog.quads = append(prog.quads, q)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

func parseQuadLine(line string) (Quad, error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return Quad{}, fmt.Errorf("missing ':' in %q", line)
	}
	label, err := strconv.Atoi(strings.TrimSpace(line[:colon]))
	if err != nil {
		return Quad{}, fmt.Errorf("invalid label in %q: %w", line, err)
	}

	rest := line[colon+1:]
	fields := splitFields(rest)
	if len(fields) != 4 {
		return Quad{}, fmt.Errorf("want 4 comma-separated fields, got %d in %q", len(fields), line)
	}
	return Quad{Label: label, Op: Op(fields[0]), X: fields[1], Y: fields[2], Z: fields[3]}, nil
}

func splitFields(s string) []string {
	parts := bytes.Split([]byte(s), []byte(","))
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(string(p))
	}
	return out
}
