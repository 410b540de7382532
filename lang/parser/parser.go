// Package parser implements the single-pass recursive-descent parser fused
// with intermediate-code emission (C4): there is no separate AST. Every
// grammar production drives lang/ir.Program and lang/symtab.Table directly
// as it recognizes the corresponding Cimple construct (spec.md §4.3, §9).
package parser

import (
	"fmt"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/compileerr"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/ir"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/symtab"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/token"
)

// bresult is the pair of patch lists returned by every boolean-expression
// production: truelist (quads to patch to the "condition held" target) and
// falselist (quads to patch to the "condition failed" target).
type bresult struct {
	True, False ir.List
}

// Result is the outcome of a successful Parse: the finished quad program
// and the symbol table backing it (still needed by lang/asm for offsets).
type Result struct {
	Program *ir.Program
	Symbols *symtab.Table
}

// parser holds all mutable state for one parse. It is not reentrant and not
// safe for concurrent use, matching the single-pass, single-threaded
// design of spec.md §5.
type parser struct {
	filename string
	toks     []token.Token
	idx      int

	prog *ir.Program
	syms *symtab.Table
}

// Parse runs the parser over toks (as produced by lang/scanner for source
// file filename) and returns the resulting quad program and symbol table.
// The first syntax, semantic, or structural error aborts the parse; there
// is no error recovery (spec.md §1, §7).
func Parse(filename string, toks []token.Token) (*Result, error) {
	p := &parser{
		filename: filename,
		toks:     toks,
		prog:     ir.NewProgram(),
		syms:     symtab.New(),
	}
	p.syms.OpenScope() // the top-level (program) scope, opened for the whole compile

	if err := p.program(); err != nil {
		return nil, err
	}
	return &Result{Program: p.prog, Symbols: p.syms}, nil
}

// --- token cursor -----------------------------------------------------

func (p *parser) cur() token.Token {
	if p.idx < len(p.toks) {
		return p.toks[p.idx]
	}
	return token.Token{Family: token.EOF, Line: p.lastLine()}
}

func (p *parser) lastLine() int {
	if len(p.toks) == 0 {
		return 0
	}
	return p.toks[len(p.toks)-1].Line
}

func (p *parser) pos() token.Position {
	return token.Position{Filename: p.filename, Line: p.cur().Line}
}

func (p *parser) advance() {
	p.idx++
}

func (p *parser) atKeyword(kw string) bool {
	c := p.cur()
	return c.Family == token.KEYWORD && c.Lexeme == kw
}

func (p *parser) atSymbol(sym string) bool {
	c := p.cur()
	return c.Family == token.SYMBOL && c.Lexeme == sym
}

func (p *parser) atOperator(op string) bool {
	c := p.cur()
	return c.Family == token.OPERATOR && c.Lexeme == op
}

func (p *parser) atAnyOperator(ops ...string) bool {
	for _, op := range ops {
		if p.atOperator(op) {
			return true
		}
	}
	return false
}

// match consumes the current token if it has the expected family and
// (optionally) lexeme, otherwise returns a compileerr.Syntax error. An
// empty expected lexeme matches any lexeme of that family.
func (p *parser) match(family token.Family, expected string) error {
	c := p.cur()
	if c.Family == token.EOF {
		return compileerr.Syntaxf(p.pos(), "unexpected end of input")
	}
	if c.Family == family && (expected == "" || c.Lexeme == expected) {
		p.advance()
		return nil
	}
	want := expected
	if want == "" {
		want = family.String()
	}
	return compileerr.Syntaxf(p.pos(), "expected %q, found %q", want, c.Lexeme)
}

// --- program structure --------------------------------------------------

func (p *parser) program() error {
	if err := p.match(token.KEYWORD, "program"); err != nil {
		return err
	}
	name := p.cur().Lexeme
	if err := p.match(token.IDENTIFIER, ""); err != nil {
		return err
	}
	p.prog.Name = name

	if err := p.declarations(); err != nil {
		return err
	}
	if err := p.subprograms(); err != nil {
		return err
	}

	p.prog.GenQuad(ir.BeginBlock, name, ir.Underscore, ir.Underscore)
	if err := p.statements(); err != nil {
		return err
	}
	p.prog.GenQuad(ir.Halt, ir.Underscore, ir.Underscore, ir.Underscore)
	p.prog.GenQuad(ir.EndBlock, name, ir.Underscore, ir.Underscore)

	return p.match(token.SYMBOL, ".")
}

// block is declarations + subprograms + statements, shared by the program
// body and every subprogram body.
func (p *parser) block() error {
	if err := p.declarations(); err != nil {
		return err
	}
	if err := p.subprograms(); err != nil {
		return err
	}
	return p.statements()
}

func (p *parser) declarations() error {
	for p.atKeyword("declare") {
		if err := p.match(token.KEYWORD, "declare"); err != nil {
			return err
		}
		if err := p.varlist(); err != nil {
			return err
		}
		if err := p.match(token.SYMBOL, ";"); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) varlist() error {
	if p.cur().Family != token.IDENTIFIER {
		return nil
	}
	if err := p.declareVar(); err != nil {
		return err
	}
	for p.atSymbol(",") {
		if err := p.match(token.SYMBOL, ","); err != nil {
			return err
		}
		if err := p.declareVar(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) declareVar() error {
	name := p.cur().Lexeme
	pos := p.pos()
	if err := p.match(token.IDENTIFIER, ""); err != nil {
		return err
	}
	offset := p.syms.AllocateOffset()
	if !p.syms.Declare(&symtab.Entity{Name: name, Kind: symtab.Variable, Offset: offset}) {
		return compileerr.Semanticf(pos, "duplicate declaration: %s", name)
	}
	return nil
}

func (p *parser) newTemp() string {
	name := p.prog.NewTemp()
	offset := p.syms.AllocateOffset()
	p.syms.Declare(&symtab.Entity{Name: name, Kind: symtab.TemporaryVariable, Offset: offset})
	return name
}

// --- subprograms ----------------------------------------------------------

func (p *parser) subprograms() error {
	for p.atKeyword("function") || p.atKeyword("procedure") {
		if err := p.subprogram(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) subprogram() error {
	kind := p.cur().Lexeme // "function" or "procedure"
	if err := p.match(token.KEYWORD, kind); err != nil {
		return err
	}
	name := p.cur().Lexeme
	if err := p.match(token.IDENTIFIER, ""); err != nil {
		return err
	}

	p.prog.GenQuad(ir.BeginBlock, name, ir.Underscore, ir.Underscore)
	p.syms.OpenScope()

	if err := p.match(token.SYMBOL, "("); err != nil {
		return err
	}
	if err := p.formalparlist(); err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, ")"); err != nil {
		return err
	}
	if err := p.block(); err != nil {
		return err
	}

	p.prog.GenQuad(ir.EndBlock, name, ir.Underscore, ir.Underscore)
	p.syms.CloseScope()
	return nil
}

func (p *parser) formalparlist() error {
	if !p.atKeyword("in") && !p.atKeyword("inout") {
		return nil
	}
	if err := p.formalparitem(); err != nil {
		return err
	}
	for p.atSymbol(",") {
		if err := p.match(token.SYMBOL, ","); err != nil {
			return err
		}
		if err := p.formalparitem(); err != nil {
			return err
		}
	}
	return nil
}

// formalparitem declares the parameter as an ordinary Variable in the
// subprogram's (already-open) scope; its passing mode is parsed but not
// preserved anywhere, matching spec.md §9's open question.
func (p *parser) formalparitem() error {
	var mode string
	switch {
	case p.atKeyword("in"):
		mode = "in"
	case p.atKeyword("inout"):
		mode = "inout"
	default:
		return compileerr.Syntaxf(p.pos(), "expected formal parameter starting with 'in' or 'inout'")
	}
	if err := p.match(token.KEYWORD, mode); err != nil {
		return err
	}
	name := p.cur().Lexeme
	pos := p.pos()
	if err := p.match(token.IDENTIFIER, ""); err != nil {
		return err
	}
	offset := p.syms.AllocateOffset()
	if !p.syms.Declare(&symtab.Entity{Name: name, Kind: symtab.Variable, Offset: offset}) {
		return compileerr.Semanticf(pos, "duplicate declaration: %s", name)
	}
	return nil
}

// --- statements -------------------------------------------------------

func (p *parser) statements() error {
	if p.atSymbol("{") {
		if err := p.match(token.SYMBOL, "{"); err != nil {
			return err
		}
		if err := p.statement(); err != nil {
			return err
		}
		for p.atSymbol(";") {
			if err := p.match(token.SYMBOL, ";"); err != nil {
				return err
			}
			if err := p.statement(); err != nil {
				return err
			}
		}
		return p.match(token.SYMBOL, "}")
	}
	if err := p.statement(); err != nil {
		return err
	}
	return p.match(token.SYMBOL, ";")
}

func (p *parser) statement() error {
	c := p.cur()
	switch {
	case c.Family == token.EOF:
		return nil
	case c.Family == token.IDENTIFIER:
		return p.assignStat()
	case p.atKeyword("if"):
		return p.ifStat()
	case p.atKeyword("while"):
		return p.whileStat()
	case p.atKeyword("switchcase"):
		return p.switchcaseStat()
	case p.atKeyword("forcase"):
		return p.forcaseStat()
	case p.atKeyword("incase"):
		return p.incaseStat()
	case p.atKeyword("call"):
		return p.callStat()
	case p.atKeyword("return"):
		return p.returnStat()
	case p.atKeyword("input"):
		return p.inputStat()
	case p.atKeyword("print"):
		return p.printStat()
	default:
		// empty statement, matching the source's fall-through "pass"
		return nil
	}
}

func (p *parser) assignStat() error {
	lhs := p.cur().Lexeme
	if err := p.match(token.IDENTIFIER, ""); err != nil {
		return err
	}
	if err := p.match(token.OPERATOR, ":="); err != nil {
		return err
	}
	place, err := p.expression()
	if err != nil {
		return err
	}
	if place != lhs {
		p.prog.GenQuad(ir.Assign, place, ir.Underscore, lhs)
	}
	return nil
}

func (p *parser) returnStat() error {
	if err := p.match(token.KEYWORD, "return"); err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, "("); err != nil {
		return err
	}
	place, err := p.expression()
	if err != nil {
		return err
	}
	p.prog.GenQuad(ir.Retv, place, ir.Underscore, ir.Underscore)
	return p.match(token.SYMBOL, ")")
}

func (p *parser) printStat() error {
	if err := p.match(token.KEYWORD, "print"); err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, "("); err != nil {
		return err
	}
	place, err := p.expression()
	if err != nil {
		return err
	}
	p.prog.GenQuad(ir.Out, place, ir.Underscore, ir.Underscore)
	return p.match(token.SYMBOL, ")")
}

func (p *parser) inputStat() error {
	if err := p.match(token.KEYWORD, "input"); err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, "("); err != nil {
		return err
	}
	name := p.cur().Lexeme
	if err := p.match(token.IDENTIFIER, ""); err != nil {
		return err
	}
	p.prog.GenQuad(ir.Inp, name, ir.Underscore, ir.Underscore)
	return p.match(token.SYMBOL, ")")
}

// actualParam is one parsed actual argument: its passing mode ("in" or
// "inout") and its value — an evaluated expression place for "in", or the
// bare identifier for "inout".
type actualParam struct {
	mode  string
	value string
}

func (p *parser) callStat() error {
	if err := p.match(token.KEYWORD, "call"); err != nil {
		return err
	}
	name := p.cur().Lexeme
	if err := p.match(token.IDENTIFIER, ""); err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, "("); err != nil {
		return err
	}
	params, err := p.actualparlist()
	if err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, ")"); err != nil {
		return err
	}
	for _, param := range params {
		mode := "cv"
		if param.mode == "inout" {
			mode = "ref"
		}
		p.prog.GenQuad(ir.Par, param.value, mode, ir.Underscore)
	}
	// a standalone call statement has no return value, so unlike factor's
	// function-call form there is no trailing "par T ret _" (spec.md §9).
	p.prog.GenQuad(ir.Call, name, ir.Underscore, ir.Underscore)
	return nil
}

func (p *parser) actualparitem() (actualParam, error) {
	switch {
	case p.atKeyword("in"):
		if err := p.match(token.KEYWORD, "in"); err != nil {
			return actualParam{}, err
		}
		place, err := p.expression()
		if err != nil {
			return actualParam{}, err
		}
		return actualParam{mode: "in", value: place}, nil
	case p.atKeyword("inout"):
		if err := p.match(token.KEYWORD, "inout"); err != nil {
			return actualParam{}, err
		}
		name := p.cur().Lexeme
		if err := p.match(token.IDENTIFIER, ""); err != nil {
			return actualParam{}, err
		}
		return actualParam{mode: "inout", value: name}, nil
	default:
		return actualParam{}, compileerr.Syntaxf(p.pos(), "expected actual parameter starting with 'in' or 'inout'")
	}
}

func (p *parser) actualparlist() ([]actualParam, error) {
	var params []actualParam
	if p.atSymbol(")") {
		return params, nil
	}
	item, err := p.actualparitem()
	if err != nil {
		return nil, err
	}
	params = append(params, item)
	for p.atSymbol(",") {
		if err := p.match(token.SYMBOL, ","); err != nil {
			return nil, err
		}
		item, err := p.actualparitem()
		if err != nil {
			return nil, err
		}
		params = append(params, item)
	}
	return params, nil
}

// --- control flow: if / while ------------------------------------------

func (p *parser) ifStat() error {
	if err := p.match(token.KEYWORD, "if"); err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, "("); err != nil {
		return err
	}
	b, err := p.condition()
	if err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, ")"); err != nil {
		return err
	}
	p.prog.Backpatch(b.True, p.prog.NextQuad())
	if err := p.statements(); err != nil {
		return err
	}
	jumpAfterThen := p.prog.GenQuad(ir.Jump, ir.Underscore, ir.Underscore, ir.Underscore)
	p.prog.Backpatch(b.False, p.prog.NextQuad())
	if p.atKeyword("else") {
		if err := p.match(token.KEYWORD, "else"); err != nil {
			return err
		}
		if err := p.statements(); err != nil {
			return err
		}
	}
	p.prog.Backpatch(ir.List{jumpAfterThen}, p.prog.NextQuad())
	return nil
}

func (p *parser) whileStat() error {
	loopTop := p.prog.NextQuad()
	if err := p.match(token.KEYWORD, "while"); err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, "("); err != nil {
		return err
	}
	b, err := p.condition()
	if err != nil {
		return err
	}
	if err := p.match(token.SYMBOL, ")"); err != nil {
		return err
	}
	p.prog.Backpatch(b.True, p.prog.NextQuad())
	if err := p.statements(); err != nil {
		return err
	}
	p.prog.GenQuad(ir.Jump, ir.Underscore, ir.Underscore, fmt.Sprintf("%d", loopTop))
	p.prog.Backpatch(b.False, p.prog.NextQuad())
	return nil
}

// --- the three case constructs -----------------------------------------

func (p *parser) switchcaseStat() error {
	if err := p.match(token.KEYWORD, "switchcase"); err != nil {
		return err
	}
	var exitList ir.List
	for p.atKeyword("case") {
		if err := p.match(token.KEYWORD, "case"); err != nil {
			return err
		}
		cond, err := p.parenOrBareCondition()
		if err != nil {
			return err
		}
		p.prog.Backpatch(cond.True, p.prog.NextQuad())
		if err := p.statements(); err != nil {
			return err
		}
		exitJump := p.prog.GenQuad(ir.Jump, ir.Underscore, ir.Underscore, ir.Underscore)
		exitList = ir.Merge(exitList, ir.MakeList(exitJump))
		p.prog.Backpatch(cond.False, p.prog.NextQuad())
	}
	if err := p.match(token.KEYWORD, "default"); err != nil {
		return err
	}
	if err := p.statements(); err != nil {
		return err
	}
	p.prog.Backpatch(exitList, p.prog.NextQuad())
	return nil
}

func (p *parser) forcaseStat() error {
	if err := p.match(token.KEYWORD, "forcase"); err != nil {
		return err
	}
	firstCondQuad := p.prog.NextQuad()
	var prevFalse ir.List
	havePrev := false
	for p.atKeyword("case") {
		curCondQuad := p.prog.NextQuad()
		if err := p.match(token.KEYWORD, "case"); err != nil {
			return err
		}
		if err := p.match(token.SYMBOL, "("); err != nil {
			return err
		}
		cond, err := p.condition()
		if err != nil {
			return err
		}
		if err := p.match(token.SYMBOL, ")"); err != nil {
			return err
		}
		if havePrev {
			p.prog.Backpatch(prevFalse, curCondQuad)
		}
		p.prog.Backpatch(cond.True, p.prog.NextQuad())
		if err := p.statements(); err != nil {
			return err
		}
		p.prog.GenQuad(ir.Jump, ir.Underscore, ir.Underscore, fmt.Sprintf("%d", firstCondQuad))
		prevFalse = cond.False
		havePrev = true
	}
	if err := p.match(token.KEYWORD, "default"); err != nil {
		return err
	}
	if havePrev {
		p.prog.Backpatch(prevFalse, p.prog.NextQuad())
	}
	return p.statements()
}

func (p *parser) incaseStat() error {
	if err := p.match(token.KEYWORD, "incase"); err != nil {
		return err
	}
	flag := p.newTemp()
	p.prog.GenQuad(ir.Assign, "0", ir.Underscore, flag)
	firstCondQuad := p.prog.NextQuad()
	for p.atKeyword("case") {
		if err := p.match(token.KEYWORD, "case"); err != nil {
			return err
		}
		cond, err := p.parenOrBareCondition()
		if err != nil {
			return err
		}
		p.prog.Backpatch(cond.True, p.prog.NextQuad())
		if err := p.statements(); err != nil {
			return err
		}
		p.prog.GenQuad(ir.Assign, "1", ir.Underscore, flag)
		p.prog.Backpatch(cond.False, p.prog.NextQuad())
	}
	if err := p.match(token.KEYWORD, "default"); err != nil {
		return err
	}
	p.prog.GenQuad(ir.Eq, "1", flag, fmt.Sprintf("%d", firstCondQuad))
	return p.statements()
}

// parenOrBareCondition parses "(" condition ")" or a bare condition,
// matching switchcaseStat's and incaseStat's tolerance for an omitted
// parenthesis pair around the case condition in the source grammar.
func (p *parser) parenOrBareCondition() (bresult, error) {
	if p.atSymbol("(") {
		if err := p.match(token.SYMBOL, "("); err != nil {
			return bresult{}, err
		}
		cond, err := p.condition()
		if err != nil {
			return bresult{}, err
		}
		if err := p.match(token.SYMBOL, ")"); err != nil {
			return bresult{}, err
		}
		return cond, nil
	}
	return p.condition()
}

// --- short-circuit boolean translation ----------------------------------

func (p *parser) boolfactor() (bresult, error) {
	switch {
	case p.atKeyword("not"):
		if err := p.match(token.KEYWORD, "not"); err != nil {
			return bresult{}, err
		}
		if err := p.match(token.SYMBOL, "["); err != nil {
			return bresult{}, err
		}
		b, err := p.condition()
		if err != nil {
			return bresult{}, err
		}
		if err := p.match(token.SYMBOL, "]"); err != nil {
			return bresult{}, err
		}
		return bresult{True: b.False, False: b.True}, nil

	case p.atSymbol("["):
		if err := p.match(token.SYMBOL, "["); err != nil {
			return bresult{}, err
		}
		b, err := p.condition()
		if err != nil {
			return bresult{}, err
		}
		if err := p.match(token.SYMBOL, "]"); err != nil {
			return bresult{}, err
		}
		return b, nil

	default:
		left, err := p.expression()
		if err != nil {
			return bresult{}, err
		}
		c := p.cur()
		if !(c.Family == token.OPERATOR && token.RelOperators[c.Lexeme]) {
			return bresult{}, compileerr.Syntaxf(p.pos(), "expected relational operator in boolean factor")
		}
		op := c.Lexeme
		if err := p.match(token.OPERATOR, op); err != nil {
			return bresult{}, err
		}
		right, err := p.expression()
		if err != nil {
			return bresult{}, err
		}
		qTrue := p.prog.GenQuad(ir.Op(op), left, right, ir.Underscore)
		qFalse := p.prog.GenQuad(ir.Jump, ir.Underscore, ir.Underscore, ir.Underscore)
		return bresult{True: ir.MakeList(qTrue), False: ir.MakeList(qFalse)}, nil
	}
}

func (p *parser) boolterm() (bresult, error) {
	b, err := p.boolfactor()
	if err != nil {
		return bresult{}, err
	}
	for p.atKeyword("and") {
		if err := p.match(token.KEYWORD, "and"); err != nil {
			return bresult{}, err
		}
		marker := p.prog.NextQuad()
		p.prog.Backpatch(b.True, marker)
		b2, err := p.boolfactor()
		if err != nil {
			return bresult{}, err
		}
		b.False = ir.Merge(b.False, b2.False)
		b.True = b2.True
	}
	return b, nil
}

func (p *parser) condition() (bresult, error) {
	b, err := p.boolterm()
	if err != nil {
		return bresult{}, err
	}
	for p.atKeyword("or") {
		if err := p.match(token.KEYWORD, "or"); err != nil {
			return bresult{}, err
		}
		marker := p.prog.NextQuad()
		p.prog.Backpatch(b.False, marker)
		b2, err := p.boolterm()
		if err != nil {
			return bresult{}, err
		}
		b.True = ir.Merge(b.True, b2.True)
		b.False = b2.False
	}
	return b, nil
}

// --- arithmetic expressions ---------------------------------------------

func (p *parser) expression() (string, error) {
	place, err := p.term()
	if err != nil {
		return "", err
	}
	for p.atAnyOperator("+", "-") {
		op := p.cur().Lexeme
		if err := p.match(token.OPERATOR, op); err != nil {
			return "", err
		}
		right, err := p.term()
		if err != nil {
			return "", err
		}
		temp := p.newTemp()
		p.prog.GenQuad(ir.Op(op), place, right, temp)
		place = temp
	}
	return place, nil
}

func (p *parser) term() (string, error) {
	place, err := p.factor()
	if err != nil {
		return "", err
	}
	for p.atAnyOperator("*", "/") {
		op := p.cur().Lexeme
		if err := p.match(token.OPERATOR, op); err != nil {
			return "", err
		}
		right, err := p.factor()
		if err != nil {
			return "", err
		}
		temp := p.newTemp()
		p.prog.GenQuad(ir.Op(op), place, right, temp)
		place = temp
	}
	return place, nil
}

func (p *parser) factor() (string, error) {
	var unary string
	if p.atAnyOperator("+", "-") {
		unary = p.cur().Lexeme
		if err := p.match(token.OPERATOR, unary); err != nil {
			return "", err
		}
	}

	var result string
	c := p.cur()
	switch {
	case c.Family == token.IDENTIFIER:
		ident := c.Lexeme
		if err := p.match(token.IDENTIFIER, ""); err != nil {
			return "", err
		}
		if p.atSymbol("(") {
			if err := p.match(token.SYMBOL, "("); err != nil {
				return "", err
			}
			params, err := p.actualparlist()
			if err != nil {
				return "", err
			}
			if err := p.match(token.SYMBOL, ")"); err != nil {
				return "", err
			}
			for _, param := range params {
				mode := "cv"
				if param.mode == "inout" {
					mode = "ref"
				}
				p.prog.GenQuad(ir.Par, param.value, mode, ir.Underscore)
			}
			temp := p.newTemp()
			p.prog.GenQuad(ir.Par, temp, "ret", ir.Underscore)
			p.prog.GenQuad(ir.Call, ident, ir.Underscore, ir.Underscore)
			result = temp
		} else {
			result = ident
		}

	case c.Family == token.NUMBER:
		result = c.Lexeme
		if err := p.match(token.NUMBER, ""); err != nil {
			return "", err
		}

	case c.Family == token.SYMBOL && c.Lexeme == "(":
		if err := p.match(token.SYMBOL, "("); err != nil {
			return "", err
		}
		place, err := p.expression()
		if err != nil {
			return "", err
		}
		if err := p.match(token.SYMBOL, ")"); err != nil {
			return "", err
		}
		result = place

	default:
		return "", compileerr.Syntaxf(p.pos(), "unexpected token in factor: %q", c.Lexeme)
	}

	if unary == "-" {
		temp := p.newTemp()
		p.prog.GenQuad(ir.Mul, result, "-1", temp)
		result = temp
	}
	return result, nil
}
