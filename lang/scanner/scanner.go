// Package scanner implements the hand-written FSM lexer for Cimple source
// files. It is a thin, uninteresting collaborator per spec.md §1: it
// produces a flat, immutable sequence of token.Token values and nothing
// else.
package scanner

import (
	"fmt"
	"unicode"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/compileerr"
	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/token"
)

// state is the FSM's current state, mirroring the source's
// START/IDENTIFIER/NUMBER/OPERATOR/COMMENT states.
type state uint8

const (
	stateStart state = iota
	stateIdentifier
	stateNumber
	stateOperator
	stateComment
)

// Scanner tokenizes a single Cimple source file.
type Scanner struct {
	filename string
	src      []rune
	line     int
}

// New creates a Scanner for the given source bytes, associated with
// filename for error/position reporting.
func New(filename string, src []byte) *Scanner {
	return &Scanner{filename: filename, src: []rune(string(src)), line: 1}
}

// ScanAll tokenizes the entire source and returns the resulting token
// sequence. It stops at the first lexical error (no recovery), matching
// spec.md §7's "all errors are fatal" policy.
func (s *Scanner) ScanAll() ([]token.Token, error) {
	var toks []token.Token
	st := stateStart
	var lexeme []rune
	i := 0
	n := len(s.src)

	emit := func(family token.Family, lex string, line int) {
		toks = append(toks, token.Token{Lexeme: lex, Family: family, Line: line})
	}
	lexemeLine := s.line

	for i < n {
		ch := s.src[i]
		switch st {
		case stateStart:
			switch {
			case ch == ' ' || ch == '\t' || ch == '\r':
				i++
			case ch == '\n':
				s.line++
				i++
			case ch == '#':
				st = stateComment
				i++
			case isLetter(ch):
				st = stateIdentifier
				lexeme = []rune{ch}
				lexemeLine = s.line
				i++
			case isDigit(ch):
				st = stateNumber
				lexeme = []rune{ch}
				lexemeLine = s.line
				i++
			case isOperatorStart(ch):
				st = stateOperator
				lexeme = []rune{ch}
				lexemeLine = s.line
				i++
			case token.Symbols[string(ch)]:
				emit(token.SYMBOL, string(ch), s.line)
				i++
			default:
				return nil, compileerr.Lexf(s.pos(), "unknown character %q", string(ch))
			}

		case stateIdentifier:
			if i < n && isAlnum(s.src[i]) {
				lexeme = append(lexeme, s.src[i])
				i++
				continue
			}
			s.emitIdentOrKeyword(&toks, string(lexeme), lexemeLine)
			lexeme = nil
			st = stateStart

		case stateNumber:
			if i < n && isDigit(s.src[i]) {
				lexeme = append(lexeme, s.src[i])
				i++
				continue
			}
			emit(token.NUMBER, string(lexeme), lexemeLine)
			lexeme = nil
			st = stateStart

		case stateOperator:
			if i < n {
				two := string(lexeme) + string(s.src[i])
				if token.Operators[two] {
					emit(token.OPERATOR, two, lexemeLine)
					lexeme = nil
					st = stateStart
					i++
					continue
				}
			}
			one := string(lexeme)
			switch {
			case token.Operators[one]:
				emit(token.OPERATOR, one, lexemeLine)
			case token.Symbols[one]:
				emit(token.SYMBOL, one, lexemeLine)
			default:
				return nil, compileerr.Lexf(token.Position{Filename: s.filename, Line: lexemeLine}, "unknown operator %q", one)
			}
			lexeme = nil
			st = stateStart

		case stateComment:
			if ch == '#' {
				st = stateStart
			} else if ch == '\n' {
				s.line++
			}
			i++
		}
	}

	// flush the state machine's last pending lexeme, exactly as the source
	// does after its tokenize loop ends.
	switch st {
	case stateIdentifier:
		s.emitIdentOrKeyword(&toks, string(lexeme), lexemeLine)
	case stateNumber:
		emit(token.NUMBER, string(lexeme), lexemeLine)
	case stateOperator:
		one := string(lexeme)
		switch {
		case token.Operators[one]:
			emit(token.OPERATOR, one, lexemeLine)
		case token.Symbols[one]:
			emit(token.SYMBOL, one, lexemeLine)
		default:
			return nil, compileerr.Lexf(token.Position{Filename: s.filename, Line: lexemeLine}, "unknown operator %q", one)
		}
	}

	return toks, nil
}

func (s *Scanner) emitIdentOrKeyword(toks *[]token.Token, lexeme string, line int) {
	family := token.IDENTIFIER
	if token.Keywords[lexeme] {
		family = token.KEYWORD
	}
	*toks = append(*toks, token.Token{Lexeme: lexeme, Family: family, Line: line})
}

func (s *Scanner) pos() token.Position {
	return token.Position{Filename: s.filename, Line: s.line}
}

func isLetter(r rune) bool { return unicode.IsLetter(r) }
func isDigit(r rune) bool  { return unicode.IsDigit(r) }
func isAlnum(r rune) bool  { return isLetter(r) || isDigit(r) }

func isOperatorStart(r rune) bool {
	for op := range token.Operators {
		if rune(op[0]) == r {
			return true
		}
	}
	return false
}

// ScanFile tokenizes src, the already-read contents of filename, and
// prefixes any error with filename. It does not read the file itself.
func ScanFile(filename string, src []byte) ([]token.Token, error) {
	toks, err := New(filename, src).ScanAll()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", filename, err)
	}
	return toks, nil
}
