// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errExprParse = errors.New("expression syntax error")

// A resolver translates identifiers appearing in expressions, such as
// register names, into values.
type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

// exprParser evaluates integer expressions with C-like operator
// precedence. Numbers may be decimal, hexadecimal ($1234 or 0x1234) or
// binary (0b1010). In hex mode, bare numbers are parsed as hexadecimal
// and identifiers are unavailable.
type exprParser struct {
	hexMode bool

	s   string
	pos int
	r   resolver
}

func newExprParser() *exprParser {
	return &exprParser{}
}

func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	p.s, p.pos, p.r = expr, 0, r
	v, err := p.parseExpr(0)
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return 0, errExprParse
	}
	return v, nil
}

// Binary operators from lowest to highest precedence level.
var binaryOps = []struct {
	symbol string
	prec   int
	eval   func(a, b int64) (int64, error)
}{
	{"|", 1, func(a, b int64) (int64, error) { return a | b, nil }},
	{"^", 2, func(a, b int64) (int64, error) { return a ^ b, nil }},
	{"&", 3, func(a, b int64) (int64, error) { return a & b, nil }},
	{"<<", 4, func(a, b int64) (int64, error) { return a << uint64(b), nil }},
	{">>", 4, func(a, b int64) (int64, error) { return a >> uint64(b), nil }},
	{"+", 5, func(a, b int64) (int64, error) { return a + b, nil }},
	{"-", 5, func(a, b int64) (int64, error) { return a - b, nil }},
	{"*", 6, func(a, b int64) (int64, error) { return a * b, nil }},
	{"/", 6, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	}},
	{"%", 6, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a % b, nil
	}},
}

func (p *exprParser) parseExpr(minPrec int) (int64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpace()
		op := p.peekBinaryOp()
		if op < 0 || binaryOps[op].prec < minPrec {
			return v, nil
		}
		p.pos += len(binaryOps[op].symbol)

		rhs, err := p.parseExpr(binaryOps[op].prec + 1)
		if err != nil {
			return 0, err
		}
		v, err = binaryOps[op].eval(v, rhs)
		if err != nil {
			return 0, err
		}
	}
}

// peekBinaryOp returns the index of the binary operator at the current
// position, or -1. Longer symbols are matched first so that "<<" is not
// mistaken for "<".
func (p *exprParser) peekBinaryOp() int {
	rest := p.s[p.pos:]
	match := -1
	for i, op := range binaryOps {
		if strings.HasPrefix(rest, op.symbol) {
			if match < 0 || len(op.symbol) > len(binaryOps[match].symbol) {
				match = i
			}
		}
	}
	return match
}

func (p *exprParser) parseUnary() (int64, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return 0, errExprParse
	}

	switch p.s[p.pos] {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case '+':
		p.pos++
		return p.parseUnary()
	case '~':
		p.pos++
		v, err := p.parseUnary()
		return ^v, err
	case '(':
		p.pos++
		v, err := p.parseExpr(0)
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] != ')' {
			return 0, errExprParse
		}
		p.pos++
		return v, nil
	case '\'':
		if p.pos+2 >= len(p.s) || p.s[p.pos+2] != '\'' {
			return 0, errExprParse
		}
		v := int64(p.s[p.pos+1])
		p.pos += 3
		return v, nil
	}

	return p.parseOperand()
}

func (p *exprParser) parseOperand() (int64, error) {
	rest := p.s[p.pos:]

	base, digits := 10, isDecimal
	switch {
	case rest[0] == '$':
		base, digits = 16, isHexadecimal
		p.pos++
	case strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X"):
		base, digits = 16, isHexadecimal
		p.pos += 2
	case strings.HasPrefix(rest, "0b") || strings.HasPrefix(rest, "0B"):
		base, digits = 2, isBinary
		p.pos += 2
	case p.hexMode:
		base, digits = 16, isHexadecimal
	case isIdentStart(rest[0]):
		return p.parseIdentifier()
	}

	start := p.pos
	for p.pos < len(p.s) && digits(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, errExprParse
	}

	v, err := strconv.ParseInt(p.s[start:p.pos], base, 64)
	if err != nil {
		return 0, errExprParse
	}
	return v, nil
}

func (p *exprParser) parseIdentifier() (int64, error) {
	start := p.pos
	for p.pos < len(p.s) && isIdent(p.s[p.pos]) {
		p.pos++
	}
	if p.r == nil {
		return 0, fmt.Errorf("identifier '%s' not found", p.s[start:p.pos])
	}
	return p.r.resolveIdentifier(p.s[start:p.pos])
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexadecimal(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f'
}

func isBinary(c byte) bool {
	return c == '0' || c == '1'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '.'
}

func isIdent(c byte) bool {
	return isIdentStart(c) || isDecimal(c)
}
