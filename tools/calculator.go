// Package tools holds the builtin tool bodies: calculator, web search and
// file management.
package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Calculate safely evaluates a basic arithmetic expression. Supported:
// + - * / % ** and parentheses, with unary plus/minus. No variables or
// function calls.
//
//	Calculate("2 + 2 * 3") // 8
func Calculate(expression string) (float64, error) {
	p := &calcParser{input: expression}
	value, err := p.parseExpr(0)
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("invalid expression: unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

// Operator precedence: additive 1, multiplicative 2, unary 3, power 4.
// Power is right-associative and binds tighter than unary on its left, so
// -2**2 is -(2**2) and 2**-3 is valid.
const (
	precAdd   = 1
	precMul   = 2
	precUnary = 3
	precPow   = 4
)

type calcParser struct {
	input string
	pos   int
}

func (p *calcParser) parseExpr(minPrec int) (float64, error) {
	left, err := p.parseOperand()
	if err != nil {
		return 0, err
	}

	for {
		op, prec, ok := p.peekOperator()
		if !ok || prec < minPrec {
			return left, nil
		}
		p.consumeOperator(op)

		// Right-associativity for ** means the right side may claim
		// operators of equal precedence.
		nextMin := prec + 1
		if op == "**" {
			nextMin = prec
		}

		right, err := p.parseExpr(nextMin)
		if err != nil {
			return 0, err
		}

		left, err = applyOperator(op, left, right)
		if err != nil {
			return 0, err
		}
	}
}

func (p *calcParser) parseOperand() (float64, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("invalid expression: unexpected end of input")
	}

	switch c := p.input[p.pos]; {
	case c == '+':
		p.pos++
		return p.parseExpr(precUnary)
	case c == '-':
		p.pos++
		value, err := p.parseExpr(precUnary)
		if err != nil {
			return 0, err
		}
		return -value, nil
	case c == '(':
		p.pos++
		value, err := p.parseExpr(0)
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, fmt.Errorf("invalid expression: missing closing parenthesis")
		}
		p.pos++
		return value, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case unicode.IsLetter(rune(c)):
		return 0, fmt.Errorf("disallowed syntax in expression")
	default:
		return 0, fmt.Errorf("invalid expression: unexpected %q at position %d", c, p.pos)
	}
}

func (p *calcParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expression: bad number %q", p.input[start:p.pos])
	}
	return value, nil
}

// peekOperator reports the binary operator at the cursor, if any.
func (p *calcParser) peekOperator() (op string, prec int, ok bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return "", 0, false
	}
	if strings.HasPrefix(p.input[p.pos:], "**") {
		return "**", precPow, true
	}
	switch p.input[p.pos] {
	case '+', '-':
		return string(p.input[p.pos]), precAdd, true
	case '*', '/', '%':
		return string(p.input[p.pos]), precMul, true
	}
	return "", 0, false
}

func (p *calcParser) consumeOperator(op string) {
	p.pos += len(op)
}

func (p *calcParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func applyOperator(op string, left, right float64) (float64, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return left / right, nil
	case "%":
		if right == 0 {
			return 0, fmt.Errorf("modulo by zero")
		}
		return math.Mod(left, right), nil
	case "**":
		return math.Pow(left, right), nil
	}
	return 0, fmt.Errorf("invalid expression: unknown operator %q", op)
}
