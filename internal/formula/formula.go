// Package formula evaluates the small string-encoded numeric expressions used
// by authored content to derive values from a character context, e.g.
// "level * 5", "fixed:3", or "floor(level / 2) + proficiency_bonus".
//
// Formulas are author-controlled, but they are still parsed with a fixed
// grammar and evaluated with no access to a host interpreter. Malformed input
// is a reportable error, never a crash.
package formula

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// Grammar:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := '-'? primary
//	primary := INT | SYMBOL | FUNC '(' expr (',' expr)* ')' | '(' expr ')'
//	FUNC    := 'floor' | 'min' | 'max'
//
// Division truncates toward zero unless wrapped in floor(), which rounds
// toward negative infinity. Evaluation is done in float64 and the final
// result is truncated toward zero, matching how the editors display values.

var fixedPattern = regexp.MustCompile(`^fixed:(-?\d+)$`)

// Context carries the character values a formula can reference.
type Context struct {
	Level            int
	ProficiencyBonus int // derived from Level when zero
	AbilityModifiers AbilityModifiers
}

// AbilityModifiers holds the six ability modifiers.
type AbilityModifiers struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

// DefaultProficiencyBonus returns the 5e proficiency bonus for a level:
// +2 at levels 1-4, +3 at 5-8, +4 at 9-12, +5 at 13-16, +6 at 17-20.
func DefaultProficiencyBonus(level int) int {
	if level <= 0 {
		return 0
	}
	return 2 + ((level - 1) / 4)
}

func (c *Context) resolve(symbol string) (float64, error) {
	switch symbol {
	case "level":
		return float64(c.Level), nil
	case "proficiency_bonus":
		pb := c.ProficiencyBonus
		if pb == 0 {
			pb = DefaultProficiencyBonus(c.Level)
		}
		return float64(pb), nil
	case "strength_modifier", "str_modifier":
		return float64(c.AbilityModifiers.Strength), nil
	case "dexterity_modifier", "dex_modifier":
		return float64(c.AbilityModifiers.Dexterity), nil
	case "constitution_modifier", "con_modifier":
		return float64(c.AbilityModifiers.Constitution), nil
	case "intelligence_modifier", "int_modifier":
		return float64(c.AbilityModifiers.Intelligence), nil
	case "wisdom_modifier", "wis_modifier":
		return float64(c.AbilityModifiers.Wisdom), nil
	case "charisma_modifier", "cha_modifier":
		return float64(c.AbilityModifiers.Charisma), nil
	default:
		return 0, fmt.Errorf("unrecognized symbol %q", symbol)
	}
}

// Evaluate evaluates a formula against a character context and returns an
// integer result. An unrecognized symbol or invalid expression returns an
// InvalidArgument error carrying the raw formula so the author can fix it.
func Evaluate(expr string, fctx *Context) (int, error) {
	if fctx == nil {
		return 0, errors.InvalidArgument("formula context is required")
	}

	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return 0, invalidFormula(expr, "formula is empty")
	}

	// Constant fast path: "fixed:<int>"
	if matches := fixedPattern.FindStringSubmatch(trimmed); matches != nil {
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, invalidFormula(expr, "constant out of range")
		}
		return n, nil
	}

	p := &parser{input: trimmed, resolve: fctx.resolve}
	value, err := p.parse()
	if err != nil {
		return 0, invalidFormula(expr, err.Error())
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalidFormula(expr, "result is not a finite number")
	}

	return int(value), nil
}

// Check reports whether a formula is well formed without a real character
// context. Used by validators at authoring time.
func Check(expr string) error {
	_, err := Evaluate(expr, &Context{Level: 1})
	return err
}

func invalidFormula(expr, reason string) error {
	return errors.InvalidArgumentf("invalid formula %q: %s", expr, reason).
		WithMeta("formula", expr)
}

// parser is a recursive-descent parser over the grammar above. It evaluates
// as it parses; there is no AST and no shared state.
type parser struct {
	input   string
	pos     int
	resolve func(symbol string) (float64, error)
}

func (p *parser) parse() (float64, error) {
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

func (p *parser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.consume('+'):
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case p.consume('-'):
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	value, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.consume('*'):
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case p.consume('/'):
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	p.skipSpaces()
	if p.consume('-') {
		value, err := p.parsePrimary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of formula")
	}

	ch := p.input[p.pos]
	switch {
	case ch == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if !p.consume(')') {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		return value, nil
	case ch >= '0' && ch <= '9':
		return p.parseNumber()
	case isIdentChar(ch):
		return p.parseIdent()
	default:
		return 0, fmt.Errorf("unexpected %q at position %d", ch, p.pos)
	}
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return float64(n), nil
}

func (p *parser) parseIdent() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]

	p.skipSpaces()
	if p.pos < len(p.input) && p.input[p.pos] == '(' {
		return p.parseCall(name)
	}

	return p.resolve(name)
}

func (p *parser) parseCall(name string) (float64, error) {
	p.pos++ // consume '('
	args := []float64{}
	p.skipSpaces()
	if !p.consume(')') {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			args = append(args, arg)
			p.skipSpaces()
			if p.consume(',') {
				continue
			}
			if p.consume(')') {
				break
			}
			return 0, fmt.Errorf("missing closing parenthesis in %s()", name)
		}
	}

	switch name {
	case "floor":
		if len(args) != 1 {
			return 0, fmt.Errorf("floor() takes exactly one argument")
		}
		return math.Floor(args[0]), nil
	case "min":
		if len(args) == 0 {
			return 0, fmt.Errorf("min() needs at least one argument")
		}
		result := args[0]
		for _, a := range args[1:] {
			result = math.Min(result, a)
		}
		return result, nil
	case "max":
		if len(args) == 0 {
			return 0, fmt.Errorf("max() needs at least one argument")
		}
		result := args[0]
		for _, a := range args[1:] {
			result = math.Max(result, a)
		}
		return result, nil
	default:
		return 0, fmt.Errorf("unrecognized function %q", name)
	}
}

func (p *parser) consume(ch byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == ch {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func isIdentChar(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
