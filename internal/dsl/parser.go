package dsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aria-labs/tinyaria/internal/predicate"
)

// Parse builds a Document from a token stream, resolving every predicate
// call against reg. All semantic validation happens here: rule names are
// unique, confidences lie in [0, 1], and every predicate exists with the
// right argument count and shapes. A document that parses cleanly can be
// evaluated without runtime errors.
func Parse(tokens []Token, reg *predicate.Registry) (*Document, error) {
	p := &parser{tokens: tokens, reg: reg, seen: make(map[string]bool)}
	return p.parseDocument()
}

type parser struct {
	tokens []Token
	pos    int
	reg    *predicate.Registry
	seen   map[string]bool // declared rule names
	rule   string          // name of the rule being parsed, for error context
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) consume() Token {
	t := p.tokens[p.pos]
	if t.Kind != KindEOF {
		p.pos++
	}
	return t
}

// expect consumes the next token if it matches kind (and text, when
// non-empty); otherwise it returns a SyntaxError.
func (p *parser) expect(kind Kind, text, what string) (Token, error) {
	t := p.peek()
	if err := p.checkLex(t); err != nil {
		return t, err
	}
	if t.Kind != kind || (text != "" && t.Text != text) {
		return t, p.errorf(t, what)
	}
	return p.consume(), nil
}

// checkLex converts an error token into a LexError.
func (p *parser) checkLex(t Token) error {
	if t.Kind == KindError {
		return &LexError{Pos: t.Pos, Msg: t.Text}
	}
	return nil
}

func (p *parser) errorf(found Token, expected string) error {
	text := found.Text
	if found.Kind == KindEOF {
		text = "end of input"
	} else if found.Kind == KindString {
		text = strconv.Quote(text)
	}
	return &SyntaxError{Pos: found.Pos, Expected: expected, Found: text}
}

func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}
	for {
		t := p.peek()
		if err := p.checkLex(t); err != nil {
			return nil, err
		}
		if t.Kind == KindEOF {
			return doc, nil
		}
		if t.Kind != KindKeyword {
			return nil, p.errorf(t, `"rule", "config", or "plugin"`)
		}
		switch t.Text {
		case "rule":
			r, err := p.parseRule()
			if err != nil {
				return nil, err
			}
			doc.Rules = append(doc.Rules, r)
		case "config":
			c, err := p.parseConfig()
			if err != nil {
				return nil, err
			}
			doc.Configs = append(doc.Configs, c)
		case "plugin":
			c, err := p.parsePlugin()
			if err != nil {
				return nil, err
			}
			doc.Configs = append(doc.Configs, c)
		default:
			return nil, p.errorf(t, `"rule", "config", or "plugin"`)
		}
	}
}

// rule_decl := "rule" STRING "{" "if" ":" condition "then" ":" STRING "confidence" ":" NUMBER "}"
func (p *parser) parseRule() (*RuleDef, error) {
	kw := p.consume() // "rule"

	name, err := p.expect(KindString, "", "rule name string")
	if err != nil {
		return nil, err
	}
	if p.seen[name.Text] {
		return nil, &DuplicateRuleError{Name: name.Text, Pos: name.Pos}
	}
	p.seen[name.Text] = true
	p.rule = name.Text
	defer func() { p.rule = "" }()

	if _, err := p.expect(KindPunct, "{", `"{"`); err != nil {
		return nil, err
	}

	if _, err := p.expect(KindKeyword, "if", `"if:"`); err != nil {
		return nil, err
	}
	if _, err := p.expect(KindPunct, ":", `":"`); err != nil {
		return nil, err
	}
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(KindKeyword, "then", `"then:"`); err != nil {
		return nil, err
	}
	if _, err := p.expect(KindPunct, ":", `":"`); err != nil {
		return nil, err
	}
	action, err := p.expect(KindString, "", "action string")
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.Kind != KindIdent || !strings.EqualFold(t.Text, "confidence") {
		if err := p.checkLex(t); err != nil {
			return nil, err
		}
		return nil, p.errorf(t, `"confidence:"`)
	}
	p.consume()
	if _, err := p.expect(KindPunct, ":", `":"`); err != nil {
		return nil, err
	}
	num, err := p.expect(KindNumber, "", "confidence number")
	if err != nil {
		return nil, err
	}
	conf, err := strconv.ParseFloat(num.Text, 64)
	if err != nil {
		return nil, p.errorf(num, "number")
	}
	if conf < 0 || conf > 1 || math.IsNaN(conf) {
		return nil, &InvalidConfidenceError{Rule: name.Text, Value: conf}
	}

	if _, err := p.expect(KindPunct, "}", `"}"`); err != nil {
		return nil, err
	}

	return &RuleDef{
		Name:       name.Text,
		Condition:  cond,
		Action:     action.Text,
		Confidence: conf,
		Pos:        kw.Pos,
	}, nil
}

// -----------------------------------------------------------------------
// Conditions: not binds tighter than and, which binds tighter than or.
// -----------------------------------------------------------------------

// or_expr := and_expr ("or" and_expr)*
func (p *parser) parseOr() (ConditionNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == KindOperator && p.peek().Text == "or" {
		p.consume()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrNode{Left: left, Right: right}
	}
	return left, nil
}

// and_expr := not_expr ("and" not_expr)*
func (p *parser) parseAnd() (ConditionNode, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == KindOperator && p.peek().Text == "and" {
		p.consume()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &AndNode{Left: left, Right: right}
	}
	return left, nil
}

// not_expr := "not" not_expr | "(" or_expr ")" | predicate
func (p *parser) parseNot() (ConditionNode, error) {
	t := p.peek()
	if t.Kind == KindOperator && t.Text == "not" {
		p.consume()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &NotNode{Operand: inner}, nil
	}
	if t.Kind == KindPunct && t.Text == "(" {
		p.consume()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(KindPunct, ")", `")"`); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parsePredicate()
}

// predicate := IDENT "(" (value ("," value)*)? ")"
func (p *parser) parsePredicate() (ConditionNode, error) {
	name, err := p.expect(KindIdent, "", "predicate name")
	if err != nil {
		return nil, err
	}
	spec, ok := p.reg.Lookup(name.Text)
	if !ok {
		return nil, &UnknownPredicateError{Rule: p.rule, Name: name.Text, Pos: name.Pos}
	}

	if _, err := p.expect(KindPunct, "(", `"("`); err != nil {
		return nil, err
	}
	var args []predicate.Arg
	if !(p.peek().Kind == KindPunct && p.peek().Text == ")") {
		for {
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Kind == KindPunct && p.peek().Text == "," {
				p.consume()
				continue
			}
			break
		}
	}
	if _, err := p.expect(KindPunct, ")", `")"`); err != nil {
		return nil, err
	}

	if len(args) != spec.Arity {
		return nil, p.errorf(name, fmt.Sprintf("%d arguments to %s, found %d", spec.Arity, name.Text, len(args)))
	}
	if spec.Check != nil {
		if err := spec.Check(args); err != nil {
			return nil, &SyntaxError{Pos: name.Pos, Expected: "valid predicate arguments", Found: err.Error()}
		}
	}
	return &PredicateNode{Name: name.Text, Args: args, spec: spec}, nil
}

// parseArg reads a single predicate argument: a literal or a context field
// reference. The identifiers true/false are boolean literals.
func (p *parser) parseArg() (predicate.Arg, error) {
	t := p.peek()
	if err := p.checkLex(t); err != nil {
		return predicate.Arg{}, err
	}
	switch t.Kind {
	case KindString:
		p.consume()
		return predicate.Arg{Kind: predicate.ArgString, Str: t.Text}, nil
	case KindNumber:
		p.consume()
		n, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return predicate.Arg{}, p.errorf(t, "number")
		}
		return predicate.Arg{Kind: predicate.ArgNumber, Num: n}, nil
	case KindIdent:
		p.consume()
		switch t.Text {
		case "true", "false":
			return predicate.Arg{Kind: predicate.ArgBool, Bool: t.Text == "true"}, nil
		}
		return predicate.Arg{Kind: predicate.ArgField, Str: t.Text}, nil
	default:
		return predicate.Arg{}, p.errorf(t, "argument value")
	}
}

// -----------------------------------------------------------------------
// Config and plugin blocks
// -----------------------------------------------------------------------

// config_decl := "config" IDENT? "{" (IDENT ":" value)* "}"
// A target-less block applies to the core subsystem.
func (p *parser) parseConfig() (*ConfigBlock, error) {
	kw := p.consume() // "config"
	target := "core"
	if t := p.peek(); t.Kind == KindIdent {
		p.consume()
		target = t.Text
	}
	settings, err := p.parseSettings()
	if err != nil {
		return nil, err
	}
	return &ConfigBlock{Target: target, Settings: settings, Pos: kw.Pos}, nil
}

// plugin_decl := "plugin" IDENT "{" (IDENT ":" value)* "}"
// Plugin settings participate in the same merge as config blocks, keyed by
// the plugin name.
func (p *parser) parsePlugin() (*ConfigBlock, error) {
	kw := p.consume() // "plugin"
	name, err := p.expect(KindIdent, "", "plugin name")
	if err != nil {
		return nil, err
	}
	settings, err := p.parseSettings()
	if err != nil {
		return nil, err
	}
	return &ConfigBlock{Target: name.Text, Settings: settings, Pos: kw.Pos}, nil
}

func (p *parser) parseSettings() (map[string]any, error) {
	if _, err := p.expect(KindPunct, "{", `"{"`); err != nil {
		return nil, err
	}
	settings := make(map[string]any)
	for {
		t := p.peek()
		if err := p.checkLex(t); err != nil {
			return nil, err
		}
		if t.Kind == KindPunct && t.Text == "}" {
			p.consume()
			return settings, nil
		}
		key, err := p.expect(KindIdent, "", "setting key")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(KindPunct, ":", `":"`); err != nil {
			return nil, err
		}
		val, err := p.parseScalar()
		if err != nil {
			return nil, err
		}
		settings[key.Text] = val
	}
}

// parseScalar reads a bool, number, or string setting value.
func (p *parser) parseScalar() (any, error) {
	t := p.peek()
	if err := p.checkLex(t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case KindString:
		p.consume()
		return t.Text, nil
	case KindNumber:
		p.consume()
		n, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errorf(t, "number")
		}
		return n, nil
	case KindIdent:
		if t.Text == "true" || t.Text == "false" {
			p.consume()
			return t.Text == "true", nil
		}
	}
	return nil, p.errorf(t, "scalar value")
}
