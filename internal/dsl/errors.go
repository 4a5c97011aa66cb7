package dsl

import "fmt"

// LexError reports an unterminated literal or unrecognized character.
// It is fatal to the compile that produced it.
type LexError struct {
	Pos Pos
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg)
}

// SyntaxError reports a grammar violation with the offending position.
type SyntaxError struct {
	Pos      Pos
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// DuplicateRuleError reports a rule name declared more than once.
type DuplicateRuleError struct {
	Name string
	Pos  Pos
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule %q at %s", e.Name, e.Pos)
}

// InvalidConfidenceError reports a confidence outside [0, 1].
type InvalidConfidenceError struct {
	Rule  string
	Value float64
}

func (e *InvalidConfidenceError) Error() string {
	return fmt.Sprintf("rule %q: confidence %v is outside [0, 1]", e.Rule, e.Value)
}

// UnknownPredicateError reports a condition calling a predicate that is not
// present in the registry. Resolving names at parse time turns what would
// be a runtime failure into a compile failure.
type UnknownPredicateError struct {
	Rule string
	Name string
	Pos  Pos
}

func (e *UnknownPredicateError) Error() string {
	return fmt.Sprintf("rule %q: unknown predicate %q at %s", e.Rule, e.Name, e.Pos)
}
