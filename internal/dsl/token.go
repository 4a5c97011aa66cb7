package dsl

import "fmt"

// Kind classifies a lexical token.
type Kind int

const (
	KindEOF      Kind = iota
	KindIdent         // identifiers and field paths, e.g. confidence, memory.last_topic
	KindString        // "…" or '…', escapes resolved
	KindNumber        // digit/decimal-point shape; value parsed by the parser
	KindKeyword       // rule | plugin | config | if | then
	KindOperator      // and | or | not
	KindPunct         // { } ( ) : ,
	KindError         // lexical error; Text holds the message
)

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is one lexical unit of a rule document. Immutable, produced by the
// lexer and consumed once by the parser.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

// keywords maps the lowercased text of reserved words to their token kind.
// Keywords are case-insensitive; the lexer stores them lowercased.
var keywords = map[string]Kind{
	"rule":   KindKeyword,
	"plugin": KindKeyword,
	"config": KindKeyword,
	"if":     KindKeyword,
	"then":   KindKeyword,
	"and":    KindOperator,
	"or":     KindOperator,
	"not":    KindOperator,
}
