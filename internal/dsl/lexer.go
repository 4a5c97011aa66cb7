package dsl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits a rule document into tokens. It is total: malformed input
// becomes KindError tokens carrying the source position rather than a
// failure. Comments start with '#' and run to end of line; whitespace only
// separates tokens. String literal content is opaque UTF-8.
func Tokenize(src string) []Token {
	l := &lexer{src: src, line: 1, col: 1}
	var tokens []Token
	for {
		t := l.next()
		tokens = append(tokens, t)
		if t.Kind == KindEOF {
			return tokens
		}
	}
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func (l *lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

func (l *lexer) advance() rune {
	r, size := l.peek()
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) here() Pos { return Pos{Line: l.line, Col: l.col} }

func (l *lexer) next() Token {
	for l.pos < len(l.src) {
		r, _ := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '#':
			for l.pos < len(l.src) {
				if c := l.advance(); c == '\n' {
					break
				}
			}
		default:
			return l.scan(r)
		}
	}
	return Token{Kind: KindEOF, Pos: l.here()}
}

func (l *lexer) scan(r rune) Token {
	pos := l.here()
	switch {
	case r == '"' || r == '\'':
		return l.scanString(pos)
	case unicode.IsDigit(r):
		return l.scanNumber(pos)
	case unicode.IsLetter(r) || r == '_':
		return l.scanWord(pos)
	case strings.ContainsRune("{}():,", r):
		l.advance()
		return Token{Kind: KindPunct, Text: string(r), Pos: pos}
	default:
		l.advance()
		return Token{Kind: KindError, Text: "unrecognized character " + string(r), Pos: pos}
	}
}

// scanString reads a quoted literal, resolving \n, \t, \", \', and \\.
// Any other escaped rune is kept verbatim, matching the rule-file corpus.
func (l *lexer) scanString(pos Pos) Token {
	quote := l.advance()
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.advance()
		switch r {
		case quote:
			return Token{Kind: KindString, Text: b.String(), Pos: pos}
		case '\\':
			if l.pos >= len(l.src) {
				break
			}
			switch esc := l.advance(); esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteRune(esc)
			}
		case '\n':
			// Literals are single-line; use \n for embedded newlines.
			return Token{Kind: KindError, Text: "unterminated string literal", Pos: pos}
		default:
			b.WriteRune(r)
		}
	}
	return Token{Kind: KindError, Text: "unterminated string literal", Pos: pos}
}

// scanNumber recognizes digit/decimal-point shapes only; malformed numerics
// such as "1.2.3" surface as a parser error when the value is converted.
func (l *lexer) scanNumber(pos Pos) Token {
	start := l.pos
	for l.pos < len(l.src) {
		r, _ := l.peek()
		if !unicode.IsDigit(r) && r != '.' {
			break
		}
		l.advance()
	}
	return Token{Kind: KindNumber, Text: l.src[start:l.pos], Pos: pos}
}

func (l *lexer) scanWord(pos Pos) Token {
	start := l.pos
	for l.pos < len(l.src) {
		r, _ := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			break
		}
		l.advance()
	}
	word := l.src[start:l.pos]
	if kind, ok := keywords[strings.ToLower(word)]; ok {
		return Token{Kind: kind, Text: strings.ToLower(word), Pos: pos}
	}
	return Token{Kind: KindIdent, Text: word, Pos: pos}
}
