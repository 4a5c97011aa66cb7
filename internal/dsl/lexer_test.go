package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_SimpleRule(t *testing.T) {
	src := `
rule "greeting" {
    if: contains(user_input, "hello")
    then: "Hello!"
    confidence: 0.9
}
`
	tokens := Tokenize(src)
	require.NotEmpty(t, tokens)
	assert.Equal(t, KindEOF, tokens[len(tokens)-1].Kind)

	assert.Equal(t, Token{Kind: KindKeyword, Text: "rule", Pos: Pos{Line: 2, Col: 1}}, tokens[0])
	assert.Equal(t, KindString, tokens[1].Kind)
	assert.Equal(t, "greeting", tokens[1].Text)

	// No error tokens anywhere.
	for _, tok := range tokens {
		assert.NotEqual(t, KindError, tok.Kind, "unexpected error token %q", tok.Text)
	}
}

func TestTokenize_Comments(t *testing.T) {
	tokens := Tokenize("# a comment line\nrule # trailing\nconfig")
	assert.Equal(t, []Kind{KindKeyword, KindKeyword, KindEOF}, kinds(tokens))
}

func TestTokenize_KeywordsCaseInsensitive(t *testing.T) {
	tokens := Tokenize("RULE Config AND oR Not")
	require.Len(t, tokens, 6)
	assert.Equal(t, "rule", tokens[0].Text)
	assert.Equal(t, KindKeyword, tokens[0].Kind)
	assert.Equal(t, "config", tokens[1].Text)
	assert.Equal(t, KindOperator, tokens[2].Kind)
	assert.Equal(t, "or", tokens[3].Text)
	assert.Equal(t, "not", tokens[4].Text)
}

func TestTokenize_StringEscapesAndUTF8(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"double quotes", `"hello world"`, "hello world"},
		{"single quotes", `'hi'`, "hi"},
		{"escaped quote", `"say \"hi\""`, `say "hi"`},
		{"newline and tab", `"a\nb\tc"`, "a\nb\tc"},
		{"backslash", `"a\\b"`, `a\b`},
		{"unknown escape kept", `"a\qb"`, "aqb"},
		{"cyrillic", `"Здравствуйте! Как дела?"`, "Здравствуйте! Как дела?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := Tokenize(tc.src)
			require.Len(t, tokens, 2)
			assert.Equal(t, KindString, tokens[0].Kind)
			assert.Equal(t, tc.want, tokens[0].Text)
		})
	}
}

func TestTokenize_ErrorTokens(t *testing.T) {
	t.Run("unterminated string", func(t *testing.T) {
		tokens := Tokenize(`"never closed`)
		require.NotEmpty(t, tokens)
		assert.Equal(t, KindError, tokens[0].Kind)
		assert.Equal(t, "unterminated string literal", tokens[0].Text)
		assert.Equal(t, Pos{Line: 1, Col: 1}, tokens[0].Pos)
	})
	t.Run("newline inside string", func(t *testing.T) {
		tokens := Tokenize("\"broken\nrest\"")
		assert.Equal(t, KindError, tokens[0].Kind)
	})
	t.Run("unrecognized character", func(t *testing.T) {
		tokens := Tokenize("rule @")
		require.GreaterOrEqual(t, len(tokens), 2)
		assert.Equal(t, KindError, tokens[1].Kind)
		assert.Equal(t, Pos{Line: 1, Col: 6}, tokens[1].Pos)
	})
}

func TestTokenize_NumberShapes(t *testing.T) {
	// The lexer only recognizes digit/decimal-point shapes; a malformed
	// numeric like 1.2.3 is still a Number token and fails in the parser.
	tokens := Tokenize("0.9 42 1.2.3")
	require.Len(t, tokens, 4)
	assert.Equal(t, "0.9", tokens[0].Text)
	assert.Equal(t, "42", tokens[1].Text)
	assert.Equal(t, "1.2.3", tokens[2].Text)
	for _, tok := range tokens[:3] {
		assert.Equal(t, KindNumber, tok.Kind)
	}
}

func TestTokenize_DottedIdent(t *testing.T) {
	tokens := Tokenize("memory.last_topic")
	require.Len(t, tokens, 2)
	assert.Equal(t, KindIdent, tokens[0].Kind)
	assert.Equal(t, "memory.last_topic", tokens[0].Text)
}
