package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-labs/tinyaria/internal/config"
	"github.com/aria-labs/tinyaria/internal/engine"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

const testDoc = `
rule "greeting_response" {
    if: contains(user_input, "hello")
    then: "Здравствуйте! Как дела?"
    confidence: 0.9
}

rule "self_inquiry" {
    if: contains(user_input, "what are you")
    then: "I am TinyARIA."
    confidence: 0.95
}

rule "curiosity" {
    if: contains(user_input, "what")
    then: "Interesting question."
    confidence: 0.75
}

rule "low_confidence_hmm" {
    if: contains(user_input, "hmm")
    then: "Let me think."
    confidence: 0.4
}
`

func baseConfig() config.Subsystems {
	return config.Subsystems{
		"memory":        {"working_size": 7, "compression_enabled": false},
		"metacognition": {"confidence_threshold": 0.7},
	}
}

func compileDoc(t *testing.T, doc string) *engine.RuleTable {
	t.Helper()
	table, err := engine.Compile(doc, baseConfig(), predicate.Builtins(), engine.CompileOptions{})
	require.NoError(t, err)
	return table
}

func input(s string) *predicate.Context {
	return &predicate.Context{Input: s}
}

func TestSelect_SingleMatch(t *testing.T) {
	table := compileDoc(t, testDoc)

	d := table.Select(input("hello there"))
	assert.Equal(t, engine.ReasonMatched, d.Reason)
	assert.Equal(t, "greeting_response", d.Rule)
	assert.Equal(t, 0.9, d.Confidence)
	assert.Equal(t, "Здравствуйте! Как дела?", d.Action)
}

func TestSelect_HighestConfidenceWins(t *testing.T) {
	table := compileDoc(t, testDoc)

	// "what are you" matches both self_inquiry (0.95) and curiosity (0.75).
	d := table.Select(input("what are you"))
	assert.Equal(t, engine.ReasonMatched, d.Reason)
	assert.Equal(t, "self_inquiry", d.Rule)
	assert.Equal(t, 0.95, d.Confidence)
}

func TestSelect_NoMatch(t *testing.T) {
	table := compileDoc(t, testDoc)

	d := table.Select(input("xyz"))
	assert.Equal(t, engine.ReasonNoMatch, d.Reason)
	assert.Empty(t, d.Rule)
	assert.Empty(t, d.Action, "no fabricated action on no match")
}

func TestSelect_BelowThreshold(t *testing.T) {
	table := compileDoc(t, testDoc)

	d := table.Select(input("hmm"))
	assert.Equal(t, engine.ReasonBelowThreshold, d.Reason)
	assert.Equal(t, "low_confidence_hmm", d.Rule)
	assert.Equal(t, 0.4, d.Confidence)
	assert.Empty(t, d.Action, "below-threshold decisions carry no rendered action")
}

func TestSelect_ThresholdBoundaryInclusive(t *testing.T) {
	table := compileDoc(t, `
rule "edge" {
    if: contains(user_input, "edge")
    then: "on the line"
    confidence: 0.7
}
`)
	d := table.Select(input("edge case"))
	assert.Equal(t, engine.ReasonMatched, d.Reason, "confidence equal to threshold counts as matched")
}

func TestSelect_TieBreakDeclarationOrder(t *testing.T) {
	table := compileDoc(t, `
rule "first" {
    if: contains(user_input, "tie")
    then: "first wins"
    confidence: 0.8
}
rule "second" {
    if: contains(user_input, "tie")
    then: "second loses"
    confidence: 0.8
}
`)
	for i := 0; i < 50; i++ {
		d := table.Select(input("a tie"))
		require.Equal(t, "first", d.Rule, "tie-break must be deterministic")
	}
}

func TestSelect_TemplateRendering(t *testing.T) {
	table := compileDoc(t, `
rule "echo" {
    if: contains(user_input, "say")
    then: "you said: {user_input}, topic {memory.last_topic}, and {unknown} stays"
    confidence: 0.9
}
`)
	ctx := &predicate.Context{
		Input: "say hi",
		Bindings: map[string]any{
			"memory": map[string]any{"last_topic": "weather"},
		},
	}
	d := table.Select(ctx)
	require.Equal(t, engine.ReasonMatched, d.Reason)
	assert.Equal(t, "you said: say hi, topic weather, and {unknown} stays", d.Action)
}

func TestSelect_ConcurrentReaders(t *testing.T) {
	table := compileDoc(t, testDoc)

	done := make(chan engine.Decision, 64)
	for i := 0; i < 64; i++ {
		go func() {
			done <- table.Select(input("hello there"))
		}()
	}
	for i := 0; i < 64; i++ {
		d := <-done
		assert.Equal(t, "greeting_response", d.Rule)
	}
}
