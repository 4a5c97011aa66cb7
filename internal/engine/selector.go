package engine

import (
	"fmt"
	"strings"

	"github.com/aria-labs/tinyaria/internal/dsl"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

// Reason explains a selection outcome.
type Reason string

const (
	ReasonMatched        Reason = "matched"
	ReasonNoMatch        Reason = "no_match"
	ReasonBelowThreshold Reason = "below_threshold"
)

// Decision is the outcome of evaluating one input against a RuleTable.
type Decision struct {
	Rule       string  `json:"rule,omitempty"`
	Confidence float64 `json:"confidence"`
	Action     string  `json:"action,omitempty"`
	Reason     Reason  `json:"reason"`
}

// Select evaluates every rule's condition in declaration order, picks the
// match with the highest confidence (ties go to the earlier declaration),
// and renders the winner's action template. A winner strictly below the
// threshold is reported as below_threshold with no rendered action; the
// boundary is inclusive. Select never mutates the table.
func (t *RuleTable) Select(ctx *predicate.Context) Decision {
	var best *dsl.RuleDef
	for _, r := range t.Rules {
		if !dsl.Evaluate(r.Condition, ctx) {
			continue
		}
		if best == nil || r.Confidence > best.Confidence {
			best = r
		}
	}
	if best == nil {
		return Decision{Reason: ReasonNoMatch}
	}
	if best.Confidence < t.Threshold {
		return Decision{Rule: best.Name, Confidence: best.Confidence, Reason: ReasonBelowThreshold}
	}
	return Decision{
		Rule:       best.Name,
		Confidence: best.Confidence,
		Action:     renderTemplate(best.Action, ctx),
		Reason:     ReasonMatched,
	}
}

// renderTemplate substitutes {placeholder} references from the evaluation
// context. Unresolved placeholders stay verbatim; rendering never fails.
func renderTemplate(tmpl string, ctx *predicate.Context) string {
	if !strings.ContainsRune(tmpl, '{') {
		return tmpl
	}
	var b strings.Builder
	i := 0
	for i < len(tmpl) {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		open += i
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		end += open
		name := tmpl[open+1 : end]
		if v, ok := ctx.Resolve(name); ok {
			b.WriteString(tmpl[i:open])
			fmt.Fprintf(&b, "%v", v)
		} else {
			b.WriteString(tmpl[i : end+1])
		}
		i = end + 1
	}
	return b.String()
}
