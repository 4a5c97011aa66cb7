package dsl

import (
	"fmt"

	"github.com/aria-labs/tinyaria/internal/predicate"
)

// Evaluate walks a compiled condition tree against ctx. It is total for
// trees produced by Parse: predicate names, arities, and argument shapes
// were all validated at compile time. The operands of "and" and "or"
// short-circuit left to right.
func Evaluate(node ConditionNode, ctx *predicate.Context) bool {
	switch n := node.(type) {
	case *PredicateNode:
		if len(n.Args) != n.spec.Arity {
			panic(fmt.Sprintf("predicate %q: arity mismatch at evaluation time (compiler bug)", n.Name))
		}
		return n.spec.Eval(ctx, n.Args)
	case *AndNode:
		return Evaluate(n.Left, ctx) && Evaluate(n.Right, ctx)
	case *OrNode:
		return Evaluate(n.Left, ctx) || Evaluate(n.Right, ctx)
	case *NotNode:
		return !Evaluate(n.Operand, ctx)
	default:
		panic(fmt.Sprintf("unknown condition node %T", node))
	}
}
