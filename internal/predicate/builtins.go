package predicate

import (
	"fmt"
	"regexp"
	"strings"
)

// Builtins returns a registry pre-populated with the standard predicates.
// New predicates register without any parser changes.
func Builtins() *Registry {
	r := NewRegistry()

	r.Register(Spec{
		Name:  "contains",
		Arity: 2,
		Check: literalNeedle("contains"),
		Eval: func(ctx *Context, args []Arg) bool {
			return strings.Contains(args[0].StringValue(ctx), args[1].Str)
		},
	})

	r.Register(Spec{
		Name:  "equals",
		Arity: 2,
		Eval: func(ctx *Context, args []Arg) bool {
			return args[0].StringValue(ctx) == args[1].StringValue(ctx)
		},
	})

	r.Register(Spec{
		Name:  "starts_with",
		Arity: 2,
		Check: literalNeedle("starts_with"),
		Eval: func(ctx *Context, args []Arg) bool {
			return strings.HasPrefix(args[0].StringValue(ctx), args[1].Str)
		},
	})

	r.Register(Spec{
		Name:  "matches",
		Arity: 2,
		Check: func(args []Arg) error {
			if args[1].Kind != ArgString {
				return fmt.Errorf("matches: pattern must be a string literal")
			}
			if _, err := regexp.Compile(args[1].Str); err != nil {
				return fmt.Errorf("matches: invalid regex %q: %w", args[1].Str, err)
			}
			return nil
		},
		Eval: func(ctx *Context, args []Arg) bool {
			// Pattern validity was checked at compile time.
			return regexp.MustCompile(args[1].Str).MatchString(args[0].StringValue(ctx))
		},
	})

	return r
}

func literalNeedle(name string) func(args []Arg) error {
	return func(args []Arg) error {
		if args[1].Kind != ArgString {
			return fmt.Errorf("%s: second argument must be a string literal", name)
		}
		return nil
	}
}
