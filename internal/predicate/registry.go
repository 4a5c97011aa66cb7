package predicate

import (
	"fmt"
	"strconv"
	"sync"
)

// ArgKind discriminates the shapes a predicate argument can take.
type ArgKind int

const (
	ArgString ArgKind = iota // quoted literal
	ArgNumber                // numeric literal
	ArgBool                  // true | false
	ArgField                 // context field reference, e.g. user_input or memory.last_topic
)

// Arg is one pre-parsed predicate argument. For ArgField, Str holds the
// dotted path into the evaluation context.
type Arg struct {
	Kind ArgKind
	Str  string
	Num  float64
	Bool bool
}

// StringValue resolves the argument to a string against ctx. A field that
// is absent at evaluation time resolves to the empty string: missing
// bindings are data, not errors, and evaluation must stay total.
func (a Arg) StringValue(ctx *Context) string {
	switch a.Kind {
	case ArgString:
		return a.Str
	case ArgField:
		v, ok := ctx.Resolve(a.Str)
		if !ok {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	case ArgNumber:
		return strconv.FormatFloat(a.Num, 'f', -1, 64)
	case ArgBool:
		return strconv.FormatBool(a.Bool)
	}
	return ""
}

// Func evaluates one predicate invocation. Implementations must be total:
// argument count and shapes were validated before the document compiled.
type Func func(ctx *Context, args []Arg) bool

// Spec describes one registered predicate.
type Spec struct {
	Name  string
	Arity int
	// Check validates argument shapes at compile time, beyond the arity
	// check the parser already performs. May be nil.
	Check func(args []Arg) error
	Eval  Func
}

// Registry maps predicate names to their specs. The parser resolves every
// predicate call against it at compile time, so an unknown name can never
// reach evaluation. Safe for concurrent reads; Register should only be
// called during startup.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a spec. Panics on duplicate name to surface misconfiguration early.
func (r *Registry) Register(s Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[s.Name]; exists {
		panic(fmt.Sprintf("predicate registry: duplicate name %q", s.Name))
	}
	r.specs[s.Name] = s
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[name]
	return s, ok
}

// Names returns all registered predicate names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.specs))
	for k := range r.specs {
		out = append(out, k)
	}
	return out
}
