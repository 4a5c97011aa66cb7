package predicate

import "strings"

// Context is the read-only runtime input for a single evaluation: the user
// utterance plus auxiliary bindings supplied by collaborators (memory
// snapshots, perception output, and so on). The engine never retains it
// past the call.
type Context struct {
	Input    string
	Bindings map[string]any
}

// Resolve walks a dot-separated path. "user_input" always resolves to the
// raw input; every other path is looked up in Bindings, descending into
// nested maps for the remaining segments.
func (c *Context) Resolve(path string) (any, bool) {
	if path == "user_input" {
		return c.Input, true
	}
	if c.Bindings == nil {
		return nil, false
	}
	return resolveMap(c.Bindings, strings.Split(path, "."))
}

func resolveMap(m map[string]any, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	val, ok := m[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return val, true
	}
	sub, ok := val.(map[string]any)
	if !ok {
		return nil, false
	}
	return resolveMap(sub, path[1:])
}
