package dsl

import "github.com/aria-labs/tinyaria/internal/predicate"

// -----------------------------------------------------------------------
// Condition trees
// -----------------------------------------------------------------------

// ConditionNode is the common interface for compiled condition-tree nodes.
// Trees are built bottom-up during parse and immutable afterwards.
type ConditionNode interface {
	condNode()
}

// PredicateNode is a leaf call such as contains(user_input, "hello").
// Its spec was resolved against the registry at parse time, so evaluation
// never consults the registry.
type PredicateNode struct {
	Name string
	Args []predicate.Arg
	spec predicate.Spec
}

func (*PredicateNode) condNode() {}

// AndNode represents <left> and <right>.
type AndNode struct {
	Left  ConditionNode
	Right ConditionNode
}

func (*AndNode) condNode() {}

// OrNode represents <left> or <right>.
type OrNode struct {
	Left  ConditionNode
	Right ConditionNode
}

func (*OrNode) condNode() {}

// NotNode represents not <operand>.
type NotNode struct {
	Operand ConditionNode
}

func (*NotNode) condNode() {}

// -----------------------------------------------------------------------
// Declarations
// -----------------------------------------------------------------------

// RuleDef is one compiled rule declaration. Created once during parse;
// immutable thereafter.
type RuleDef struct {
	Name       string
	Condition  ConditionNode
	Action     string // template; may contain {placeholder} references
	Confidence float64
	Pos        Pos
}

// ConfigBlock holds the settings a config (or plugin) declaration applies
// to one subsystem.
type ConfigBlock struct {
	Target   string
	Settings map[string]any
	Pos      Pos
}

// Document is the parsed form of one rule document: rules in declaration
// order (the order is the selection tie-breaker) plus config blocks.
type Document struct {
	Rules   []*RuleDef
	Configs []*ConfigBlock
}
