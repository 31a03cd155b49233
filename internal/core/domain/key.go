package domain

import "fmt"

// StageIndex identifies one phase of a node's computation. Stages are
// ordered; stage k may consume stage k-1's output.
type StageIndex int

// StageKey addresses a cache entry: which node, which stage. It is a small
// comparable composite rather than a formatted string, so it hashes and
// orders without parsing ambiguity.
type StageKey struct {
	Node  NodeID
	Stage StageIndex
}

// String implements fmt.Stringer for logs and error metadata.
func (k StageKey) String() string {
	return fmt.Sprintf("%d.%d", k.Node, k.Stage)
}

// Fingerprint is an opaque deterministic digest of whatever determines a
// stage's output. A cached value is valid iff the fingerprint recomputed
// now equals the one stored with it.
type Fingerprint string

// PatternKind discriminates cache invalidation patterns.
type PatternKind uint8

const (
	// PatternExact matches a single stage key.
	PatternExact PatternKind = iota
	// PatternNode matches every stage of one node.
	PatternNode
	// PatternAll matches every entry in the store.
	PatternAll
)

// Pattern selects cache entries for invalidation.
type Pattern struct {
	Kind PatternKind
	Key  StageKey // PatternExact
	Node NodeID   // PatternNode
}

// ExactPattern matches only the given stage key.
func ExactPattern(key StageKey) Pattern {
	return Pattern{Kind: PatternExact, Key: key}
}

// NodePattern matches all stages owned by the given node.
func NodePattern(id NodeID) Pattern {
	return Pattern{Kind: PatternNode, Node: id}
}

// AllPattern matches every entry.
func AllPattern() Pattern {
	return Pattern{Kind: PatternAll}
}

// Matches reports whether the pattern selects the given stage key.
func (p Pattern) Matches(key StageKey) bool {
	switch p.Kind {
	case PatternExact:
		return p.Key == key
	case PatternNode:
		return p.Node == key.Node
	case PatternAll:
		return true
	default:
		return false
	}
}
