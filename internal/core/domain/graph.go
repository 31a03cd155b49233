// Package domain contains the core domain model for the node graph:
// nodes, connections, parameter values, stage keys, and payloads.
package domain

import (
	"fmt"
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Connection is a directed edge between two ports. Connections are the only
// expression of dependency between nodes; "downstream of X" is derived by
// scanning connections whose From equals X.
type Connection struct {
	From     NodeID
	FromPort int
	To       NodeID
	ToPort   int
}

// Graph is a directed graph of nodes and port-to-port connections. It is
// purely structural and carries no execution state.
type Graph struct {
	nodes       map[NodeID]*Node
	connections []Connection
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*Node),
	}
}

// AddNode adds a node to the graph.
// It returns an error if a node with the same id already exists.
func (g *Graph) AddNode(n *Node) error {
	if _, exists := g.nodes[n.ID]; exists {
		return zerr.With(zerr.Wrap(ErrNodeAlreadyExists, "add node"), "node_id", fmt.Sprint(n.ID))
	}
	g.nodes[n.ID] = n
	return nil
}

// RemoveNode removes a node and every connection touching it.
func (g *Graph) RemoveNode(id NodeID) {
	delete(g.nodes, id)
	g.connections = slices.DeleteFunc(g.connections, func(c Connection) bool {
		return c.From == id || c.To == id
	})
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrNodeNotFound, "lookup node"), "node_id", fmt.Sprint(id))
	}
	return n, nil
}

// Nodes returns an iterator over the graph's nodes, in unspecified order.
func (g *Graph) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Connect adds a directed edge (from, fromPort) -> (to, toPort) after
// checking that both endpoints exist and the ports are in range.
func (g *Graph) Connect(c Connection) error {
	from, err := g.Node(c.From)
	if err != nil {
		return err
	}
	to, err := g.Node(c.To)
	if err != nil {
		return err
	}
	if c.FromPort < 0 || c.FromPort >= from.Outputs {
		err := zerr.With(zerr.Wrap(ErrPortOutOfRange, "connect output"), "node_id", fmt.Sprint(c.From))
		return zerr.With(err, "port", fmt.Sprint(c.FromPort))
	}
	if c.ToPort < 0 || c.ToPort >= to.Inputs {
		err := zerr.With(zerr.Wrap(ErrPortOutOfRange, "connect input"), "node_id", fmt.Sprint(c.To))
		return zerr.With(err, "port", fmt.Sprint(c.ToPort))
	}
	g.connections = append(g.connections, c)
	return nil
}

// Disconnect removes an edge. Removing an edge that does not exist is a no-op.
func (g *Graph) Disconnect(c Connection) {
	g.connections = slices.DeleteFunc(g.connections, func(e Connection) bool {
		return e == c
	})
}

// ConnectionsFrom returns the connections whose source is the given node.
func (g *Graph) ConnectionsFrom(id NodeID) []Connection {
	var out []Connection
	for _, c := range g.connections {
		if c.From == id {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsTo returns the connections whose destination is the given
// node, ordered by destination port so that stage inputs line up with the
// node's declared input ports.
func (g *Graph) ConnectionsTo(id NodeID) []Connection {
	var out []Connection
	for _, c := range g.connections {
		if c.To == id {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Connection) int {
		return a.ToPort - b.ToPort
	})
	return out
}

// DownstreamOf returns the ids of nodes one hop downstream of the given
// node, deduplicated.
func (g *Graph) DownstreamOf(id NodeID) []NodeID {
	seen := make(map[NodeID]bool)
	var out []NodeID
	for _, c := range g.connections {
		if c.From == id && !seen[c.To] {
			seen[c.To] = true
			out = append(out, c.To)
		}
	}
	return out
}

// EvalOrder returns the given targets and their transitive upstream
// dependencies in evaluation order (upstream first), detecting cycles.
// The engine itself only tracks invalidation; callers use this walk to
// visit nodes dependency-first.
func (g *Graph) EvalOrder(targets []NodeID) ([]NodeID, error) {
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[NodeID]int, len(g.nodes))
	var order []NodeID
	var path []NodeID

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if _, ok := g.nodes[id]; !ok {
			return zerr.With(zerr.Wrap(ErrNodeNotFound, "eval order"), "node_id", fmt.Sprint(id))
		}
		state[id] = visiting
		path = append(path, id)

		for _, c := range g.ConnectionsTo(id) {
			switch state[c.From] {
			case visiting:
				return g.buildCycleError(path, c.From)
			case unvisited:
				if err := visit(c.From); err != nil {
					return err
				}
			}
		}

		state[id] = visited
		path = path[:len(path)-1]
		order = append(order, id)
		return nil
	}

	for _, id := range targets {
		if state[id] == unvisited {
			if err := visit(id); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []NodeID, start NodeID) error {
	cyclePath := ""
	startIdx := -1
	for i, id := range path {
		if id == start {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += fmt.Sprintf("%d -> ", path[i])
	}
	cyclePath += fmt.Sprint(start)
	return zerr.With(zerr.Wrap(ErrCycleDetected, "eval order"), "cycle", cyclePath)
}
