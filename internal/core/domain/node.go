package domain

// NodeID is the stable integer identity of a graph node.
type NodeID int64

// Node is a graph entity: a kind, typed ports, and named parameters.
// Execution state (dirty flags, cached stage outputs) lives in the engine,
// not here; the graph is purely structural.
type Node struct {
	ID     NodeID
	Kind   string
	Inputs int
	// Outputs is the number of output ports. A node's final output is the
	// result of its last stage, exposed on every output port.
	Outputs int
	Params  map[string]Value
}

// Param returns the named parameter value and whether it is set.
func (n *Node) Param(name string) (Value, bool) {
	v, ok := n.Params[name]
	return v, ok
}

// SetParam sets a parameter value, allocating the map on first use.
func (n *Node) SetParam(name string, v Value) {
	if n.Params == nil {
		n.Params = make(map[string]Value)
	}
	n.Params[name] = v
}
