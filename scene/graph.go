package scene

import "github.com/hutsulruslan/arplace"

// Graph is the append-only registry of top-level scene nodes.
//
// The placement loop registers the marker once and adds one node per placed
// instance; nothing is ever removed. Version is incremented on each
// modification so renderers can cheaply detect change.
type Graph struct {
	nodes   []*Node
	version uint64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]*Node, 0, 8),
	}
}

// Add registers a top-level node. Nil nodes are ignored.
func (g *Graph) Add(n *Node) {
	if n == nil {
		return
	}
	g.nodes = append(g.nodes, n)
	g.version++
}

// Len returns the number of registered top-level nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the registered top-level nodes in registration order.
// The returned slice is the graph's own; callers must not modify it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Version returns the graph version number.
// This is incremented on each Add and can be used for redraw decisions.
func (g *Graph) Version() uint64 {
	return g.version
}

// Visit walks the graph depth-first, calling fn with each node and its
// world pose. Invisible nodes and their subtrees are skipped.
func (g *Graph) Visit(fn func(n *Node, world arplace.Pose)) {
	for _, n := range g.nodes {
		visit(n, arplace.PoseIdentity(), fn)
	}
}

func visit(n *Node, parent arplace.Pose, fn func(*Node, arplace.Pose)) {
	if !n.visible {
		return
	}
	world := n.WorldPose(parent)
	fn(n, world)
	for _, c := range n.children {
		visit(c, world, fn)
	}
}
