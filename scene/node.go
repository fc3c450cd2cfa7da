package scene

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/hutsulruslan/arplace"
)

// Kind classifies what a node represents, which is all the overlay
// renderer needs to choose how to draw it.
type Kind uint8

const (
	// KindGroup is a pure transform node with no geometry of its own.
	KindGroup Kind = iota

	// KindMesh is a renderable box-bounded mesh node.
	KindMesh

	// KindReticle is the placement marker drawn as a surface-aligned ring.
	KindReticle
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindReticle:
		return "reticle"
	default:
		return "group"
	}
}

// Node is an element of the scene graph.
//
// A node's pose is stored by value: SetPose snapshots its argument and Pose
// returns a copy, so a node can never alias a caller's pose — a placed
// instance keeps the pose it was given even when the source moves on.
type Node struct {
	id       uuid.UUID
	name     string
	kind     Kind
	pose     arplace.Pose
	visible  bool
	children []*Node

	// HalfExtent is the node's half-size along each local axis, used for
	// overlay footprints. Zero for group nodes.
	HalfExtent arplace.Vec3

	// Color is the node's overlay draw color.
	Color color.RGBA
}

// NewNode creates a visible node of the given kind at the identity pose.
func NewNode(name string, kind Kind) *Node {
	return &Node{
		id:      uuid.New(),
		name:    name,
		kind:    kind,
		pose:    arplace.PoseIdentity(),
		visible: true,
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Pose returns a copy of the node's pose.
func (n *Node) Pose() arplace.Pose { return n.pose }

// SetPose stores a snapshot of the given pose.
func (n *Node) SetPose(p arplace.Pose) { n.pose = p }

// Visible reports whether the node should be drawn.
func (n *Node) Visible() bool { return n.visible }

// SetVisible sets the node's visibility flag.
func (n *Node) SetVisible(v bool) { n.visible = v }

// AddChild attaches a child node. Child poses are relative to the parent.
func (n *Node) AddChild(c *Node) {
	if c == nil {
		return
	}
	n.children = append(n.children, c)
}

// Children returns the node's direct children.
// The returned slice is the node's own; callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Clone returns a deep copy of the node tree with fresh identifiers.
// The clone shares no mutable state with the original.
func (n *Node) Clone() *Node {
	c := &Node{
		id:         uuid.New(),
		name:       n.name,
		kind:       n.kind,
		pose:       n.pose,
		visible:    n.visible,
		HalfExtent: n.HalfExtent,
		Color:      n.Color,
	}
	if len(n.children) > 0 {
		c.children = make([]*Node, len(n.children))
		for i, child := range n.children {
			c.children[i] = child.Clone()
		}
	}
	return c
}

// WorldPose returns the node's pose composed with the given parent pose.
func (n *Node) WorldPose(parent arplace.Pose) arplace.Pose {
	return parent.Mul(n.pose)
}
