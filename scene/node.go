package scene

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrChildNotFound = errors.New("trying to remove unexisting child from node")
	ErrCycle         = errors.New("node cannot become its own descendant")
	ErrNilNode       = errors.New("nil node")
)

var nodeIDCounter atomic.Uint32

// Node represents an object in the scene graph. It owns its children and
// holds a non-owning link to its parent.
type Node struct {
	Transform

	// Visible nodes are collected for rendering, together with their
	// subtree. Hidden nodes are still updated.
	Visible bool

	id       uint32
	name     string
	data     Payload
	parent   *Node
	children []*Node

	world mgl32.Mat4
	// stale forces a world rebuild on the next Update, after reparenting.
	stale bool
}

// NewNode creates a node carrying data, which may be nil.
func NewNode(data Payload) *Node {
	return NewNamedNode("", data)
}

func NewNamedNode(name string, data Payload) *Node {
	return &Node{
		Transform: NewTransform(),
		Visible:   true,
		id:        nodeIDCounter.Add(1),
		name:      name,
		data:      data,
		world:     mgl32.Ident4(),
		stale:     true,
	}
}

func (n *Node) ID() uint32        { return n.id }
func (n *Node) Name() string      { return n.name }
func (n *Node) Data() Payload     { return n.data }
func (n *Node) SetData(p Payload) { n.data = p }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// WorldMatrix returns the world matrix computed by the last Update.
func (n *Node) WorldMatrix() mgl32.Mat4 { return n.world }

// AddChild attaches child under n, detaching it from its previous parent.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}
	child.parent = n
	child.stale = true
	n.children = append(n.children, child)
	return nil
}

func (n *Node) RemoveChild(child *Node) error {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.stale = true
			return nil
		}
	}
	return ErrChildNotFound
}

// Update refreshes world matrices top-down and advances every payload.
// A node's world matrix is rebuilt when its own transform changed, when it
// was reparented, or when an ancestor's world matrix was rebuilt.
func (n *Node) Update(elapsed time.Duration) {
	n.update(elapsed, false)
}

func (n *Node) update(elapsed time.Duration, parentMoved bool) {
	moved := parentMoved || n.stale || n.Transform.Dirty()
	if moved {
		local := n.Transform.Matrix()
		if n.parent != nil {
			n.world = n.parent.world.Mul4(local)
		} else {
			n.world = local
		}
		n.stale = false
	}

	if n.data != nil {
		n.data.Update(elapsed)
	}
	for _, child := range n.children {
		child.update(elapsed, moved)
	}
}

// Collect hands every visible payload to c, parents before children and
// siblings in insertion order. Hidden nodes prune their subtree.
func (n *Node) Collect(c Collector) error {
	if !n.Visible {
		return nil
	}
	if n.data != nil {
		if err := c.Add(n.data, n.world); err != nil {
			return err
		}
	}
	for _, child := range n.children {
		if err := child.Collect(c); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Find returns the first node named name in n's subtree.
func (n *Node) Find(name string) *Node {
	if n.name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
