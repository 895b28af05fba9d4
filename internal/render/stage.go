package render

import (
	"sort"

	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
)

type child struct {
	node Node
	seq  int
}

// Stage is a z-ordered list of nodes. Nodes draw in ascending z; equal z
// draws in insertion order. Z is read at draw time, so nodes may change
// their z between frames.
type Stage struct {
	children []child
	nextSeq  int
}

// NewStage creates an empty stage.
func NewStage() *Stage {
	return &Stage{}
}

// Add appends a node.
func (s *Stage) Add(n Node) {
	s.children = append(s.children, child{node: n, seq: s.nextSeq})
	s.nextSeq++
}

// Insert adds a layer primitive at z. Primitives that are not drawable
// nodes are ignored.
func (s *Stage) Insert(p layers.Primitive, z float64) {
	n, ok := p.(Node)
	if !ok {
		return
	}
	p.SetZ(z)
	s.Add(n)
}

// Remove drops a layer primitive from the stage.
func (s *Stage) Remove(p layers.Primitive) {
	s.RemoveNode(p)
}

// RemoveNode drops any node that is identical to v.
func (s *Stage) RemoveNode(v any) {
	for i, c := range s.children {
		if any(c.node) == v {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// Len returns the number of nodes on the stage.
func (s *Stage) Len() int {
	return len(s.children)
}

// Nodes returns the nodes in draw order.
func (s *Stage) Nodes() []Node {
	ordered := make([]child, len(s.children))
	copy(ordered, s.children)
	sort.SliceStable(ordered, func(i, j int) bool {
		zi, zj := ordered[i].node.Z(), ordered[j].node.Z()
		if zi != zj {
			return zi < zj
		}
		return ordered[i].seq < ordered[j].seq
	})

	nodes := make([]Node, len(ordered))
	for i, c := range ordered {
		nodes[i] = c.node
	}
	return nodes
}

// Draw paints every node onto dst in z order.
func (s *Stage) Draw(dst *core.Screen) {
	for _, n := range s.Nodes() {
		n.Draw(dst)
	}
}
