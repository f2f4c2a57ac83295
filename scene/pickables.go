package scene

// Pickables is the registry of nodes eligible for pointer intersection. It
// is the single source of truth for picking: membership is never inferred
// from the node tree, and registering a node also tags it Pickable.
type Pickables struct {
	nodes []*Node
}

func NewPickables() *Pickables {
	return &Pickables{}
}

// Add registers n. Adding a node twice is a no-op.
func (p *Pickables) Add(n *Node) {
	if p.Contains(n) {
		return
	}
	n.Pickable = true
	p.nodes = append(p.nodes, n)
}

func (p *Pickables) Remove(n *Node) {
	for i, c := range p.nodes {
		if c == n {
			p.nodes = append(p.nodes[:i], p.nodes[i+1:]...)
			n.Pickable = false
			return
		}
	}
}

func (p *Pickables) Contains(n *Node) bool {
	for _, c := range p.nodes {
		if c == n {
			return true
		}
	}
	return false
}

// Nodes returns a copy of the registered nodes in registration order.
func (p *Pickables) Nodes() []*Node {
	out := make([]*Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

func (p *Pickables) Len() int {
	return len(p.nodes)
}
