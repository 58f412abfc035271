package doxygen

import (
	"encoding/json"
	"strings"

	"github.com/itsmostafa/godoxy/internal/xmldoc"
)

// Node is a documented entity in the tree. Children are owned exclusively by
// their Node; Parent is a lookup-only back reference to the Node whose
// Children currently hold it.
type Node struct {
	Refid    string  `json:"refid"`
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name"`
	Children []*Node `json:"children,omitempty"`
	Parent   *Node   `json:"-"`

	// Refs lists refids a container declared as members but does not own,
	// because another Node claimed them first.
	Refs []string `json:"refs,omitempty"`

	// Details stays a stub until Finalize runs.
	Details   *Details `json:"details,omitempty"`
	finalized bool

	// xml is the compounddef or memberdef element the Node was built from.
	// It is kept until Finalize so details can be read once the cache is whole.
	xml *xmldoc.Element
}

// NewNode returns a Node with an empty detail stub.
func NewNode(refid string, kind Kind, name string) *Node {
	return &Node{
		Refid:   refid,
		Kind:    kind,
		Name:    name,
		Details: &Details{},
	}
}

// newRoot returns the sentinel Node owning the top-level forest.
func newRoot() *Node {
	return NewNode("index", KindIndex, "index")
}

// IsRoot reports whether n is the sentinel root.
func (n *Node) IsRoot() bool {
	return n != nil && n.Kind == KindIndex
}

// Finalized reports whether Finalize already filled the detail payload.
func (n *Node) Finalized() bool {
	return n.finalized
}

// unowned reports whether n can still be claimed by a container: it has no
// parent yet or only sits at the top level of the tree.
func (n *Node) unowned() bool {
	return n.Parent == nil || n.Parent.IsRoot()
}

// adopt makes n the owner of child. Any entry for child in its previous
// owner's Children is left for cleanup to drop.
func (n *Node) adopt(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Cleanup removes from n.Children every Node whose Parent is no longer n.
// It returns the number of entries removed.
func (n *Node) Cleanup() int {
	kept := n.Children[:0]
	removed := 0
	for _, child := range n.Children {
		if child.Parent != n {
			removed++
			continue
		}
		kept = append(kept, child)
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
	return removed
}

// Walk traverses the subtree in depth-first order, calling fn for each node.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// AllNodes returns all nodes of the subtree as a flat slice.
func (n *Node) AllNodes() []*Node {
	var nodes []*Node
	n.Walk(func(node *Node) {
		nodes = append(nodes, node)
	})
	return nodes
}

// FindChild returns the direct child with the given refid.
func (n *Node) FindChild(refid string) (*Node, bool) {
	for _, child := range n.Children {
		if child.Refid == refid {
			return child, true
		}
	}
	return nil, false
}

// ChildrenOfKind returns the direct children whose kind is one of kinds.
func (n *Node) ChildrenOfKind(kinds ...Kind) []*Node {
	var out []*Node
	for _, child := range n.Children {
		for _, k := range kinds {
			if child.Kind == k {
				out = append(out, child)
				break
			}
		}
	}
	return out
}

// Path returns the chain of Nodes from the top level down to n, root excluded.
func (n *Node) Path() []*Node {
	var path []*Node
	for cur := n; cur != nil && !cur.IsRoot(); cur = cur.Parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Breadcrumb returns the names along Path joined by sep.
func (n *Node) Breadcrumb(sep string) string {
	var names []string
	for _, p := range n.Path() {
		names = append(names, p.Name)
	}
	return strings.Join(names, sep)
}

// String returns a JSON representation of the Node for debugging.
func (n *Node) String() string {
	b, _ := json.MarshalIndent(n, "", "  ")
	return string(b)
}

// Search returns the Nodes of the subtree, n excluded, whose name contains
// substr, ignoring case. An empty kind matches every kind.
func (n *Node) Search(substr string, kind Kind) []*Node {
	substr = strings.ToLower(substr)
	var out []*Node
	for _, child := range n.Children {
		child.Walk(func(c *Node) {
			if kind != "" && c.Kind != kind {
				return
			}
			if strings.Contains(strings.ToLower(c.Name), substr) {
				out = append(out, c)
			}
		})
	}
	return out
}
