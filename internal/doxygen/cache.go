package doxygen

// Cache maps refids to the Node that owns them in the tree. It never owns
// Nodes itself; removing an entry leaves the tree untouched.
//
// A Cache is not safe for concurrent use. The loader mutates it only from its
// sequential phases.
type Cache struct {
	nodes map[string]*Node
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{nodes: make(map[string]*Node)}
}

// Get returns the Node cached under refid.
func (c *Cache) Get(refid string) (*Node, bool) {
	n, ok := c.nodes[refid]
	return n, ok
}

// Has reports whether refid is cached.
func (c *Cache) Has(refid string) bool {
	_, ok := c.nodes[refid]
	return ok
}

// Put stores n under its own refid, replacing any earlier entry.
func (c *Cache) Put(n *Node) {
	c.nodes[n.Refid] = n
}

// Delete removes refid from the cache.
func (c *Cache) Delete(refid string) {
	delete(c.nodes, refid)
}

// Len returns the number of cached Nodes.
func (c *Cache) Len() int {
	return len(c.nodes)
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.nodes = make(map[string]*Node)
}

// Rebuild replaces the cache contents with every descendant of root, found by
// depth-first traversal. The root itself is not cached.
func (c *Cache) Rebuild(root *Node) {
	c.Reset()
	for _, child := range root.Children {
		child.Walk(func(n *Node) {
			c.nodes[n.Refid] = n
		})
	}
}
