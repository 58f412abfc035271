package doxygen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/itsmostafa/godoxy/internal/xmldoc"
)

// innerTags are the compounddef children that reference other compounds.
var innerTags = map[string]bool{
	"innernamespace": true,
	"innerclass":     true,
	"innergroup":     true,
	"innerdir":       true,
	"innerfile":      true,
	"innerpage":      true,
}

// Parser builds Nodes from per-entity Doxygen documents. Every required
// element is checked before a Node is cached or any of its members touched, so
// a failed parse leaves the cache and the tree as they were.
type Parser struct {
	Cache    *Cache
	InputDir string
	// Warn receives recoverable failures inside a parse, such as an inner
	// compound whose document is missing. It may be nil.
	Warn func(refid string, err error)

	// active holds the refids being parsed up the current recursion, which
	// must not be adopted by their own descendants.
	active map[string]bool
}

// Parse builds the Node for refid from <inputDir>/<refid>.xml, recursively
// parsing inner compounds that are not cached yet. See Parser.Parse.
func Parse(cache *Cache, inputDir, refid string, recurseMembers bool) (*Node, error) {
	p := &Parser{Cache: cache, InputDir: inputDir}
	return p.Parse(refid, recurseMembers)
}

// Parse builds the Node for refid. Newly discovered descendants are inserted
// into the cache; attaching the returned Node to a parent is left to the
// caller.
//
// recurseMembers makes member declarations owned by other compounds become
// Nodes of this one when nobody built them yet.
func (p *Parser) Parse(refid string, recurseMembers bool) (*Node, error) {
	p.active = make(map[string]bool)
	return p.parse(refid, recurseMembers)
}

func (p *Parser) parse(refid string, recurse bool) (*Node, error) {
	path := filepath.Join(p.InputDir, refid+".xml")
	doc, err := xmldoc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	root, err := doc.FirstChildElement("doxygen")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	def, err := root.FirstChildElement("compounddef")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	kind, err := def.Attr("kind")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	nameEl, err := def.FirstChildElement("compoundname")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	node := NewNode(refid, Kind(kind), nameEl.Text())
	node.xml = def
	p.Cache.Put(node)

	p.active[refid] = true
	defer delete(p.active, refid)

	for _, el := range def.Children() {
		switch {
		case innerTags[el.Name()]:
			p.inner(node, el, recurse)
		case el.Name() == "sectiondef":
			for _, m := range el.ChildElements("memberdef") {
				p.member(node, m, recurse)
			}
		}
	}
	return node, nil
}

// inner handles a reference to another compound document.
func (p *Parser) inner(node *Node, el *xmldoc.Element, recurse bool) {
	refid, err := el.Attr("refid")
	if err != nil {
		p.warn(node.Refid, fmt.Errorf("%w: %w", ErrMalformed, err))
		return
	}
	if child, ok := p.Cache.Get(refid); ok {
		p.claim(node, child)
		return
	}

	child, err := p.parse(refid, recurse)
	if err != nil {
		p.warn(refid, err)
		return
	}
	node.adopt(child)
}

// member handles a memberdef, which carries its full declaration inline.
func (p *Parser) member(node *Node, el *xmldoc.Element, recurse bool) {
	id, err := el.Attr("id")
	if err != nil {
		p.warn(node.Refid, fmt.Errorf("%w: %w", ErrMalformed, err))
		return
	}
	if child, ok := p.Cache.Get(id); ok {
		p.claim(node, child)
		return
	}
	if !recurse && !ownsMember(node.Refid, id) {
		node.Refs = append(node.Refs, id)
		return
	}

	kind, err := el.Attr("kind")
	if err != nil {
		p.warn(id, fmt.Errorf("%w: %w", ErrMalformed, err))
		return
	}
	nameEl, err := el.FirstChildElement("name")
	if err != nil {
		p.warn(id, fmt.Errorf("%w: %w", ErrMalformed, err))
		return
	}

	m := NewNode(id, Kind(kind), nameEl.Text())
	m.xml = el
	p.Cache.Put(m)
	node.adopt(m)

	for _, ev := range el.ChildElements("enumvalue") {
		evID, err := ev.Attr("id")
		if err != nil {
			p.warn(id, fmt.Errorf("%w: %w", ErrMalformed, err))
			continue
		}
		if p.Cache.Has(evID) {
			continue
		}
		v := NewNode(evID, KindEnumValue, ev.ChildText("name"))
		v.xml = ev
		p.Cache.Put(v)
		m.adopt(v)
	}
}

// claim decides what to do with an already built Node that node declares as
// its member: take ownership when nobody else has it, otherwise remember it as
// a cross reference only.
func (p *Parser) claim(node, child *Node) {
	switch {
	case child.Parent == node:
	case child == node || p.active[child.Refid]:
		node.Refs = append(node.Refs, child.Refid)
	case child.unowned():
		node.adopt(child)
	default:
		node.Refs = append(node.Refs, child.Refid)
	}
}

func (p *Parser) warn(refid string, err error) {
	if p.Warn != nil {
		p.Warn(refid, err)
	}
}

// ownsMember reports whether a memberdef id belongs to the compound refid.
// Doxygen derives member ids as <compound refid>_1<hash>.
func ownsMember(refid, memberID string) bool {
	return strings.HasPrefix(memberID, refid+"_1")
}
