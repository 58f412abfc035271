package doxygen

import (
	"strconv"
	"strings"

	"github.com/itsmostafa/godoxy/internal/config"
	"github.com/itsmostafa/godoxy/internal/xmldoc"
)

// TextPrinter turns Doxygen description markup into text. resolve maps a
// refid to a URL and reports whether the target exists.
type TextPrinter interface {
	Print(el *xmldoc.Element, resolve func(refid string) (string, bool)) string
}

// Finalize fills the deferred detail payload of n. It must run only after the
// whole tree is assembled and cache rebuilt, since descriptions and class
// hierarchies reference arbitrary other Nodes by refid.
func (n *Node) Finalize(cfg *config.Config, printer TextPrinter, cache *Cache) {
	if n.finalized {
		return
	}
	if n.Details == nil {
		n.Details = &Details{}
	}
	d := n.Details
	d.URL = n.URL(cfg)
	d.Title = n.Name

	resolve := func(refid string) (string, bool) {
		target, ok := cache.Get(refid)
		if !ok {
			return "", false
		}
		return target.URL(cfg), true
	}
	link := func(refid, name string) Link {
		l := Link{Refid: refid, Name: name}
		if target, ok := cache.Get(refid); ok && refid != "" {
			l.Target = target
			l.Kind = target.Kind
			l.URL = target.URL(cfg)
			if l.Name == "" {
				l.Name = target.Name
			}
		}
		return l
	}

	for _, refid := range n.Refs {
		d.Related = append(d.Related, link(refid, ""))
	}

	el := n.xml
	if el == nil {
		n.finalized = true
		return
	}

	if title := el.ChildText("title"); title != "" {
		d.Title = title
	}
	if brief, err := el.FirstChildElement("briefdescription"); err == nil {
		d.Brief = strings.TrimSpace(printer.Print(brief, resolve))
	}
	if body, err := el.FirstChildElement("detaileddescription"); err == nil {
		d.Body = strings.TrimSpace(printer.Print(body, resolve))
	}
	if inBody, err := el.FirstChildElement("inbodydescription"); err == nil {
		d.InBody = strings.TrimSpace(printer.Print(inBody, resolve))
	}

	d.Visibility = el.AttrOr("prot", "")
	d.Static = el.AttrOr("static", "no") == "yes"
	d.Const = el.AttrOr("const", "no") == "yes"
	d.Virtual = el.AttrOr("virt", "")
	d.Language = el.AttrOr("language", "")
	d.Type = el.ChildText("type")
	d.Definition = el.ChildText("definition")
	d.Args = el.ChildText("argsstring")
	d.Initial = el.ChildText("initializer")

	for _, param := range el.ChildElements("param") {
		d.Params = append(d.Params, readParam(param))
	}
	if tpl, err := el.FirstChildElement("templateparamlist"); err == nil {
		for _, param := range tpl.ChildElements("param") {
			d.Templates = append(d.Templates, readParam(param))
		}
	}

	if loc, err := el.FirstChildElement("location"); err == nil {
		d.Location = &Location{
			File:      loc.AttrOr("file", ""),
			Line:      atoi(loc.AttrOr("line", "")),
			BodyFile:  loc.AttrOr("bodyfile", ""),
			BodyStart: atoi(loc.AttrOr("bodystart", "")),
			BodyEnd:   atoi(loc.AttrOr("bodyend", "")),
		}
	}

	for _, inc := range el.ChildElements("includes") {
		d.Includes = append(d.Includes, link(inc.AttrOr("refid", ""), inc.Text()))
	}
	for _, base := range el.ChildElements("basecompoundref") {
		l := link(base.AttrOr("refid", ""), base.Text())
		l.Visibility = base.AttrOr("prot", "")
		l.Virtual = base.AttrOr("virt", "")
		d.Bases = append(d.Bases, l)
	}
	for _, derived := range el.ChildElements("derivedcompoundref") {
		l := link(derived.AttrOr("refid", ""), derived.Text())
		l.Visibility = derived.AttrOr("prot", "")
		l.Virtual = derived.AttrOr("virt", "")
		d.Derived = append(d.Derived, l)
	}

	n.finalized = true
	n.xml = nil
}

// URL returns the link to n under cfg. Compounds get their own page; members
// are anchors on the page of the closest compound that owns them.
func (n *Node) URL(cfg *config.Config) string {
	if n.IsRoot() {
		return ""
	}
	if n.Kind.IsStructured() {
		return cfg.Link(string(n.Kind), n.Refid)
	}
	for p := n.Parent; p != nil && !p.IsRoot(); p = p.Parent {
		if p.Kind.IsStructured() {
			return p.URL(cfg) + "#" + anchor(n.Refid)
		}
	}
	return ""
}

// anchor returns the member part of a Doxygen member id.
func anchor(refid string) string {
	if i := strings.LastIndex(refid, "_1"); i >= 0 && i+2 < len(refid) {
		return refid[i+2:]
	}
	return refid
}

func readParam(el *xmldoc.Element) Param {
	name := el.ChildText("declname")
	if name == "" {
		name = el.ChildText("defname")
	}
	return Param{
		Type:    el.ChildText("type"),
		Name:    name,
		Default: el.ChildText("defval"),
	}
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
