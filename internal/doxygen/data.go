package doxygen

// Data converts n into generic structured data for templates and scripts.
// Direct children appear as summaries under "children"; member children
// (functions, variables and other non-compounds) also appear in full under
// "members" so a page can document them.
func (n *Node) Data() map[string]any {
	data := n.Summary()
	d := n.Details
	if d == nil {
		d = &Details{}
	}

	data["body"] = d.Body
	data["inBody"] = d.InBody
	data["static"] = d.Static
	data["const"] = d.Const
	data["virtual"] = d.Virtual
	data["type"] = d.Type
	data["definition"] = d.Definition
	data["args"] = d.Args
	data["initializer"] = d.Initial
	data["language"] = d.Language
	data["params"] = paramsData(d.Params)
	data["templateParams"] = paramsData(d.Templates)
	data["includes"] = linksData(d.Includes)
	data["baseClasses"] = linksData(d.Bases)
	data["derivedClasses"] = linksData(d.Derived)
	data["related"] = linksData(d.Related)
	data["breadcrumb"] = n.Breadcrumb("::")
	if d.Location != nil {
		data["location"] = map[string]any{
			"file":      d.Location.File,
			"line":      d.Location.Line,
			"bodyFile":  d.Location.BodyFile,
			"bodyStart": d.Location.BodyStart,
			"bodyEnd":   d.Location.BodyEnd,
		}
	}

	children := make([]any, 0, len(n.Children))
	members := make([]any, 0)
	for _, child := range n.Children {
		children = append(children, child.Summary())
		if !child.Kind.IsStructured() {
			members = append(members, child.Data())
		}
	}
	data["children"] = children
	data["members"] = members

	if n.Parent != nil && !n.Parent.IsRoot() {
		data["parent"] = n.Parent.Summary()
	}
	return data
}

// Summary returns the identifying fields of n without its children.
func (n *Node) Summary() map[string]any {
	data := map[string]any{
		"refid": n.Refid,
		"kind":  string(n.Kind),
		"name":  n.Name,
	}
	if d := n.Details; d != nil {
		data["title"] = d.Title
		data["url"] = d.URL
		data["brief"] = d.Brief
		data["visibility"] = d.Visibility
	}
	return data
}

// Tree returns the structured data of the whole subtree, with every child
// nested recursively under "children".
func (n *Node) Tree() map[string]any {
	data := n.Summary()
	children := make([]any, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, child.Tree())
	}
	data["children"] = children
	return data
}

func paramsData(params []Param) []any {
	out := make([]any, 0, len(params))
	for _, p := range params {
		out = append(out, map[string]any{
			"type":    p.Type,
			"name":    p.Name,
			"default": p.Default,
		})
	}
	return out
}

func linksData(links []Link) []any {
	out := make([]any, 0, len(links))
	for _, l := range links {
		out = append(out, map[string]any{
			"refid":      l.Refid,
			"name":       l.Name,
			"url":        l.URL,
			"kind":       string(l.Kind),
			"visibility": l.Visibility,
			"virtual":    l.Virtual,
			"resolved":   l.Resolved(),
		})
	}
	return out
}
