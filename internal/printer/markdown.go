// Package printer renders Doxygen description markup as Markdown.
package printer

import (
	"fmt"
	"strings"

	"github.com/itsmostafa/godoxy/internal/xmldoc"
)

// Markdown prints description elements (briefdescription, detaileddescription
// and their descendants) as Markdown text.
type Markdown struct {
	// Heading is the Markdown heading level used for <heading> elements
	// without a level attribute.
	Heading int
}

// NewMarkdown returns a Markdown printer with default settings.
func NewMarkdown() *Markdown {
	return &Markdown{Heading: 3}
}

// Print renders el. resolve maps refids of <ref> elements to URLs; refs it
// cannot resolve are printed as plain text.
func (m *Markdown) Print(el *xmldoc.Element, resolve func(refid string) (string, bool)) string {
	w := &writer{m: m, resolve: resolve}
	w.children(el)
	return collapseBlankLines(w.b.String())
}

type writer struct {
	m       *Markdown
	resolve func(string) (string, bool)
	b       strings.Builder
	lists   []listState
}

type listState struct {
	ordered bool
	index   int
}

func (w *writer) children(el *xmldoc.Element) {
	for _, c := range el.Content() {
		if c.Elem == nil {
			w.text(c.Text)
			continue
		}
		w.element(c.Elem)
	}
}

func (w *writer) text(s string) {
	s = strings.ReplaceAll(s, "\n", " ")
	if w.atLineStart() {
		s = strings.TrimLeft(s, " \t")
	}
	w.b.WriteString(s)
}

func (w *writer) atLineStart() bool {
	s := w.b.String()
	return s == "" || strings.HasSuffix(s, "\n")
}

func (w *writer) trimTrailingSpace() {
	s := strings.TrimRight(w.b.String(), " \t")
	w.b.Reset()
	w.b.WriteString(s)
}

func (w *writer) element(el *xmldoc.Element) {
	switch el.Name() {
	case "para":
		w.children(el)
		w.trimTrailingSpace()
		w.b.WriteString("\n\n")
	case "bold":
		w.wrap(el, "**")
	case "emphasis":
		w.wrap(el, "*")
	case "computeroutput":
		w.wrap(el, "`")
	case "strike", "del":
		w.wrap(el, "~~")
	case "linebreak":
		w.b.WriteString("  \n")
	case "ref":
		w.ref(el)
	case "ulink":
		fmt.Fprintf(&w.b, "[%s](%s)", el.Text(), el.AttrOr("url", ""))
	case "itemizedlist":
		w.list(el, false)
	case "orderedlist":
		w.list(el, true)
	case "listitem":
		w.listItem(el)
	case "programlisting":
		w.program(el)
	case "verbatim", "preformatted":
		w.b.WriteString("\n```\n")
		w.b.WriteString(strings.Trim(el.Text(), "\n"))
		w.b.WriteString("\n```\n\n")
	case "simplesect":
		w.simplesect(el)
	case "parameterlist":
		w.parameterList(el)
	case "heading":
		level := w.m.Heading
		if l := el.AttrOr("level", ""); l != "" {
			fmt.Sscanf(l, "%d", &level)
		}
		fmt.Fprintf(&w.b, "\n%s %s\n\n", strings.Repeat("#", max(1, level)), el.Text())
	case "sect1", "sect2", "sect3", "sect4":
		level := int(el.Name()[4]-'0') + 1
		if title := el.ChildText("title"); title != "" {
			fmt.Fprintf(&w.b, "\n%s %s\n\n", strings.Repeat("#", level), title)
		}
		for _, child := range el.Children() {
			if child.Name() != "title" {
				w.element(child)
			}
		}
	case "title":
	case "sp":
		w.b.WriteString(" ")
	case "hruler":
		w.b.WriteString("\n---\n\n")
	case "image":
		fmt.Fprintf(&w.b, "![%s](%s)", el.Text(), el.AttrOr("name", ""))
	case "anchor", "indexentry":
	default:
		w.children(el)
	}
}

func (w *writer) wrap(el *xmldoc.Element, mark string) {
	w.b.WriteString(mark)
	w.children(el)
	w.b.WriteString(mark)
}

func (w *writer) ref(el *xmldoc.Element) {
	text := el.Text()
	refid := el.AttrOr("refid", "")
	if w.resolve != nil && refid != "" {
		if url, ok := w.resolve(refid); ok && url != "" {
			fmt.Fprintf(&w.b, "[%s](%s)", text, url)
			return
		}
	}
	w.b.WriteString(text)
}

func (w *writer) list(el *xmldoc.Element, ordered bool) {
	w.lists = append(w.lists, listState{ordered: ordered})
	w.b.WriteString("\n")
	for _, item := range el.ChildElements("listitem") {
		w.listItem(item)
	}
	w.lists = w.lists[:len(w.lists)-1]
	if len(w.lists) == 0 {
		w.b.WriteString("\n")
	}
}

func (w *writer) listItem(el *xmldoc.Element) {
	depth := len(w.lists)
	marker := "* "
	if depth > 0 {
		state := &w.lists[depth-1]
		state.index++
		if state.ordered {
			marker = fmt.Sprintf("%d. ", state.index)
		}
	}
	indent := strings.Repeat("  ", max(0, depth-1))

	inner := &writer{m: w.m, resolve: w.resolve, lists: w.lists}
	inner.children(el)
	text := strings.TrimSpace(collapseBlankLines(inner.b.String()))
	text = strings.ReplaceAll(text, "\n\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 {
			w.b.WriteString(indent + marker + line + "\n")
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(line, " "), "* ") || isNumbered(strings.TrimLeft(line, " ")) {
			w.b.WriteString(line + "\n")
			continue
		}
		w.b.WriteString(indent + "  " + line + "\n")
	}
}

func (w *writer) program(el *xmldoc.Element) {
	lang := strings.TrimPrefix(el.AttrOr("filename", ""), ".")
	fmt.Fprintf(&w.b, "\n```%s\n", lang)
	for _, line := range el.ChildElements("codeline") {
		w.b.WriteString(plain(line))
		w.b.WriteString("\n")
	}
	w.b.WriteString("```\n\n")
}

func (w *writer) simplesect(el *xmldoc.Element) {
	kind := el.AttrOr("kind", "")
	title := el.ChildText("title")
	if title == "" {
		title = sectionTitle(kind)
	}
	inner := &writer{m: w.m, resolve: w.resolve}
	for _, child := range el.Children() {
		if child.Name() != "title" {
			inner.element(child)
		}
	}
	body := strings.TrimSpace(collapseBlankLines(inner.b.String()))
	if title == "" {
		w.b.WriteString(body + "\n\n")
		return
	}
	fmt.Fprintf(&w.b, "**%s**: %s\n\n", title, body)
}

func (w *writer) parameterList(el *xmldoc.Element) {
	title := sectionTitle(el.AttrOr("kind", "param"))
	fmt.Fprintf(&w.b, "**%s**:\n\n", title)
	for _, item := range el.ChildElements("parameteritem") {
		var names []string
		if nameList, err := item.FirstChildElement("parameternamelist"); err == nil {
			for _, name := range nameList.ChildElements("parametername") {
				n := name.Text()
				if dir := name.AttrOr("direction", ""); dir != "" {
					n += " [" + dir + "]"
				}
				names = append(names, n)
			}
		}
		desc := ""
		if d, err := item.FirstChildElement("parameterdescription"); err == nil {
			inner := &writer{m: w.m, resolve: w.resolve}
			inner.children(d)
			desc = strings.TrimSpace(strings.ReplaceAll(collapseBlankLines(inner.b.String()), "\n\n", " "))
		}
		fmt.Fprintf(&w.b, "* **%s**: %s\n", strings.Join(names, ", "), desc)
	}
	w.b.WriteString("\n")
}

var sectionTitles = map[string]string{
	"return":        "Returns",
	"see":           "See",
	"note":          "Note",
	"warning":       "Warning",
	"since":         "Since",
	"author":        "Author",
	"authors":       "Authors",
	"version":       "Version",
	"date":          "Date",
	"pre":           "Precondition",
	"post":          "Postcondition",
	"deprecated":    "Deprecated",
	"attention":     "Attention",
	"remark":        "Remark",
	"par":           "",
	"param":         "Parameters",
	"retval":        "Return values",
	"exception":     "Exceptions",
	"templateparam": "Template parameters",
}

func sectionTitle(kind string) string {
	if title, ok := sectionTitles[kind]; ok {
		return title
	}
	if kind == "" {
		return ""
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

func isNumbered(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(s[i:], ". ")
}

// plain returns the text of el with <sp/> elements turned into spaces.
func plain(el *xmldoc.Element) string {
	var b strings.Builder
	for _, c := range el.Content() {
		switch {
		case c.Elem == nil:
			b.WriteString(c.Text)
		case c.Elem.Name() == "sp":
			b.WriteString(" ")
		default:
			b.WriteString(plain(c.Elem))
		}
	}
	return b.String()
}

// collapseBlankLines squeezes runs of blank lines outside code fences into a
// single blank line and drops leading blank lines.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank, fenced := false, false
	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			fenced = !fenced
		}
		if !fenced && strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.Join(out, "\n")
}
