package doxygen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture writes a Doxygen XML output directory for a test.
type fixture struct {
	t   *testing.T
	dir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, dir: t.TempDir()}
}

type entry struct {
	kind  string
	refid string
}

func (f *fixture) index(entries ...entry) {
	f.t.Helper()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<doxygenindex version="1.9.8">` + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  <compound refid=%q kind=%q><name>%s</name></compound>\n", e.refid, e.kind, e.refid)
	}
	b.WriteString("</doxygenindex>\n")
	f.write("index.xml", b.String())
}

func (f *fixture) compound(refid, kind, name string, body ...string) {
	f.t.Helper()
	doc := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<doxygen version="1.9.8">
  <compounddef id=%q kind=%q language="C++">
    <compoundname>%s</compoundname>
    %s
  </compounddef>
</doxygen>
`, refid, kind, name, strings.Join(body, "\n    "))
	f.write(refid+".xml", doc)
}

func (f *fixture) write(name, content string) {
	f.t.Helper()
	require.NoError(f.t, os.WriteFile(filepath.Join(f.dir, name), []byte(content), 0644))
}

func inner(tag, refid string) string {
	return fmt.Sprintf(`<%s refid=%q prot="public">%s</%s>`, tag, refid, refid, tag)
}

func section(kind string, members ...string) string {
	return fmt.Sprintf(`<sectiondef kind=%q>%s</sectiondef>`, kind, strings.Join(members, ""))
}

func memberdef(kind, id, name string, extra ...string) string {
	return fmt.Sprintf(`<memberdef kind=%q id=%q prot="public" static="no"><name>%s</name>%s</memberdef>`,
		kind, id, name, strings.Join(extra, ""))
}

func brief(xml string) string {
	return "<briefdescription><para>" + xml + "</para></briefdescription>"
}

// outline renders the tree below root as indented "kind:refid" lines.
func outline(root *Node) string {
	var b strings.Builder
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		for _, child := range n.Children {
			fmt.Fprintf(&b, "%s%s:%s\n", strings.Repeat("  ", depth), child.Kind, child.Refid)
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return b.String()
}
