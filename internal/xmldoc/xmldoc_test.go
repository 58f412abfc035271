package xmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0"?>
<doxygenindex version="1.9.8">
  <compound refid="classA" kind="class"><name>A</name></compound>
  <member refid="x"/>
  <compound refid="group__g" kind="group"><name>g</name></compound>
  <compound kind="file"><name>broken.h</name></compound>
</doxygenindex>`

func TestSiblingIteration(t *testing.T) {
	doc, err := Parse("index.xml", strings.NewReader(sample))
	require.NoError(t, err)

	root, err := doc.FirstChildElement("doxygenindex")
	require.NoError(t, err)

	var refids []string
	compound, err := root.FirstChildElement("compound")
	for err == nil {
		refids = append(refids, compound.AttrOr("refid", "?"))
		compound, err = compound.NextSiblingElement("compound")
	}
	assert.ErrorIs(t, err, ErrMissingElement)
	assert.Equal(t, []string{"classA", "group__g", "?"}, refids)
}

func TestMissingElementAndAttr(t *testing.T) {
	doc, err := Parse("index.xml", strings.NewReader(sample))
	require.NoError(t, err)

	_, err = doc.FirstChildElement("doxygen")
	assert.ErrorIs(t, err, ErrMissingElement)
	assert.Contains(t, err.Error(), "index.xml")

	root, err := doc.FirstChildElement("doxygenindex")
	require.NoError(t, err)
	compounds := root.ChildElements("compound")
	require.Len(t, compounds, 3)

	_, err = compounds[2].Attr("refid")
	assert.ErrorIs(t, err, ErrMissingAttr)

	kind, err := compounds[2].Attr("kind")
	require.NoError(t, err)
	assert.Equal(t, "file", kind)
}

func TestTextAndContent(t *testing.T) {
	doc, err := Parse("para.xml", strings.NewReader(`<para>Hello <bold>bold</bold> world</para>`))
	require.NoError(t, err)
	para, err := doc.FirstChildElement("para")
	require.NoError(t, err)

	assert.Equal(t, "Hello bold world", para.Text())

	content := para.Content()
	require.Len(t, content, 3)
	assert.Equal(t, "Hello ", content[0].Text)
	require.NotNil(t, content[1].Elem)
	assert.Equal(t, "bold", content[1].Elem.Name())
	assert.Equal(t, " world", content[2].Text)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.xml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path())

	_, err = Open(filepath.Join(dir, "missing.xml"))
	assert.Error(t, err)
}
