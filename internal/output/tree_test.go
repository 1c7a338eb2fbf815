package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTreeAndRender(t *testing.T) {
	items := []TreeItem{
		{Depth: 1, Name: "widgets"},
		{Depth: 2, Name: "Features"},
		{Depth: 2, Name: "Requirements"},
		{Depth: 4, Name: "Python"},
		{Depth: 2, Name: "License"},
	}

	root := BuildTree("README.md", items)
	assert.Len(t, root.Children, 1)
	assert.Len(t, root.Children[0].Children, 3)
	assert.Equal(t, "Python", root.Children[0].Children[1].Children[0].Name)

	want := "README.md\n" +
		"└── widgets\n" +
		"    ├── Features\n" +
		"    ├── Requirements\n" +
		"    │   └── Python\n" +
		"    └── License\n"
	assert.Equal(t, want, RenderTree(root, NoColorStyles()))
}

func TestBuildTree_LeadingDeepItem(t *testing.T) {
	root := BuildTree("doc", []TreeItem{{Depth: 3, Name: "a"}, {Depth: 1, Name: "b"}})
	assert.Len(t, root.Children, 2)
	assert.Equal(t, "doc\n├── a\n└── b\n", RenderTree(root, NoColorStyles()))
}
