package output

import "strings"

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "
)

// TreeNode is a node in a rendered tree.
type TreeNode struct {
	Name     string
	Children []*TreeNode
}

// TreeItem is a flat entry with a depth, such as a markdown heading level.
type TreeItem struct {
	Depth int
	Name  string
}

// BuildTree nests flat items under a root by depth. An item becomes a child
// of the closest preceding item with a smaller depth; items without one hang
// off the root. Depth gaps are tolerated.
func BuildTree(root string, items []TreeItem) *TreeNode {
	top := &TreeNode{Name: root}

	type frame struct {
		depth int
		node  *TreeNode
	}
	stack := []frame{{depth: -1 << 31, node: top}}

	for _, it := range items {
		for len(stack) > 1 && stack[len(stack)-1].depth >= it.Depth {
			stack = stack[:len(stack)-1]
		}
		n := &TreeNode{Name: it.Name}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, n)
		stack = append(stack, frame{depth: it.Depth, node: n})
	}
	return top
}

// RenderTree renders a tree with box-drawing connectors. The root line is bold.
func RenderTree(root *TreeNode, styles *Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(root.Name))
	sb.WriteString("\n")
	renderChildren(&sb, root.Children, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, children []*TreeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		connector, next := treeEdge, treeVert
		if last {
			connector, next = treeLast, treeSpace
		}

		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(child.Name)
		sb.WriteString("\n")

		renderChildren(sb, child.Children, prefix+next)
	}
}
