package render

import (
	"sort"
	"strings"
)

// node is an element of the parsed template tree.
type node interface {
	node()
}

type textNode struct {
	text string
}

type varNode struct {
	path string
	segs []string
}

type blockNode struct {
	path string
	segs []string
	off  int
	body []node
}

func (*textNode) node()  {}
func (*varNode) node()   {}
func (*blockNode) node() {}

// parse builds the node tree from tokens using an explicit stack of open
// blocks. Every close tag must match the innermost open block.
func parse(name, src string, tokens []token) ([]node, []string, error) {
	root := &blockNode{}
	stack := []*blockNode{root}
	keys := make(map[string]struct{})

	for _, tok := range tokens {
		top := stack[len(stack)-1]
		switch tok.kind {
		case tokenText:
			top.body = append(top.body, &textNode{text: tok.val})
		case tokenVar:
			keys[tok.val] = struct{}{}
			top.body = append(top.body, &varNode{path: tok.val, segs: strings.Split(tok.val, ".")})
		case tokenOpen:
			keys[tok.val] = struct{}{}
			b := &blockNode{path: tok.val, segs: strings.Split(tok.val, "."), off: tok.off}
			top.body = append(top.body, b)
			stack = append(stack, b)
		case tokenClose:
			if len(stack) == 1 {
				return nil, nil, newSyntaxError(name, src, tok.off,
					"unexpected {{/%s}}: no open block", tok.val)
			}
			if top.path != tok.val {
				open := newSyntaxError(name, src, top.off, "")
				return nil, nil, newSyntaxError(name, src, tok.off,
					"{{/%s}} does not match {{#%s}} opened at line %d, col %d",
					tok.val, top.path, open.Line, open.Col)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		return nil, nil, newSyntaxError(name, src, top.off, "unclosed block {{#%s}}", top.path)
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	return root.body, sorted, nil
}
