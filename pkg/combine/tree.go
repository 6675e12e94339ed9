// File: pkg/combine/tree.go
package combine

import (
	"sort"
	"strings"

	"codepack/pkg/locator"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

// RenderTree draws entries as a directory tree under rootName. Directories
// come before files; names are ordered case-insensitively.
func RenderTree(rootName string, entries []locator.FileEntry) string {
	root := &treeNode{name: rootName}
	for _, e := range entries {
		node := root
		for _, part := range strings.Split(e.RelativePath, "/") {
			if part == "" {
				continue
			}
			node = node.child(part)
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(rootName, "/"))
	sb.WriteString("/\n")
	writeTree(&sb, root, "")
	return sb.String()
}

func writeTree(sb *strings.Builder, node *treeNode, prefix string) {
	children := make([]*treeNode, 0, len(node.children))
	for _, c := range node.children {
		children = append(children, c)
	}
	// Sort entries: directories first, then files, alphabetically
	sort.Slice(children, func(i, j int) bool {
		iDir, jDir := children[i].children != nil, children[j].children != nil
		if iDir != jDir {
			return iDir
		}
		li, lj := strings.ToLower(children[i].name), strings.ToLower(children[j].name)
		if li != lj {
			return li < lj
		}
		return children[i].name < children[j].name
	})

	for i, c := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(c.name)
		if c.children != nil {
			sb.WriteString("/\n")
			writeTree(sb, c, prefix+extension)
			continue
		}
		sb.WriteString("\n")
	}
}
