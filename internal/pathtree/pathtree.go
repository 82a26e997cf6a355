// SPDX-License-Identifier: MPL-2.0

package pathtree

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// indentUnit is written once per level below the root.
const indentUnit = "  "

// Node is a single path component in the tree. The root node of a tree has an
// empty Name and is never printed.
type Node struct {
	// Name is the path component label.
	Name string
	// Children maps a child component name to its node.
	Children map[string]*Node
	// Leaf is true when an inserted path ended at this node.
	Leaf bool
}

// New creates a node with the given label and no children.
func New(name string) *Node {
	return &Node{
		Name:     name,
		Children: make(map[string]*Node),
	}
}

// Insert adds the path described by components below n. An empty slice is a
// no-op. Existing nodes are reused, so inserting the same prefix twice never
// creates duplicate children.
func (n *Node) Insert(components []string) {
	if len(components) == 0 {
		return
	}

	head := components[0]
	child, ok := n.Children[head]
	if !ok {
		child = New(head)
		n.Children[head] = child
	}
	if len(components) == 1 {
		child.Leaf = true
		return
	}
	child.Insert(components[1:])
}

// InsertPath splits a slash- or OS-separated relative path and inserts it.
func (n *Node) InsertPath(rel string) {
	n.Insert(Split(rel))
}

// Names returns the child names in sorted order.
func (n *Node) Names() []string {
	return slices.Sorted(maps.Keys(n.Children))
}

// Print writes n and its descendants to w. A node at depth 0 is treated as the
// synthetic root and produces no line of its own; every other node is written
// on one line indented by depth-1 units. Children are visited in sorted order.
func (n *Node) Print(w io.Writer, depth int) error {
	if depth > 0 {
		if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(indentUnit, depth-1), n.Name); err != nil {
			return err
		}
	}
	for _, name := range n.Names() {
		if err := n.Children[name].Print(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// String renders the tree rooted at n as Print would at depth 0.
func (n *Node) String() string {
	var sb strings.Builder
	_ = n.Print(&sb, 0) // strings.Builder never fails
	return sb.String()
}

// Split breaks a relative path into its non-empty components.
func Split(rel string) []string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		out = append(out, p)
	}
	return out
}
