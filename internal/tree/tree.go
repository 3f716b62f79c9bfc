package tree

import (
	"strings"

	"github.com/mkrause/gitcoupling/internal/coupling"
)

// Node is one entry in the nested repository structure. A node with a nil
// File is a directory; otherwise it wraps one file's statistics. Path is
// always the full slash-joined path from the repository root.
type Node struct {
	Path     string
	File     *coupling.FileStats
	Children []*Node
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.File == nil
}

// Name returns the node's last path segment.
func (n *Node) Name() string {
	if i := strings.LastIndexByte(n.Path, '/'); i >= 0 {
		return n.Path[i+1:]
	}
	return n.Path
}

// Build reshapes flat per-file statistics into a directory/file tree and
// returns the repository root's children in first-seen order.
//
// Lookup during insertion is keyed by the accumulated path prefix, never by
// the bare segment name: two directories both called "util" under different
// parents have different prefixes and so stay distinct nodes. Insertion is
// idempotent, a path already present is never duplicated.
func Build(stats []*coupling.FileStats) []*Node {
	index := make(map[string]*Node)
	var roots []*Node

	attach := func(parent, child *Node) {
		index[child.Path] = child
		if parent == nil {
			roots = append(roots, child)
		} else {
			parent.Children = append(parent.Children, child)
		}
	}

	for _, fs := range stats {
		segments := strings.Split(fs.Path, "/")
		var parent *Node
		prefix := ""

		for _, seg := range segments[:len(segments)-1] {
			if prefix == "" {
				prefix = seg
			} else {
				prefix += "/" + seg
			}
			dir, ok := index[prefix]
			if !ok {
				dir = &Node{Path: prefix}
				attach(parent, dir)
			}
			parent = dir
		}

		if _, ok := index[fs.Path]; ok {
			continue
		}
		attach(parent, &Node{Path: fs.Path, File: fs})
	}

	return roots
}
