package pattern

import (
	"slices"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// Tree is a Book that stores patterns in a tree keyed by path segment.
// It is safe for concurrent use once built.
type Tree struct {
	root  *node
	codes map[string]*Pattern
}

// node is one path segment of the pattern tree.
type node struct {
	parent   *node
	children map[string]*node // keyed by path segment
	pattern  *Pattern         // pattern named exactly by the path to this node, if any
}

func newNode(parent *node) *node {
	return &node{parent: parent, children: make(map[string]*node)}
}

// NewBuiltinBook returns the book of patterns shipped with motif.
func NewBuiltinBook() *Tree {
	b, err := NewBook(Builtin()...)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBook builds a book from patterns. Codes and names must be unique and
// names non-empty.
func NewBook(patterns ...*Pattern) (*Tree, error) {
	b := &Tree{root: newNode(nil), codes: make(map[string]*Pattern, len(patterns))}
	for _, p := range patterns {
		if p.expr == nil {
			return nil, errors.Newf("pattern: %s has no query", p.code)
		}
		key := strings.ToUpper(p.code)
		if prev, ok := b.codes[key]; ok {
			return nil, errors.Newf("pattern: duplicate code %s (%s and %s)", p.code, prev.name, p.name)
		}
		if err := b.insert(p); err != nil {
			return nil, err
		}
		b.codes[key] = p
	}
	return b, nil
}

func (b *Tree) insert(p *Pattern) error {
	path := Split(p.name)
	if len(path) == 0 {
		return errors.Newf("pattern: %s has an empty name", p.code)
	}
	n := b.root
	for _, seg := range path {
		child, ok := n.children[seg]
		if !ok {
			child = newNode(n)
			n.children[seg] = child
		}
		n = child
	}
	if n.pattern != nil {
		return errors.Newf("pattern: %s and %s share the name %s", n.pattern.code, p.code, p.name)
	}
	n.pattern = p
	return nil
}

// Len returns the number of patterns.
func (b *Tree) Len() int { return len(b.codes) }

// Lookup returns the pattern with exactly this name or code.
func (b *Tree) Lookup(nameOrCode string) (*Pattern, bool) {
	if p, ok := b.codes[strings.ToUpper(nameOrCode)]; ok {
		return p, true
	}
	n := b.root
	for _, seg := range Split(nameOrCode) {
		c, ok := n.children[seg]
		if !ok {
			return nil, false
		}
		n = c
	}
	return n.pattern, n.pattern != nil
}

// Find implements the Book interface.
func (b *Tree) Find(path []string) *Pattern {
	for n := b.followPath(b.root, path); n != nil; n = n.parent {
		if n.pattern != nil {
			return n.pattern
		}
	}
	return nil
}

// Possible implements the Book interface. Patterns are ordered by code.
func (b *Tree) Possible(path []string) []*Pattern {
	n := b.followPath(b.root, path)
	patterns := []*Pattern{}
	for _, n := range nodeList(n) {
		if n.pattern != nil {
			patterns = append(patterns, n.pattern)
		}
	}
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].code < patterns[j].code })
	return patterns
}

// followPath walks as far along path as the tree allows.
func (b *Tree) followPath(n *node, path []string) *node {
	if len(path) == 0 {
		return n
	}
	c, ok := n.children[path[0]]
	if !ok {
		return n
	}
	return b.followPath(c, path[1:])
}

func nodeList(root *node) []*node {
	nodes := []*node{root}
	keys := make([]string, 0, len(root.children))
	for k := range root.children {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		nodes = append(nodes, nodeList(root.children[k])...)
	}
	return nodes
}
