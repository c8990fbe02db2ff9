// Package pattern names reusable motif queries and organizes them in a
// book that can be browsed by path.
package pattern

import (
	"strings"

	"github.com/0x5844/motif/index"
)

// A Pattern is a named query over positions.
type Pattern struct {
	code  string
	name  string
	title string
	expr  index.Expr
}

// New returns a pattern. name is a slash separated path such as
// "pin/queen"; expr must yield positions.
func New(code, name, title string, expr index.Expr) *Pattern {
	return &Pattern{code: code, name: strings.Join(Split(name), "/"), title: title, expr: expr}
}

// Code returns the short identifier of the pattern, e.g. "M03".
func (p *Pattern) Code() string {
	return p.code
}

// Name returns the path of the pattern.
func (p *Pattern) Name() string {
	return p.name
}

// Title returns a human readable description.
func (p *Pattern) Title() string {
	return p.title
}

// Expr returns the query.
func (p *Pattern) Expr() index.Expr {
	return p.expr
}

// Book is a collection of patterns addressed by path.
type Book interface {
	// Find returns the most specific pattern along path. If no pattern is
	// found, Find returns nil.
	Find(path []string) *Pattern
	// Possible returns the patterns at or below path. If path is empty or
	// nil all patterns are returned.
	Possible(path []string) []*Pattern
}

// Split turns a pattern name into a path.
func Split(name string) []string {
	var path []string
	for _, s := range strings.Split(name, "/") {
		if s = strings.TrimSpace(s); s != "" {
			path = append(path, s)
		}
	}
	return path
}
