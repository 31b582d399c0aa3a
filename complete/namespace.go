// Package complete proposes SQL completion candidates from a dialect's word
// sets and a declared schema namespace, based on the token path before the
// cursor.
//
// The package is pure: a Namespace and a Config are built once and read from
// any number of goroutines; no call mutates them.
package complete

import "sort"

// Candidate is one proposed completion: a label to insert plus category and
// display metadata for the host popup.
type Candidate struct {
	Label   string `yaml:"label"`
	Type    string `yaml:"type,omitempty"`    // icon/category tag: "keyword", "type", "table", "column", "schema"
	Section string `yaml:"section,omitempty"` // optional grouping label
	Detail  string `yaml:"detail,omitempty"`  // optional short annotation shown next to the label
	Info    string `yaml:"info,omitempty"`    // optional long-form documentation
}

// Namespace is a node in the schema/table/column tree used for completion.
// A node is one of three variants:
//
//   - option list: a terminal set of candidates (typically columns)
//   - child map: named children (schemas or tables)
//   - self+children: a child map plus an explicit candidate for the node's
//     own entry, for when the synthesized label or type is unsuitable
//
// The tree is acyclic and never mutated after construction.
type Namespace struct {
	options  []Candidate
	self     *Candidate
	children map[string]*Namespace
}

// Options builds a leaf node from explicit candidates.
func Options(opts ...Candidate) *Namespace {
	return &Namespace{options: opts}
}

// Columns builds a leaf node of column candidates from bare names.
func Columns(names ...string) *Namespace {
	opts := make([]Candidate, len(names))
	for i, name := range names {
		opts[i] = Candidate{Label: name, Type: "column"}
	}
	return &Namespace{options: opts}
}

// Children builds an interior node from a name-to-child map. The map is
// owned by the node afterwards and must not be modified.
func Children(children map[string]*Namespace) *Namespace {
	return &Namespace{children: children}
}

// SelfChildren is Children with an explicit candidate for the node's own
// entry in its parent's listing.
func SelfChildren(self Candidate, children map[string]*Namespace) *Namespace {
	return &Namespace{self: &self, children: children}
}

// Leaf reports whether the node is an option list.
func (n *Namespace) Leaf() bool { return n.children == nil }

// child looks up a named child, comparing names through fold.
func (n *Namespace) child(name string, fold func(string) string) *Namespace {
	if n.children == nil {
		return nil
	}
	if c, ok := n.children[name]; ok {
		return c
	}
	want := fold(name)
	if want == name {
		return nil
	}
	for key, c := range n.children {
		if fold(key) == want {
			return c
		}
	}
	return nil
}

// entries renders the node's completion candidates: the option list for a
// leaf, or one candidate per child for an interior node. Children with a
// self override use it (defaulting the label to the child's key); the rest
// get a candidate synthesized from the key, typed by shape — a leaf child
// completes as a table, an interior child as a schema.
func (n *Namespace) entries() []Candidate {
	if n.Leaf() {
		return append([]Candidate(nil), n.options...)
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		child := n.children[name]
		if child.self != nil {
			c := *child.self
			if c.Label == "" {
				c.Label = name
			}
			out = append(out, c)
			continue
		}
		typ := "schema"
		if child.Leaf() {
			typ = "table"
		}
		out = append(out, Candidate{Label: name, Type: typ})
	}
	return out
}
