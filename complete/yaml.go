package complete

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseNamespaceYAML builds a namespace tree from its YAML form. The shapes
// mirror the Namespace variants:
//
//	public:            # mapping        -> child map
//	  users: [id, name]  # sequence     -> option list (bare names become columns)
//	  orders:
//	    - label: id      # mapping item -> explicit candidate
//	      detail: bigint
//	  archive:
//	    self:            # self+children
//	      label: archive
//	      type: table
//	    children:
//	      entries: [id]
func ParseNamespaceYAML(data []byte) (*Namespace, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("namespace yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return Children(map[string]*Namespace{}), nil
	}
	return decodeNamespace(doc.Content[0])
}

func decodeNamespace(n *yaml.Node) (*Namespace, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		opts := make([]Candidate, 0, len(n.Content))
		for _, item := range n.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				opts = append(opts, Candidate{Label: item.Value, Type: "column"})
			case yaml.MappingNode:
				var c Candidate
				if err := item.Decode(&c); err != nil {
					return nil, fmt.Errorf("namespace yaml: candidate at line %d: %w", item.Line, err)
				}
				if c.Label == "" {
					return nil, fmt.Errorf("namespace yaml: candidate at line %d has no label", item.Line)
				}
				if c.Type == "" {
					c.Type = "column"
				}
				opts = append(opts, c)
			default:
				return nil, fmt.Errorf("namespace yaml: unsupported list item at line %d", item.Line)
			}
		}
		return Options(opts...), nil

	case yaml.MappingNode:
		if self, childrenNode, ok := selfChildrenShape(n); ok {
			var c Candidate
			if err := self.Decode(&c); err != nil {
				return nil, fmt.Errorf("namespace yaml: self at line %d: %w", self.Line, err)
			}
			children, err := decodeChildMap(childrenNode)
			if err != nil {
				return nil, err
			}
			return SelfChildren(c, children), nil
		}
		children, err := decodeChildMap(n)
		if err != nil {
			return nil, err
		}
		return Children(children), nil
	}
	return nil, fmt.Errorf("namespace yaml: unsupported node at line %d", n.Line)
}

func decodeChildMap(n *yaml.Node) (map[string]*Namespace, error) {
	children := make(map[string]*Namespace, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		child, err := decodeNamespace(val)
		if err != nil {
			return nil, err
		}
		children[key.Value] = child
	}
	return children, nil
}

// selfChildrenShape recognizes a mapping with exactly the keys "self" and
// "children"; any other mapping is a plain child map (which may legitimately
// contain tables named self or children, as long as not both and only them).
func selfChildrenShape(n *yaml.Node) (self, children *yaml.Node, ok bool) {
	if len(n.Content) != 4 {
		return nil, nil, false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "self":
			self = n.Content[i+1]
		case "children":
			children = n.Content[i+1]
		}
	}
	if self == nil || children == nil || children.Kind != yaml.MappingNode || self.Kind != yaml.MappingNode {
		return nil, nil, false
	}
	return self, children, true
}

// NamespaceYAML renders a namespace tree back to the YAML form accepted by
// ParseNamespaceYAML. Plain column candidates flatten to bare names.
func NamespaceYAML(n *Namespace) ([]byte, error) {
	out, err := yaml.Marshal(encodeNamespace(n))
	if err != nil {
		return nil, fmt.Errorf("namespace yaml: %w", err)
	}
	return out, nil
}

func encodeNamespace(n *Namespace) any {
	if n.Leaf() {
		items := make([]any, len(n.options))
		for i, c := range n.options {
			if c.Type == "column" && c.Section == "" && c.Detail == "" && c.Info == "" {
				items[i] = c.Label
				continue
			}
			items[i] = c
		}
		return items
	}
	children := make(map[string]any, len(n.children))
	for name, child := range n.children {
		children[name] = encodeNamespace(child)
	}
	if n.self != nil {
		return map[string]any{"self": *n.self, "children": children}
	}
	return children
}
