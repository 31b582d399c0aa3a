package complete

import (
	"strings"

	"github.com/sourcetable/lang-sql/dialect"
)

// Config is the read-only completion configuration built once per editor
// setup.
type Config struct {
	// Schema is the namespace tree to complete from. When nil, the
	// deprecated flat Tables/Schemas lists below are used instead.
	Schema *Namespace

	// DefaultTable surfaces the named table's columns in top-level
	// completion, without qualification. The table may live at the top
	// level or under DefaultSchema.
	DefaultTable string

	// DefaultSchema surfaces the named schema's tables in top-level
	// completion and resolves unqualified table paths against that schema.
	DefaultSchema string

	// Dialect supplies the keyword sets and the identifier case-folding
	// policy. Nil means dialect.StandardSQL().
	Dialect *dialect.Dialect

	UpperCaseKeywords bool
	KeywordsSection   string
	KeywordsMapper    func([]Candidate) []Candidate

	// Deprecated: flat candidate lists predating Schema. Consulted only
	// when Schema is nil.
	Tables  []Candidate
	Schemas []Candidate
}

func (cfg Config) dialect() *dialect.Dialect {
	if cfg.Dialect != nil {
		return cfg.Dialect
	}
	return dialect.StandardSQL()
}

func (cfg Config) fold() func(string) string {
	if cfg.dialect().CaseInsensitiveIdentifiers() {
		return strings.ToLower
	}
	return func(s string) string { return s }
}

// ResolveSchema returns the candidates for the namespace scope selected by
// path, the dot-separated identifiers typed before the cursor. An empty path
// selects the top level, augmented by the DefaultTable and DefaultSchema
// shortcuts. A path that does not resolve — an unknown name, or a segment
// descending past a column list — returns nil; intermediate typing states
// are expected to miss and are not errors.
//
// Prefix or fuzzy filtering against a partially typed word is the caller's
// concern; the full candidate set for the resolved scope is returned.
func ResolveSchema(cfg Config, path []string) []Candidate {
	root := cfg.Schema
	if root == nil {
		if len(path) > 0 {
			return nil
		}
		return dedupe(append(flatCandidates(cfg.Schemas, "schema"), flatCandidates(cfg.Tables, "table")...))
	}
	fold := cfg.fold()

	if len(path) == 0 {
		out := root.entries()
		if cfg.DefaultSchema != "" {
			if n := root.child(cfg.DefaultSchema, fold); n != nil {
				out = append(out, n.entries()...)
			}
		}
		if cfg.DefaultTable != "" {
			if n := cfg.defaultTableNode(fold); n != nil {
				out = append(out, n.entries()...)
			}
		}
		return dedupe(out)
	}

	node := root
	for i, seg := range path {
		if node.Leaf() {
			return nil
		}
		next := node.child(seg, fold)
		if next == nil && i == 0 && cfg.DefaultSchema != "" {
			// Unqualified names may refer into the default schema.
			if via := root.child(cfg.DefaultSchema, fold); via != nil {
				next = via.child(seg, fold)
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return dedupe(node.entries())
}

// defaultTableNode locates the DefaultTable node at the top level or under
// DefaultSchema.
func (cfg Config) defaultTableNode(fold func(string) string) *Namespace {
	root := cfg.Schema
	if n := root.child(cfg.DefaultTable, fold); n != nil {
		return n
	}
	if cfg.DefaultSchema != "" {
		if via := root.child(cfg.DefaultSchema, fold); via != nil {
			return via.child(cfg.DefaultTable, fold)
		}
	}
	return nil
}

// flatCandidates normalizes a deprecated flat list, filling in the default
// type tag where absent.
func flatCandidates(list []Candidate, typ string) []Candidate {
	out := make([]Candidate, len(list))
	for i, c := range list {
		if c.Type == "" {
			c.Type = typ
		}
		out[i] = c
	}
	return out
}

// dedupe collapses candidates sharing (label, type, section), keeping the
// first position but letting the last writer's metadata win.
func dedupe(in []Candidate) []Candidate {
	if len(in) == 0 {
		return nil
	}
	type key struct{ label, typ, section string }
	index := make(map[key]int, len(in))
	out := in[:0:0]
	for _, c := range in {
		k := key{c.Label, c.Type, c.Section}
		if at, seen := index[k]; seen {
			out[at] = c
			continue
		}
		index[k] = len(out)
		out = append(out, c)
	}
	return out
}
