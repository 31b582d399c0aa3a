// Package dialect describes the lexical rules of a SQL dialect: keyword,
// builtin and type-name sets, quoting and escaping behavior, comment styles,
// and the character classes used for operators and special variables.
//
// A Dialect is immutable once constructed and may be shared freely between
// goroutines.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrBadSpec is wrapped by all errors returned from New for a structurally
// malformed Spec.
var ErrBadSpec = errors.New("dialect: bad spec")

// Default character classes used when the corresponding Spec field is empty.
const (
	DefaultOperatorChars    = "*+-%<>!=&|~^/"
	DefaultSpecialVar       = "?"
	DefaultIdentifierQuotes = `"`
)

// NoSpecialVar is the Spec.SpecialVar sentinel for "this dialect has no
// special variables". The empty string cannot serve, since it selects the
// default.
const NoSpecialVar = " "

// Spec configures a SQL dialect. The zero value plus a keyword list is a
// usable standard-SQL spec: every boolean defaults to off and every character
// class to the Default* constants above.
//
// Keywords, Builtins and Types are space-separated word lists. Matching
// against them is always case-insensitive; the declared casing is preserved
// for completion labels.
type Spec struct {
	Keywords string
	Builtins string
	Types    string

	// String and comment syntax switches.
	BackslashEscapes          bool // backslash escapes inside quoted literals
	HashComments              bool // '#' starts a line comment
	SlashComments             bool // '//' starts a line comment
	SpaceAfterDashes          bool // '--' comments require a following space
	DoubleDollarQuotedStrings bool // '$$ ... $$' is a string literal
	DoubleQuotedStrings       bool // '"..."' is a string, not an identifier
	CharSetCasts              bool // _utf8'...' and N'...' prefixed strings
	PLSQLQuotingMechanism     bool // q'[...]' custom-delimiter strings
	UnquotedBitLiterals       bool // 0b01 literals
	TreatBitsAsBytes          bool // allow arbitrary content in bit literals

	// CaseInsensitiveIdentifiers makes user identifiers compare
	// case-insensitively during completion resolution. Tokenization is not
	// affected.
	CaseInsensitiveIdentifiers bool

	// Character classes. Empty means the package default.
	OperatorChars    string
	SpecialVar       string
	IdentifierQuotes string
}

// Dialect is a validated, normalized descriptor built from a Spec. All
// methods are safe for concurrent use.
type Dialect struct {
	keywords []string // declared casing, declaration order
	builtins []string
	types    []string

	keywordSet map[string]struct{} // case-folded
	builtinSet map[string]struct{}
	typeSet    map[string]struct{}

	operatorChars    string
	specialVar       string
	identifierQuotes string

	flags Spec // booleans only; word lists and char classes live above
}

// New validates and normalizes spec into an immutable Dialect.
func New(spec Spec) (*Dialect, error) {
	d := &Dialect{
		operatorChars:    spec.OperatorChars,
		specialVar:       spec.SpecialVar,
		identifierQuotes: spec.IdentifierQuotes,
		flags:            spec,
	}
	if d.operatorChars == "" {
		d.operatorChars = DefaultOperatorChars
	}
	switch spec.SpecialVar {
	case "":
		d.specialVar = DefaultSpecialVar
	case NoSpecialVar:
		d.specialVar = ""
	}
	if d.identifierQuotes == "" {
		d.identifierQuotes = DefaultIdentifierQuotes
	}

	for _, set := range []struct {
		name  string
		chars string
	}{
		{"operatorChars", d.operatorChars},
		{"specialVar", d.specialVar},
		{"identifierQuotes", d.identifierQuotes},
	} {
		if err := checkCharClass(set.name, set.chars); err != nil {
			return nil, err
		}
	}
	if strings.ContainsAny(d.identifierQuotes, d.operatorChars) {
		return nil, fmt.Errorf("%w: identifierQuotes overlaps operatorChars", ErrBadSpec)
	}
	if strings.ContainsAny(d.identifierQuotes, "'") {
		return nil, fmt.Errorf("%w: single quote cannot be an identifier quote", ErrBadSpec)
	}

	d.keywords, d.keywordSet = splitWords(spec.Keywords)
	d.builtins, d.builtinSet = splitWords(spec.Builtins)
	d.types, d.typeSet = splitWords(spec.Types)
	return d, nil
}

// MustNew is New for fixed specs; it panics on error. Used to build the
// preset dialects.
func MustNew(spec Spec) *Dialect {
	d, err := New(spec)
	if err != nil {
		panic(err)
	}
	return d
}

func checkCharClass(name, chars string) error {
	for _, r := range chars {
		switch {
		case r <= ' ':
			return fmt.Errorf("%w: %s contains whitespace or control character %q", ErrBadSpec, name, r)
		case r >= utf8.RuneSelf:
			// Quote and variable delimiters are matched bytewise.
			return fmt.Errorf("%w: %s contains non-ASCII character %q", ErrBadSpec, name, r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return fmt.Errorf("%w: %s contains identifier character %q", ErrBadSpec, name, r)
		}
	}
	return nil
}

// splitWords splits a space-separated word list, keeping declared casing and
// order, and builds the case-folded membership set.
func splitWords(list string) ([]string, map[string]struct{}) {
	fields := strings.Fields(list)
	set := make(map[string]struct{}, len(fields))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		folded := strings.ToLower(w)
		if _, dup := set[folded]; dup {
			continue
		}
		set[folded] = struct{}{}
		words = append(words, w)
	}
	return words, set
}

// Keywords returns the keyword list in declared casing and order.
func (d *Dialect) Keywords() []string { return append([]string(nil), d.keywords...) }

// Builtins returns the builtin list in declared casing and order.
func (d *Dialect) Builtins() []string { return append([]string(nil), d.builtins...) }

// Types returns the type-name list in declared casing and order.
func (d *Dialect) Types() []string { return append([]string(nil), d.types...) }

// IsKeyword reports whether word (any casing) is a keyword.
func (d *Dialect) IsKeyword(word string) bool {
	_, ok := d.keywordSet[strings.ToLower(word)]
	return ok
}

// IsBuiltin reports whether word (any casing) is a builtin.
func (d *Dialect) IsBuiltin(word string) bool {
	_, ok := d.builtinSet[strings.ToLower(word)]
	return ok
}

// IsType reports whether word (any casing) is a type name.
func (d *Dialect) IsType(word string) bool {
	_, ok := d.typeSet[strings.ToLower(word)]
	return ok
}

// IsOperatorChar reports whether r belongs to the operator character class.
func (d *Dialect) IsOperatorChar(r rune) bool { return strings.ContainsRune(d.operatorChars, r) }

// IsSpecialVar reports whether r starts a special variable.
func (d *Dialect) IsSpecialVar(r rune) bool {
	return d.specialVar != "" && strings.ContainsRune(d.specialVar, r)
}

// IsIdentifierQuote reports whether r opens (and closes) a quoted identifier.
func (d *Dialect) IsIdentifierQuote(r rune) bool { return strings.ContainsRune(d.identifierQuotes, r) }

// Boolean rule accessors, one per Spec switch.

func (d *Dialect) BackslashEscapes() bool           { return d.flags.BackslashEscapes }
func (d *Dialect) HashComments() bool               { return d.flags.HashComments }
func (d *Dialect) SlashComments() bool              { return d.flags.SlashComments }
func (d *Dialect) SpaceAfterDashes() bool           { return d.flags.SpaceAfterDashes }
func (d *Dialect) DoubleDollarQuotedStrings() bool  { return d.flags.DoubleDollarQuotedStrings }
func (d *Dialect) DoubleQuotedStrings() bool        { return d.flags.DoubleQuotedStrings }
func (d *Dialect) CharSetCasts() bool               { return d.flags.CharSetCasts }
func (d *Dialect) PLSQLQuotingMechanism() bool      { return d.flags.PLSQLQuotingMechanism }
func (d *Dialect) UnquotedBitLiterals() bool        { return d.flags.UnquotedBitLiterals }
func (d *Dialect) TreatBitsAsBytes() bool           { return d.flags.TreatBitsAsBytes }
func (d *Dialect) CaseInsensitiveIdentifiers() bool { return d.flags.CaseInsensitiveIdentifiers }

// FoldIdentifier case-folds a user identifier for equality comparison when
// the dialect treats identifiers case-insensitively; otherwise it returns the
// identifier unchanged. Keyword/builtin/type matching always folds and does
// not go through here.
func (d *Dialect) FoldIdentifier(name string) string {
	if d.flags.CaseInsensitiveIdentifiers {
		return strings.ToLower(name)
	}
	return name
}

// Names lists the preset dialect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Named looks up a preset dialect by its registry name (lower-case, e.g.
// "postgresql", "mysql").
func Named(name string) (*Dialect, bool) {
	f, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return f(), true
}
