package lexer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sourcetable/lang-sql/dialect"
)

// kindText is a compact token view for table expectations; whitespace tokens
// are dropped by significant().
type kindText struct {
	Kind Kind
	Text string
}

func significant(tokens []Token) []kindText {
	var out []kindText
	for _, tok := range tokens {
		if tok.Kind == Whitespace {
			continue
		}
		out = append(out, kindText{tok.Kind, tok.Text})
	}
	return out
}

func requireTokens(t *testing.T, src string, d *dialect.Dialect, want []kindText) {
	t.Helper()
	got := significant(Tokenize(src, d))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize(%q):\n got  %v\n want %v", src, got, want)
	}
}

var coverageInputs = []string{
	"",
	"SELECT id, name FROM users WHERE age > 21;",
	"select * from t -- trailing comment",
	"/* unterminated block",
	"'unterminated string",
	"q'[half open",
	"INSERT INTO \"tbl\" VALUES (1.5e-3, 0xFF, b'0101', $$body$$);",
	"héllo wörld   tab\tdone",
	"@var := 7 # note\nSELECT ?",
	"...;;;,,,()()",
	"\\ ` ~ stray { } [ ]",
}

func allDialects() map[string]*dialect.Dialect {
	out := make(map[string]*dialect.Dialect)
	for _, name := range dialect.Names() {
		d, ok := dialect.Named(name)
		if !ok {
			panic(name)
		}
		out[name] = d
	}
	return out
}

// Concatenating token spans must reconstruct the input exactly, for any
// input under any dialect.
func TestCoverage(t *testing.T) {
	for name, d := range allDialects() {
		for _, src := range coverageInputs {
			tokens := Tokenize(src, d)
			pos := 0
			var rebuilt strings.Builder
			for _, tok := range tokens {
				if tok.Start != pos {
					t.Fatalf("%s: %q: token %v starts at %d, previous ended at %d", name, src, tok, tok.Start, pos)
				}
				if tok.End < tok.Start {
					t.Fatalf("%s: %q: token %v has negative span", name, src, tok)
				}
				if tok.Text != src[tok.Start:tok.End] {
					t.Fatalf("%s: %q: token text %q does not match span", name, src, tok.Text)
				}
				rebuilt.WriteString(tok.Text)
				pos = tok.End
			}
			if rebuilt.String() != src {
				t.Errorf("%s: coverage broken for %q: got %q", name, src, rebuilt.String())
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	d := dialect.MySQL()
	for _, src := range coverageInputs {
		first := Tokenize(src, d)
		second := Tokenize(src, d)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("repeat scan of %q differs", src)
		}
	}
}

func TestKeywordClassification(t *testing.T) {
	requireTokens(t, "SELECT id FROM users", dialect.StandardSQL(), []kindText{
		{Keyword, "SELECT"},
		{Identifier, "id"},
		{Keyword, "FROM"},
		{Identifier, "users"},
	})
	// Set membership folds case regardless of identifier policy.
	requireTokens(t, "sElEcT Int", dialect.StandardSQL(), []kindText{
		{Keyword, "sElEcT"},
		{TypeName, "Int"},
	})
	// Builtins only exist where the dialect declares them.
	requireTokens(t, "getdate", dialect.MSSQL(), []kindText{{Builtin, "getdate"}})
	requireTokens(t, "getdate", dialect.StandardSQL(), []kindText{{Identifier, "getdate"}})
}

func TestHashComments(t *testing.T) {
	requireTokens(t, "SELECT # comment", dialect.MySQL(), []kindText{
		{Keyword, "SELECT"},
		{LineComment, "# comment"},
	})
	requireTokens(t, "SELECT # comment", dialect.StandardSQL(), []kindText{
		{Keyword, "SELECT"},
		{Unknown, "#"},
		{Identifier, "comment"},
	})
}

func TestSlashComments(t *testing.T) {
	requireTokens(t, "x // note\ny", dialect.Cassandra(), []kindText{
		{Identifier, "x"},
		{LineComment, "// note"},
		{Identifier, "y"},
	})
	// Without slashComments the slashes are an operator run.
	requireTokens(t, "x // note", dialect.StandardSQL(), []kindText{
		{Identifier, "x"},
		{Operator, "//"},
		{Identifier, "note"},
	})
}

func TestDashComments(t *testing.T) {
	requireTokens(t, "1 -- note", dialect.StandardSQL(), []kindText{
		{Number, "1"},
		{LineComment, "-- note"},
	})
	// MySQL requires a space after the dashes.
	requireTokens(t, "1 --note", dialect.MySQL(), []kindText{
		{Number, "1"},
		{Operator, "--"},
		{Identifier, "note"},
	})
	requireTokens(t, "1 -- note", dialect.MySQL(), []kindText{
		{Number, "1"},
		{LineComment, "-- note"},
	})
	// The comment stops before the newline; the next line scans normally.
	requireTokens(t, "-- a\nb", dialect.StandardSQL(), []kindText{
		{LineComment, "-- a"},
		{Identifier, "b"},
	})
}

func TestBlockComments(t *testing.T) {
	requireTokens(t, "a /* one */ b", dialect.StandardSQL(), []kindText{
		{Identifier, "a"},
		{BlockComment, "/* one */"},
		{Identifier, "b"},
	})
	// Not nestable: the first */ closes.
	requireTokens(t, "/* a /* b */ c */", dialect.StandardSQL(), []kindText{
		{BlockComment, "/* a /* b */"},
		{Identifier, "c"},
		{Operator, "*/"},
	})
	requireTokens(t, "/* open", dialect.StandardSQL(), []kindText{
		{BlockComment, "/* open"},
	})
}

func TestStringEscapes(t *testing.T) {
	// Doubled-quote escaping is always available.
	requireTokens(t, "'it''s'", dialect.StandardSQL(), []kindText{
		{String, "'it''s'"},
	})
	// Backslash escaping only under backslashEscapes.
	requireTokens(t, `'a\'b'`, dialect.MySQL(), []kindText{
		{String, `'a\'b'`},
	})
	requireTokens(t, `'a\'b'`, dialect.StandardSQL(), []kindText{
		{String, `'a\'`},
		{Identifier, "b"},
		{String, "'"},
	})
}

func TestDollarQuotedStrings(t *testing.T) {
	requireTokens(t, "$$some 'body'$$", dialect.PostgreSQL(), []kindText{
		{String, "$$some 'body'$$"},
	})
	requireTokens(t, "$$open", dialect.PostgreSQL(), []kindText{
		{String, "$$open"},
	})
}

func TestCharSetCasts(t *testing.T) {
	requireTokens(t, "N'abc'", dialect.MySQL(), []kindText{
		{String, "N'abc'"},
	})
	requireTokens(t, "_utf8'abc'", dialect.MySQL(), []kindText{
		{String, "_utf8'abc'"},
	})
	// Without the quote the underscore word is a plain identifier.
	requireTokens(t, "_utf8 x", dialect.MySQL(), []kindText{
		{Identifier, "_utf8"},
		{Identifier, "x"},
	})
	requireTokens(t, "N'abc'", dialect.StandardSQL(), []kindText{
		{Identifier, "N"},
		{String, "'abc'"},
	})
}

func TestPLSQLQuoting(t *testing.T) {
	d := dialect.PLSQL()
	for _, src := range []string{"q'[it's here]'", "q'(par(en)'", "q'{brace}'", "q'<angle>'", "q'!bang!'"} {
		requireTokens(t, src, d, []kindText{{String, src}})
	}
	// No close sequence before end of input: one-char Unknown, rescan.
	requireTokens(t, "q'[open", d, []kindText{
		{Unknown, "q"},
		{String, "'[open"},
	})
	// Inert without the dialect switch.
	requireTokens(t, "q'[x]'", dialect.StandardSQL(), []kindText{
		{Identifier, "q"},
		{String, "'[x]'"},
	})
}

func TestBitLiterals(t *testing.T) {
	requireTokens(t, "0b0110", dialect.MySQL(), []kindText{
		{Bits, "0b0110"},
	})
	// Standard SQL has no bit literals in either form.
	requireTokens(t, "0b0110", dialect.StandardSQL(), []kindText{
		{Number, "0"},
		{Identifier, "b0110"},
	})
	requireTokens(t, "b'0101'", dialect.MySQL(), []kindText{
		{Bits, "b'0101'"},
	})
	requireTokens(t, "b'0101'", dialect.StandardSQL(), []kindText{
		{Identifier, "b"},
		{String, "'0101'"},
	})
	// Non-binary digits degrade unless bits are treated as bytes.
	requireTokens(t, "b'012'", dialect.MySQL(), []kindText{
		{Unknown, "b'012'"},
	})
	requireTokens(t, "b'012'", dialect.MariaSQL(), []kindText{
		{Bits, "b'012'"},
	})
	requireTokens(t, "0b12ab", dialect.MariaSQL(), []kindText{
		{Bits, "0b12ab"},
	})
}

func TestQuotedIdentifiers(t *testing.T) {
	requireTokens(t, `"my table"`, dialect.StandardSQL(), []kindText{
		{QuotedIdentifier, `"my table"`},
	})
	// Double quotes become strings where the dialect says so.
	requireTokens(t, `"text"`, dialect.MySQL(), []kindText{
		{String, `"text"`},
	})
	requireTokens(t, "`col`", dialect.MySQL(), []kindText{
		{QuotedIdentifier, "`col`"},
	})
	// Doubled-quote escaping inside quoted identifiers.
	requireTokens(t, `"a""b"`, dialect.StandardSQL(), []kindText{
		{QuotedIdentifier, `"a""b"`},
	})
}

func TestSpecialVars(t *testing.T) {
	requireTokens(t, "@session_var", dialect.MySQL(), []kindText{
		{SpecialVar, "@session_var"},
	})
	requireTokens(t, "?", dialect.MySQL(), []kindText{
		{SpecialVar, "?"},
	})
	requireTokens(t, "$1", dialect.PostgreSQL(), []kindText{
		{SpecialVar, "$1"},
	})
	requireTokens(t, "@`quoted`", dialect.MySQL(), []kindText{
		{SpecialVar, "@`quoted`"},
	})
}

func TestNumbers(t *testing.T) {
	requireTokens(t, "42 3.14 1.5e-3 2E+8 .5 0xFF", dialect.StandardSQL(), []kindText{
		{Number, "42"},
		{Number, "3.14"},
		{Number, "1.5e-3"},
		{Number, "2E+8"},
		{Number, ".5"},
		{Number, "0xFF"},
	})
	// A dot not followed by a digit is punctuation.
	requireTokens(t, "1..2", dialect.StandardSQL(), []kindText{
		{Number, "1"},
		{Punctuation, "."},
		{Number, ".2"},
	})
}

func TestOperatorsAndPunctuation(t *testing.T) {
	requireTokens(t, "a>=b", dialect.StandardSQL(), []kindText{
		{Identifier, "a"},
		{Operator, ">="},
		{Identifier, "b"},
	})
	// Punctuation never merges into operator runs.
	requireTokens(t, "f(a,b);", dialect.StandardSQL(), []kindText{
		{Identifier, "f"},
		{Punctuation, "("},
		{Identifier, "a"},
		{Punctuation, ","},
		{Identifier, "b"},
		{Punctuation, ")"},
		{Punctuation, ";"},
	})
}

func TestScannerRestart(t *testing.T) {
	d := dialect.StandardSQL()
	src := "SELECT 1"
	sc := NewScanner(src, d)
	var count int
	for {
		if _, ok := sc.Next(); !ok {
			break
		}
		count++
	}
	if count != 3 { // SELECT, space, 1
		t.Fatalf("got %d tokens, want 3", count)
	}
	if tok, ok := sc.Next(); ok {
		t.Fatalf("scan past end returned %v", tok)
	}
}
