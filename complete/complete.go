package complete

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sourcetable/lang-sql/lexer"
)

// Complete returns completion candidates for the cursor position. The text
// before the cursor is lexed to decide the mode: a dotted identifier path
// immediately before the cursor (`foo.` or `foo.bar.`) scopes completion to
// the schema resolver alone, suppressing keyword noise; otherwise keyword
// candidates and the resolver's top-level output are merged, deduplicated by
// label and type.
func Complete(text string, cursor int, cfg Config) []Candidate {
	cursor = clamp(cursor, len(text))
	d := cfg.dialect()

	path, _ := PathBeforeCursor(text, cursor, cfg)
	if len(path) > 0 {
		return ResolveSchema(cfg, path)
	}

	out := KeywordCandidates(d, cfg.UpperCaseKeywords, cfg.KeywordsSection, cfg.KeywordsMapper)
	out = append(out, ResolveSchema(cfg, nil)...)
	return dedupe(out)
}

// PathBeforeCursor lexes text up to the cursor and returns the qualified
// path being completed plus the partial word under the cursor. For
// `my_schema.my_table.` the path is ["my_schema", "my_table"]; for
// `public.us` it is ["public"] with prefix "us". The walk back from the
// cursor stops at the first token that is not an identifier, a quoted
// identifier or a dot.
func PathBeforeCursor(text string, cursor int, cfg Config) (path []string, prefix string) {
	cursor = clamp(cursor, len(text))
	toks := lexer.Tokenize(text[:cursor], cfg.dialect())

	i := len(toks) - 1
	if i >= 0 && toks[i].End == cursor && (toks[i].IsWord() || toks[i].Kind == lexer.QuotedIdentifier) {
		prefix = segmentText(toks[i])
		i--
	}
	for i >= 1 && isDot(toks[i]) {
		seg := toks[i-1]
		if seg.Kind != lexer.Identifier && seg.Kind != lexer.QuotedIdentifier {
			break
		}
		path = append(path, segmentText(seg))
		i -= 2
	}
	reverse(path)
	return path, prefix
}

// WordAt returns the start offset and text of the identifier-like word the
// cursor sits in, so UI layers know the span a selected candidate replaces.
func WordAt(text string, cursor int) (from int, word string) {
	cursor = clamp(cursor, len(text))
	from = cursor
	for from > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:from])
		if !isWordRune(r) {
			break
		}
		from -= size
	}
	return from, text[from:cursor]
}

func isDot(t lexer.Token) bool {
	return t.Kind == lexer.Punctuation && t.Text == "."
}

// segmentText extracts the name a token contributes to a path: the raw text
// for bare words, the unquoted, unescaped content for quoted identifiers.
func segmentText(t lexer.Token) string {
	if t.Kind != lexer.QuotedIdentifier {
		return t.Text
	}
	s := t.Text
	if len(s) == 0 {
		return s
	}
	quote := s[0]
	s = s[1:]
	if len(s) > 0 && s[len(s)-1] == quote {
		s = s[:len(s)-1]
	}
	return strings.ReplaceAll(s, string([]byte{quote, quote}), string(quote))
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func clamp(cursor, max int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > max {
		return max
	}
	return cursor
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
