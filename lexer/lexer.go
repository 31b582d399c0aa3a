// Package lexer scans SQL text into classified tokens under the rules of a
// dialect descriptor.
//
// Scanning is total: every byte of the input ends up in exactly one token,
// whitespace and comments included, and malformed input degrades to Unknown
// tokens instead of failing. A Scanner holds no state beyond its position, so
// tokenizing the same text twice yields identical results.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sourcetable/lang-sql/dialect"
)

// Scanner produces tokens left to right over a single input string.
// Each call to Next returns the next token; the zero Scanner is not usable,
// construct with NewScanner.
type Scanner struct {
	src string
	d   *dialect.Dialect
	pos int
}

// NewScanner returns a fresh scan over src under dialect d.
func NewScanner(src string, d *dialect.Dialect) *Scanner {
	return &Scanner{src: src, d: d}
}

// Next returns the next token and true, or a zero token and false at end of
// input.
func (s *Scanner) Next() (Token, bool) {
	if s.pos >= len(s.src) {
		return Token{}, false
	}
	start := s.pos
	kind := s.scan()
	tok := Token{Kind: kind, Start: start, End: s.pos, Text: s.src[start:s.pos]}
	if kind == Identifier {
		tok.Kind = s.classifyWord(tok.Text)
	}
	return tok, true
}

// Tokenize scans all of src and returns the token sequence. The concatenated
// token spans reconstruct src exactly.
func Tokenize(src string, d *dialect.Dialect) []Token {
	sc := NewScanner(src, d)
	var tokens []Token
	for {
		tok, ok := sc.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// classifyWord re-tags a bare identifier that belongs to one of the dialect
// word sets. Set membership always compares case-folded.
func (s *Scanner) classifyWord(word string) Kind {
	switch {
	case s.d.IsKeyword(word):
		return Keyword
	case s.d.IsBuiltin(word):
		return Builtin
	case s.d.IsType(word):
		return TypeName
	}
	return Identifier
}

// peek returns the byte at offset from the current position, or 0 past the
// end.
func (s *Scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

// scan consumes one token's worth of input and returns its kind.
func (s *Scanner) scan() Kind {
	c, size := utf8.DecodeRuneInString(s.src[s.pos:])
	d := s.d

	switch {
	case unicode.IsSpace(c):
		s.skipWhile(unicode.IsSpace)
		return Whitespace

	case c == '-' && s.peek(1) == '-' && (!d.SpaceAfterDashes() || s.peek(2) == ' '):
		s.skipToLineEnd()
		return LineComment

	case c == '#' && d.HashComments():
		s.skipToLineEnd()
		return LineComment

	case c == '/' && s.peek(1) == '/' && d.SlashComments():
		s.skipToLineEnd()
		return LineComment

	case c == '/' && s.peek(1) == '*':
		// The first */ closes; unterminated comments run to end of input.
		s.pos += 2
		if idx := strings.Index(s.src[s.pos:], "*/"); idx >= 0 {
			s.pos += idx + 2
		} else {
			s.pos = len(s.src)
		}
		return BlockComment

	case c == '\'':
		s.scanQuoted('\'')
		return String

	case c == '$' && s.peek(1) == '$' && d.DoubleDollarQuotedStrings():
		s.pos += 2
		if idx := strings.Index(s.src[s.pos:], "$$"); idx >= 0 {
			s.pos += idx + 2
		} else {
			s.pos = len(s.src)
		}
		return String

	case d.CharSetCasts() && (c == 'n' || c == 'N') && s.peek(1) == '\'':
		s.pos++
		s.scanQuoted('\'')
		return String

	case d.CharSetCasts() && c == '_':
		if s.scanCharSetCast() {
			return String
		}
		s.scanIdentifier()
		return Identifier

	case d.PLSQLQuotingMechanism() && (c == 'q' || c == 'Q') && s.peek(1) == '\'':
		if s.scanQQuoted() {
			return String
		}
		// No matching close delimiter before end of input: fail over to a
		// one-character Unknown and rescan from the quote.
		s.pos++
		return Unknown

	case (c == 'b' || c == 'B') && (s.peek(1) == '\'' || s.peek(1) == '"') && d.UnquotedBitLiterals():
		return s.scanQuotedBits(s.peek(1))

	case c == '0' && (s.peek(1) == 'b' || s.peek(1) == 'B') && d.UnquotedBitLiterals():
		s.pos += 2
		if d.TreatBitsAsBytes() {
			s.skipWhile(isWordRune)
		} else {
			for s.pos < len(s.src) && (s.src[s.pos] == '0' || s.src[s.pos] == '1') {
				s.pos++
			}
		}
		return Bits

	case c == '0' && (s.peek(1) == 'x' || s.peek(1) == 'X'):
		s.pos += 2
		s.skipWhile(isWordRune)
		return Number

	case c >= '0' && c <= '9':
		s.scanNumber()
		return Number

	case c == '.' && isDigit(s.peek(1)):
		s.scanNumber()
		return Number

	case c == '"' && d.DoubleQuotedStrings():
		s.scanQuoted('"')
		return String

	case d.IsIdentifierQuote(c):
		s.scanQuoted(byte(c))
		return QuotedIdentifier

	case d.IsSpecialVar(c):
		s.pos += size
		next, _ := utf8.DecodeRuneInString(s.src[s.pos:])
		if s.pos < len(s.src) && d.IsIdentifierQuote(next) {
			s.scanQuoted(byte(next))
		} else {
			s.skipWhile(isWordRune)
		}
		return SpecialVar

	case isIdentStart(c):
		s.scanIdentifier()
		return Identifier

	case d.IsOperatorChar(c):
		s.skipWhile(d.IsOperatorChar)
		return Operator

	case strings.ContainsRune(",().;", c):
		s.pos += size
		return Punctuation

	default:
		s.pos += size
		return Unknown
	}
}

// scanQuoted consumes a literal delimited by quote, starting at the opening
// quote. A doubled quote is always an escape; a backslash escapes when the
// dialect says so. Unterminated literals run to end of input.
func (s *Scanner) scanQuoted(quote byte) {
	s.pos++ // opening quote
	backslash := s.d.BackslashEscapes()
	for s.pos < len(s.src) {
		switch ch := s.src[s.pos]; {
		case ch == '\\' && backslash && s.pos+1 < len(s.src):
			s.pos += 2
		case ch == quote:
			if s.peek(1) == quote {
				s.pos += 2 // doubled-quote escape
				continue
			}
			s.pos++
			return
		default:
			_, size := utf8.DecodeRuneInString(s.src[s.pos:])
			s.pos += size
		}
	}
}

// scanCharSetCast tries to consume a charset-prefixed string such as
// _utf8'...' from a leading underscore. It reports whether it consumed
// anything; on false the position is unchanged.
func (s *Scanner) scanCharSetCast() bool {
	i := s.pos + 1
	if i >= len(s.src) || !isASCIILetter(s.src[i]) {
		return false
	}
	for i < len(s.src) && (isASCIILetter(s.src[i]) || isDigit(s.src[i])) {
		i++
	}
	if i >= len(s.src) || s.src[i] != '\'' {
		return false
	}
	s.pos = i
	s.scanQuoted('\'')
	return true
}

// closeDelimiter maps a q'...' opening delimiter to its closing one.
// Bracket pairs close with their counterpart; any other character closes
// with itself.
func closeDelimiter(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '(':
		return ')'
	case '{':
		return '}'
	case '<':
		return '>'
	}
	return open
}

// scanQQuoted tries to consume a PL/SQL q'<delim>...<delim>' literal from a
// leading q. It reports whether the matching close sequence was found; on
// false the position is unchanged.
func (s *Scanner) scanQQuoted() bool {
	if s.pos+2 >= len(s.src) {
		return false
	}
	closing := string([]byte{closeDelimiter(s.src[s.pos+2]), '\''})
	body := s.pos + 3
	idx := strings.Index(s.src[body:], closing)
	if idx < 0 {
		return false
	}
	s.pos = body + idx + len(closing)
	return true
}

// scanQuotedBits consumes a b'...' bit literal. Content outside 0/1 is
// tolerated only when the dialect treats bit literals as byte strings;
// otherwise the whole span degrades to Unknown.
func (s *Scanner) scanQuotedBits(quote byte) Kind {
	s.pos += 2 // b and the opening quote
	valid := true
	for s.pos < len(s.src) && s.src[s.pos] != quote {
		if s.src[s.pos] != '0' && s.src[s.pos] != '1' {
			valid = false
		}
		s.pos++
	}
	if s.pos < len(s.src) {
		s.pos++ // closing quote
	}
	if valid || s.d.TreatBitsAsBytes() {
		return Bits
	}
	return Unknown
}

// scanNumber consumes an integer, decimal or exponent-form literal starting
// at a digit or a dot followed by a digit.
func (s *Scanner) scanNumber() {
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' && isDigit(s.peek(1)) {
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		i := s.pos + 1
		if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		if i < len(s.src) && isDigit(s.src[i]) {
			s.pos = i
			for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
				s.pos++
			}
		}
	}
}

func (s *Scanner) scanIdentifier() {
	s.skipWhile(isWordRune)
}

// skipWhile advances over the run of runes satisfying pred.
func (s *Scanner) skipWhile(pred func(rune) bool) {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !pred(r) {
			return
		}
		s.pos += size
	}
}

// skipToLineEnd advances to just before the next newline (or end of input);
// the newline itself belongs to the following whitespace token.
func (s *Scanner) skipToLineEnd() {
	if idx := strings.IndexByte(s.src[s.pos:], '\n'); idx >= 0 {
		s.pos += idx
	} else {
		s.pos = len(s.src)
	}
}

func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isASCIILetter(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
