package lexer

// Kind classifies a token.
type Kind int

const (
	Unknown Kind = iota
	Whitespace
	LineComment
	BlockComment
	String
	Number
	Bits
	Keyword
	Builtin
	TypeName
	Identifier
	QuotedIdentifier
	Operator
	Punctuation
	SpecialVar
)

var kindNames = [...]string{
	Unknown:          "unknown",
	Whitespace:       "whitespace",
	LineComment:      "line-comment",
	BlockComment:     "block-comment",
	String:           "string",
	Number:           "number",
	Bits:             "bits",
	Keyword:          "keyword",
	Builtin:          "builtin",
	TypeName:         "type",
	Identifier:       "identifier",
	QuotedIdentifier: "quoted-identifier",
	Operator:         "operator",
	Punctuation:      "punctuation",
	SpecialVar:       "special-var",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is a classified, contiguous span of source text. Start and End are
// byte offsets into the scanned string, half-open. Text is the raw slice
// src[Start:End]; callers case-fold per dialect when comparing.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Text  string
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool { return t.Kind == LineComment || t.Kind == BlockComment }

// IsWord reports whether the token is a bare identifier or one of the
// dialect-set reclassifications of a bare identifier.
func (t Token) IsWord() bool {
	switch t.Kind {
	case Identifier, Keyword, Builtin, TypeName:
		return true
	}
	return false
}
