package token

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota

	Ident
	IntLit
	StringLit
	BoolLit

	KwLet
	KwPass

	Assign   // =
	Comma    // ,
	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	Newline  // statement terminator

	Invalid
)

var kindNames = [...]string{
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	BoolLit:   "BoolLit",
	KwLet:     "KwLet",
	KwPass:    "KwPass",
	Assign:    "Assign",
	Comma:     "Comma",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Newline:   "Newline",
	Invalid:   "Invalid",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
