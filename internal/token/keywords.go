package token

var keywords = map[string]Kind{
	"let":   KwLet,
	"pass":  KwPass,
	"true":  BoolLit,
	"false": BoolLit,
}

// LookupKeyword returns the keyword kind for text, or Ident.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}
