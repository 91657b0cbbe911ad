package token

import "plume/internal/source"

// TriviaKind classifies non-semantic text between tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
)

var triviaNames = [...]string{
	TriviaSpace:       "Space",
	TriviaNewline:     "Newline",
	TriviaLineComment: "LineComment",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(?)"
}

// Trivia is a run of whitespace or a comment attached as leading trivia
// to the next meaningful token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia carries comment text.
func (tr Trivia) IsComment() bool {
	return tr.Kind == TriviaLineComment
}
