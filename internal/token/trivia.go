package token

import "keyva/internal/source"

// TriviaKind classifies non-semantic source text.
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

// Trivia is whitespace or a comment attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
