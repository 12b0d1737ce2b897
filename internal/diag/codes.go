package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnknownOperator    Code = 1003

	// Syntactic
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectLParen     Code = 2003
	SynExpectRParen     Code = 2004
	SynExpectRBracket   Code = 2005
	SynExpectAssign     Code = 2006
	SynExpectEnd        Code = 2007
	SynExpectIn         Code = 2008
	SynExpectExpression Code = 2009
	SynFunctionLimit    Code = 2010

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexUnknownOperator:    "Unknown operator",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectLParen:       "Expect '('",
	SynExpectRParen:       "Expect ')'",
	SynExpectRBracket:     "Expect ']'",
	SynExpectAssign:       "Expect '='",
	SynExpectEnd:          "Expect 'end'",
	SynExpectIn:           "Expect 'in'",
	SynExpectExpression:   "Expect expression",
	SynFunctionLimit:      "Function table is full",
	IOLoadFileError:       "Cannot read file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
