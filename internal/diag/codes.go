package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// syntax
	SynUnexpectedToken Code = 2001
	SynUnclosedBracket Code = 2002
	SynUnclosedParen   Code = 2003
	SynExpectExpr      Code = 2004
	SynExpectNewline   Code = 2005
	SynExpectAssign    Code = 2006
	SynTooManyErrors   Code = 2007
)

func (c Code) String() string {
	return fmt.Sprintf("PLM%04d", uint16(c))
}
