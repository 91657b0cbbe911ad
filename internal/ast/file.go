package ast

import "plume/internal/source"

// File is the root node of one parsed source file.
type File struct {
	Span  source.Span
	Stmts []StmtID
}
