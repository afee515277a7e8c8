// Package diag holds the position and error types shared by every stage of
// the toolchain: the source reader, lexer, parser, and interpreter all speak
// diag.Position and raise *diag.Error.
package diag

import "github.com/alecthomas/participle/v2/lexer"

// Position locates a single character or node in a source file. We reuse
// participle's lexer.Position rather than rolling our own: it already
// carries Line, Column, Offset and Filename, and every diagnostic in this
// toolchain is keyed on exactly those fields.
type Position = lexer.Position

// StartPosition returns the position of the first character a reader
// produces: column 0 on line 1, before anything has been consumed.
func StartPosition(filename string) Position {
	return Position{Filename: filename, Line: 1, Column: 0, Offset: 0}
}
