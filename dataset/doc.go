// Package dataset reads and writes template libraries in the plain text
// exchange format and provides a built-in set of reference shapes.
//
// The format is a whitespace-separated token stream. The first token is the
// number of templates. Each template follows as its name, its point count
// and then that many x y coordinate pairs:
//
//	2
//	line 2 0 0 100 0
//	caret 3 0 100 50 0 100 100
//
// Line breaks carry no meaning; Write puts one template per line.
package dataset
