// Package interp executes statements as the parser produces them.
//
// The model is deliberately small: every variable is one ordered
// associative array of string pairs, scoping is a stack of flat frames
// (dynamic, not lexical; only the top frame is visible), and functions are
// registered at parse time into a table shared with the parser. Evaluation
// errors print an "Error: ..." line and abort the current statement only.
package interp
