// Package vim implements a Vim-style line-editing command engine.
//
// Keystrokes accumulate in an input buffer (see package inputbuf) and are
// handed to the Parser, which produces a Command: an optional operator, a
// motion or text object, an optional count and an optional register.
// The command is resolved against the cursor and the current line into a
// Range, and the operator is applied to the buffer lines:
//
//	keys -> inputbuf -> Parser -> ResolveMotion | FindTextObject -> ApplyOperator
//
// Engine ties these steps together for a host editor and performs the
// caller-side bookkeeping (registers, marks, cursor, mode, last command) on
// a SessionState.
//
// # Grammar
//
//	;  ,                              repeat last f/F/t/T (same / reversed)
//	["r][count]["r]{operator}{operator}  linewise (dd, yy, >>, <<, cc); Y = yy
//	["r][count]["r][operator]{f|F|t|T}{char}
//	["r][count]["r][operator]{i|a}{w W " ' ( ) [ ] { }}
//	["r][count]["r][operator]{motion}  w W b B e E 0 ^ $ h l `m 'm
//	["r][count]{p|P|J}
//	m{a-z}                            set mark
//
// A text object without an operator defaults to delete.
//
// # Failure model
//
// Nothing in this package returns an error. Incomplete or invalid input,
// unresolvable motions and unsupported operators are ordinary outcomes of
// incremental typing and are reported with a false ok value or a
// ParseStatus; callers leave the buffer and cursor untouched.
//
// All state lives in SessionState values owned by the host. The package has
// no globals and performs no locking; a session must be driven by a single
// goroutine.
package vim
