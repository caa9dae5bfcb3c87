package vim

import (
	"strconv"
	"strings"
)

// Operator is the action a command applies to a range.
type Operator rune

const (
	// OpNone marks a motion-only command.
	OpNone        Operator = 0
	OpDelete      Operator = 'd'
	OpChange      Operator = 'c'
	OpYank        Operator = 'y'
	OpIndent      Operator = '>'
	OpDedent      Operator = '<'
	OpPasteAfter  Operator = 'p'
	OpPasteBefore Operator = 'P'
	OpJoin        Operator = 'J'
)

// String returns a readable operator name.
func (o Operator) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpDelete:
		return "delete"
	case OpChange:
		return "change"
	case OpYank:
		return "yank"
	case OpIndent:
		return "indent"
	case OpDedent:
		return "dedent"
	case OpPasteAfter:
		return "paste-after"
	case OpPasteBefore:
		return "paste-before"
	case OpJoin:
		return "join"
	default:
		return "unknown"
	}
}

// takesMotion reports whether the operator consumes a motion or text object.
func (o Operator) takesMotion() bool {
	switch o {
	case OpDelete, OpChange, OpYank, OpIndent, OpDedent:
		return true
	}
	return false
}

// TextObjectType identifies the syntactic unit a text object selects.
type TextObjectType int

const (
	ObjectWord TextObjectType = iota
	ObjectBigWord
	ObjectQuote
	ObjectParen
	ObjectBracket
	ObjectBrace
)

// String returns the object name.
func (t TextObjectType) String() string {
	switch t {
	case ObjectWord:
		return "word"
	case ObjectBigWord:
		return "WORD"
	case ObjectQuote:
		return "quote"
	case ObjectParen:
		return "paren"
	case ObjectBracket:
		return "bracket"
	case ObjectBrace:
		return "brace"
	default:
		return "unknown"
	}
}

// TextObject selects a word, quoted string or bracketed group around the
// cursor. Inclusive is the "around" (a) variant; false is "inner" (i).
// Char is the key that named the object, which for quotes is also the
// delimiter that is matched.
type TextObject struct {
	Type      TextObjectType
	Inclusive bool
	Char      rune
}

// textObjectKeys maps the key after i/a to its object type.
var textObjectKeys = map[rune]TextObjectType{
	'w':  ObjectWord,
	'W':  ObjectBigWord,
	'"':  ObjectQuote,
	'\'': ObjectQuote,
	'(':  ObjectParen,
	')':  ObjectParen,
	'[':  ObjectBracket,
	']':  ObjectBracket,
	'{':  ObjectBrace,
	'}':  ObjectBrace,
}

// Keys returns the keystrokes that select the object, e.g. "iw" or `a"`.
func (t TextObject) Keys() string {
	prefix := "i"
	if t.Inclusive {
		prefix = "a"
	}
	return prefix + string(t.Char)
}

// Command is one parsed keystroke sequence. It is built per sequence and
// consumed immediately by the Engine; nothing retains it except
// SessionState.LastCommand.
//
// Count is zero when no count was typed. At most one of Motion and
// TextObject is set.
type Command struct {
	Operator   Operator
	Motion     string
	Count      int
	TextObject *TextObject
	Register   rune
	// Mark is set for m{a-z}, which stores the cursor under that name.
	Mark rune
}

// HasCount reports whether a count was typed.
func (c Command) HasCount() bool {
	return c.Count > 0
}

// EffectiveCount returns the count, treating an absent count as 1.
func (c Command) EffectiveCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// IsLinewise reports whether the motion is the doubled operator (dd, yy, >>).
func (c Command) IsLinewise() bool {
	if c.Operator == OpNone || len(c.Motion) != 2 {
		return false
	}
	return rune(c.Motion[0]) == rune(c.Operator) && rune(c.Motion[1]) == rune(c.Operator)
}

// String renders the command back into canonical keystrokes.
func (c Command) String() string {
	var b strings.Builder
	if c.Register != 0 {
		b.WriteByte('"')
		b.WriteRune(c.Register)
	}
	if c.Count > 0 {
		b.WriteString(strconv.Itoa(c.Count))
	}
	if c.Mark != 0 {
		b.WriteByte('m')
		b.WriteRune(c.Mark)
		return b.String()
	}
	if c.IsLinewise() {
		b.WriteString(c.Motion)
		return b.String()
	}
	if c.Operator != OpNone {
		b.WriteRune(rune(c.Operator))
	}
	if c.TextObject != nil {
		b.WriteString(c.TextObject.Keys())
	} else {
		b.WriteString(c.Motion)
	}
	return b.String()
}
