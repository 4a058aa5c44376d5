package parser

import "fmt"

// ErrorKind classifies why an input was rejected. Kinds are errors
// themselves, so errors.Is(err, ErrInvalidLiteral) works on any error
// returned by Parse.
type ErrorKind int

const (
	// ErrEndOfInput means the input ended before a value was complete.
	ErrEndOfInput ErrorKind = iota + 1
	// ErrUnexpectedCharacter means a code point is not allowed where it appears.
	ErrUnexpectedCharacter
	// ErrTrailingData means more input follows the top-level value.
	ErrTrailingData
	// ErrTrailingGarbage means a number literal runs into a code point that
	// cannot follow a number.
	ErrTrailingGarbage
	ErrInvalidLiteral
	ErrInvalidEscape
	ErrInvalidUnicodeEscape
	ErrLeadingZero
	// ErrInvalidNumber covers any other violation of the number grammar.
	ErrInvalidNumber
	// ErrControlCharacter means a raw code point below U+0020 inside a string.
	ErrControlCharacter
	ErrNestingTooDeep
)

var errorKindNames = map[ErrorKind]string{
	ErrEndOfInput:           "end of input",
	ErrUnexpectedCharacter:  "unexpected character",
	ErrTrailingData:         "trailing data",
	ErrTrailingGarbage:      "trailing garbage",
	ErrInvalidLiteral:       "invalid literal",
	ErrInvalidEscape:        "invalid escape",
	ErrInvalidUnicodeEscape: "invalid unicode escape",
	ErrLeadingZero:          "leading zero",
	ErrInvalidNumber:        "invalid number",
	ErrControlCharacter:     "control character in string",
	ErrNestingTooDeep:       "nesting too deep",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Position is a location in the input. Offset counts code points from the
// start; Line and Column are 1-based, Column counting code points.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError describes where and why parsing stopped.
type SyntaxError struct {
	Kind ErrorKind
	Pos  Position
	// Char is the rejected code point, or -1 when the input ended.
	Char rune
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

// Is matches the error's kind.
func (e *SyntaxError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// Incomplete reports whether the input ran out rather than being malformed.
func (e *SyntaxError) Incomplete() bool {
	return e.Kind == ErrEndOfInput
}

func describe(ch rune) string {
	if ch < 0 {
		return "end of input"
	}
	return fmt.Sprintf("%+q", ch)
}
