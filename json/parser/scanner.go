package parser

// Scanner is a forward-only cursor over the code points of its input.
type Scanner struct {
	input  []rune
	pos    int
	line   int
	column int
}

// NewScanner copies text into a new Scanner. Invalid UTF-8 bytes become
// U+FFFD.
func NewScanner(text string) *Scanner {
	return &Scanner{
		input:  []rune(text),
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Position returns the location of the current code point.
func (s *Scanner) Position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

// AtEnd reports whether every code point has been consumed.
func (s *Scanner) AtEnd() bool {
	return s.pos >= len(s.input)
}

// Offset returns the number of code points consumed so far.
func (s *Scanner) Offset() int {
	return s.pos
}

// TextFrom returns the input between offset start and the current position.
func (s *Scanner) TextFrom(start int) string {
	if start < 0 || start > s.pos {
		return ""
	}
	return string(s.input[start:s.pos])
}

// Peek returns the current code point without consuming it.
func (s *Scanner) Peek() (rune, error) {
	if s.pos >= len(s.input) {
		return 0, s.endOfInput()
	}
	return s.input[s.pos], nil
}

// Advance consumes and returns the current code point.
func (s *Scanner) Advance() (rune, error) {
	if s.pos >= len(s.input) {
		return 0, s.endOfInput()
	}
	ch := s.input[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch, nil
}

// Expect consumes one code point and fails unless it is want.
func (s *Scanner) Expect(want rune) error {
	pos := s.Position()
	ch, err := s.Advance()
	if err != nil {
		return err
	}
	if ch != want {
		return &SyntaxError{
			Kind: ErrUnexpectedCharacter,
			Pos:  pos,
			Char: ch,
			Msg:  "expected " + describe(want) + ", found " + describe(ch),
		}
	}
	return nil
}

// SkipWhitespace consumes spaces, tabs, line feeds and carriage returns.
func (s *Scanner) SkipWhitespace() {
	for s.pos < len(s.input) && isWhitespace(s.input[s.pos]) {
		s.Advance()
	}
}

func (s *Scanner) endOfInput() *SyntaxError {
	return &SyntaxError{
		Kind: ErrEndOfInput,
		Pos:  s.Position(),
		Char: -1,
		Msg:  "unexpected end of input",
	}
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
