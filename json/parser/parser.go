package parser

import (
	"fmt"
	"unicode/utf16"

	"github.com/dhamidi/tinyjson/json"
)

// MaxDepth is the maximum nesting of arrays and objects.
const MaxDepth = 10000

type parser struct {
	s     *Scanner
	depth int
}

// Parse parses text as exactly one JSON value, optionally surrounded by
// whitespace. On failure the returned error is a *SyntaxError and no
// partial value is returned.
func Parse(text string) (json.Value, error) {
	p := &parser{s: NewScanner(text)}

	p.s.SkipWhitespace()
	v, err := p.parseValue()
	if err != nil {
		return json.Value{}, err
	}
	p.s.SkipWhitespace()
	if !p.s.AtEnd() {
		ch, _ := p.s.Peek()
		return json.Value{}, p.errorf(ErrTrailingData, p.s.Position(), ch,
			"unexpected %s after top-level value", describe(ch))
	}
	return v, nil
}

func (p *parser) errorf(kind ErrorKind, pos Position, ch rune, format string, args ...any) error {
	return &SyntaxError{
		Kind: kind,
		Pos:  pos,
		Char: ch,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseValue() (json.Value, error) {
	ch, err := p.s.Peek()
	if err != nil {
		return json.Value{}, err
	}

	switch ch {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case '"':
		rs, err := p.parseString()
		if err != nil {
			return json.Value{}, err
		}
		return json.StringRunes(rs), nil
	case 't':
		return p.parseLiteral("true", json.Bool(true))
	case 'f':
		return p.parseLiteral("false", json.Bool(false))
	case 'n':
		return p.parseLiteral("null", json.Null())
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return p.parseNumber()
	default:
		return json.Value{}, p.errorf(ErrUnexpectedCharacter, p.s.Position(), ch,
			"unexpected %s at start of value", describe(ch))
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		ch, _ := p.s.Peek()
		return p.errorf(ErrNestingTooDeep, p.s.Position(), ch,
			"nesting exceeds %d levels", MaxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseObject() (json.Value, error) {
	if err := p.enter(); err != nil {
		return json.Value{}, err
	}
	defer p.leave()

	if err := p.s.Expect('{'); err != nil {
		return json.Value{}, err
	}
	obj := json.NewObject()

	p.s.SkipWhitespace()
	ch, err := p.s.Peek()
	if err != nil {
		return json.Value{}, err
	}
	if ch == '}' {
		p.s.Advance()
		return json.ObjectValue(obj), nil
	}

	for {
		p.s.SkipWhitespace()
		ch, err := p.s.Peek()
		if err != nil {
			return json.Value{}, err
		}
		if ch != '"' {
			return json.Value{}, p.errorf(ErrUnexpectedCharacter, p.s.Position(), ch,
				"expected string key, found %s", describe(ch))
		}
		key, err := p.parseString()
		if err != nil {
			return json.Value{}, err
		}

		p.s.SkipWhitespace()
		if err := p.s.Expect(':'); err != nil {
			return json.Value{}, err
		}

		p.s.SkipWhitespace()
		val, err := p.parseValue()
		if err != nil {
			return json.Value{}, err
		}
		obj.SetRunes(key, val)

		p.s.SkipWhitespace()
		pos := p.s.Position()
		ch, err = p.s.Advance()
		if err != nil {
			return json.Value{}, err
		}
		switch ch {
		case ',':
			continue
		case '}':
			return json.ObjectValue(obj), nil
		default:
			return json.Value{}, p.errorf(ErrUnexpectedCharacter, pos, ch,
				"expected ',' or '}' after object member, found %s", describe(ch))
		}
	}
}

func (p *parser) parseArray() (json.Value, error) {
	if err := p.enter(); err != nil {
		return json.Value{}, err
	}
	defer p.leave()

	if err := p.s.Expect('['); err != nil {
		return json.Value{}, err
	}
	elems := []json.Value{}

	p.s.SkipWhitespace()
	ch, err := p.s.Peek()
	if err != nil {
		return json.Value{}, err
	}
	if ch == ']' {
		p.s.Advance()
		return json.Array(elems...), nil
	}

	for {
		p.s.SkipWhitespace()
		val, err := p.parseValue()
		if err != nil {
			return json.Value{}, err
		}
		elems = append(elems, val)

		p.s.SkipWhitespace()
		pos := p.s.Position()
		ch, err := p.s.Advance()
		if err != nil {
			return json.Value{}, err
		}
		switch ch {
		case ',':
			continue
		case ']':
			return json.Array(elems...), nil
		default:
			return json.Value{}, p.errorf(ErrUnexpectedCharacter, pos, ch,
				"expected ',' or ']' after array element, found %s", describe(ch))
		}
	}
}

// parseString consumes a quoted string and returns its decoded code points.
func (p *parser) parseString() ([]rune, error) {
	if err := p.s.Expect('"'); err != nil {
		return nil, err
	}

	out := []rune{}
	for {
		pos := p.s.Position()
		ch, err := p.s.Advance()
		if err != nil {
			return nil, err
		}
		switch {
		case ch == '"':
			return out, nil
		case ch == '\\':
			out, err = p.parseEscape(out)
			if err != nil {
				return nil, err
			}
		case ch < 0x20:
			return nil, p.errorf(ErrControlCharacter, pos, ch,
				"raw control character %U in string", ch)
		default:
			out = append(out, ch)
		}
	}
}

// parseEscape handles the code points after a backslash.
func (p *parser) parseEscape(out []rune) ([]rune, error) {
	pos := p.s.Position()
	ch, err := p.s.Advance()
	if err != nil {
		return nil, err
	}
	return p.escape(out, pos, ch)
}

func (p *parser) escape(out []rune, pos Position, ch rune) ([]rune, error) {
	switch ch {
	case '"', '\\', '/':
		return append(out, ch), nil
	case 'b':
		return append(out, '\b'), nil
	case 'f':
		return append(out, '\f'), nil
	case 'n':
		return append(out, '\n'), nil
	case 'r':
		return append(out, '\r'), nil
	case 't':
		return append(out, '\t'), nil
	case 'u':
		r, err := p.parseHex4()
		if err != nil {
			return nil, err
		}
		return p.appendUnicode(out, r)
	default:
		return nil, p.errorf(ErrInvalidEscape, pos, ch,
			"invalid escape character %s", describe(ch))
	}
}

// appendUnicode appends the code point of a \u escape. A high surrogate
// directly followed by a \u low surrogate becomes one supplementary code
// point; any other surrogate is kept on its own.
func (p *parser) appendUnicode(out []rune, r rune) ([]rune, error) {
	if !isHighSurrogate(r) {
		return append(out, r), nil
	}
	if ch, err := p.s.Peek(); err != nil || ch != '\\' {
		return append(out, r), nil
	}
	p.s.Advance()

	pos := p.s.Position()
	ch, err := p.s.Advance()
	if err != nil {
		return nil, err
	}
	if ch != 'u' {
		return p.escape(append(out, r), pos, ch)
	}
	low, err := p.parseHex4()
	if err != nil {
		return nil, err
	}
	if isLowSurrogate(low) {
		return append(out, utf16.DecodeRune(r, low)), nil
	}
	return p.appendUnicode(append(out, r), low)
}

func (p *parser) parseHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		pos := p.s.Position()
		ch, err := p.s.Advance()
		if err != nil {
			return 0, err
		}
		if !isHexDigit(ch) {
			return 0, p.errorf(ErrInvalidUnicodeEscape, pos, ch,
				"invalid hex digit %s in \\u escape", describe(ch))
		}
		r = r<<4 | hexValue(ch)
	}
	return r, nil
}

func hexValue(ch rune) rune {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}

func isHighSurrogate(r rune) bool {
	return r >= 0xD800 && r < 0xDC00
}

func isLowSurrogate(r rune) bool {
	return r >= 0xDC00 && r < 0xE000
}

func (p *parser) parseNumber() (json.Value, error) {
	start := p.s.Offset()
	startPos := p.s.Position()

	if ch, _ := p.s.Peek(); ch == '-' {
		p.s.Advance()
	}

	pos := p.s.Position()
	ch, err := p.s.Advance()
	if err != nil {
		return json.Value{}, err
	}
	switch {
	case ch == '0':
		if next, err := p.s.Peek(); err == nil && isDigit(next) {
			return json.Value{}, p.errorf(ErrLeadingZero, p.s.Position(), next,
				"leading zero followed by %s", describe(next))
		}
	case isDigit(ch):
		p.skipDigits()
	default:
		return json.Value{}, p.errorf(ErrInvalidNumber, pos, ch,
			"expected digit, found %s", describe(ch))
	}

	if ch, err := p.s.Peek(); err == nil && ch == '.' {
		p.s.Advance()
		if err := p.requireDigit("fraction"); err != nil {
			return json.Value{}, err
		}
		p.skipDigits()
	}

	if ch, err := p.s.Peek(); err == nil && (ch == 'e' || ch == 'E') {
		p.s.Advance()
		if sign, err := p.s.Peek(); err == nil && (sign == '+' || sign == '-') {
			p.s.Advance()
		}
		if err := p.requireDigit("exponent"); err != nil {
			return json.Value{}, err
		}
		p.skipDigits()
	}

	if ch, err := p.s.Peek(); err == nil && !isNumberTerminator(ch) {
		return json.Value{}, p.errorf(ErrTrailingGarbage, p.s.Position(), ch,
			"unexpected %s after number", describe(ch))
	}

	text := p.s.TextFrom(start)
	n, err := json.ParseNumber(text)
	if err != nil {
		return json.Value{}, p.errorf(ErrInvalidNumber, startPos, -1, "%v", err)
	}
	return json.NumberValue(n), nil
}

func (p *parser) requireDigit(part string) error {
	ch, err := p.s.Peek()
	if err != nil {
		return err
	}
	if !isDigit(ch) {
		return p.errorf(ErrInvalidNumber, p.s.Position(), ch,
			"expected digit in %s, found %s", part, describe(ch))
	}
	return nil
}

func (p *parser) skipDigits() {
	for {
		ch, err := p.s.Peek()
		if err != nil || !isDigit(ch) {
			return
		}
		p.s.Advance()
	}
}

func isNumberTerminator(ch rune) bool {
	return isWhitespace(ch) || ch == ',' || ch == ']' || ch == '}'
}

// parseLiteral matches word one code point at a time so that a mismatch is
// reported at the first divergent code point.
func (p *parser) parseLiteral(word string, v json.Value) (json.Value, error) {
	for _, want := range word {
		pos := p.s.Position()
		ch, err := p.s.Advance()
		if err != nil {
			return json.Value{}, err
		}
		if ch != want {
			return json.Value{}, p.errorf(ErrInvalidLiteral, pos, ch,
				"expected %s while reading %q, found %s", describe(want), word, describe(ch))
		}
	}
	return v, nil
}
