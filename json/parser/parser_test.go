package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/tinyjson/json"
)

func TestParseAccepts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"null member", `{"name": null}`, map[string]any{"name": nil}},
		{"bool members", `{"true": true, "false": false}`, map[string]any{"true": true, "false": false}},
		{
			"exponents",
			`{"exp": 1e10, "exp2": -1E-10, "exp3": 0e10}`,
			map[string]any{"exp": 1e10, "exp2": -1e-10, "exp3": 0.0},
		},
		{
			"escapes",
			`{"escapes": ["\\", "\b", "\f", "\n", "\t", "\r", "\/", "\""]}`,
			map[string]any{"escapes": []any{"\\", "\b", "\f", "\n", "\t", "\r", "/", "\""}},
		},
		{"numbers", `[1, -2, 3.5, 0, -0.25, 12e-1]`, []any{int64(1), int64(-2), 3.5, int64(0), -0.25, 1.2}},
		{"unicode escapes", `"\u00e9\u00C9\ud83d\ude00"`, "éÉ😀"},
		{"raw unicode", `"héllo wörld 😀"`, "héllo wörld 😀"},
		{"surrounding whitespace", " \t\n\r 42 \r\n", int64(42)},
		{"empty array", `[]`, []any{}},
		{"empty object", `{ }`, map[string]any{}},
		{"nested", `[[[]], {"a": {"b": [null]}}]`, []any{[]any{[]any{}}, map[string]any{"a": map[string]any{"b": []any{nil}}}}},
		{"empty string", `""`, ""},
		{"empty key", `{"": 1}`, map[string]any{"": int64(1)}},
		{"negative zero", `-0`, int64(0)},
		{"large exponent", `1E+2`, 100.0},
		{"del is not a control character", "\"\x7f\"", "\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, v.Interface()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		input  string
		kind   ErrorKind
		offset int
	}{
		// literals
		{`nb`, ErrInvalidLiteral, 1},
		{`nub`, ErrInvalidLiteral, 2},
		{`nulb`, ErrInvalidLiteral, 3},
		{`fb`, ErrInvalidLiteral, 1},
		{`fab`, ErrInvalidLiteral, 2},
		{`falb`, ErrInvalidLiteral, 3},
		{`falsb`, ErrInvalidLiteral, 4},
		{`tb`, ErrInvalidLiteral, 1},
		{`trb`, ErrInvalidLiteral, 2},
		{`trub`, ErrInvalidLiteral, 3},
		{`True`, ErrUnexpectedCharacter, 0},
		{`nullx`, ErrTrailingData, 4},

		// numbers
		{`111a2b`, ErrTrailingGarbage, 3},
		{`0.a`, ErrInvalidNumber, 2},
		{`0.1b2`, ErrTrailingGarbage, 3},
		{`0F10`, ErrTrailingGarbage, 1},
		{`-a`, ErrInvalidNumber, 1},
		{`0Eb10`, ErrInvalidNumber, 2},
		{`0E1a0`, ErrTrailingGarbage, 3},
		{`1e+x`, ErrInvalidNumber, 3},
		{`1.5.3`, ErrTrailingGarbage, 3},
		{`01`, ErrLeadingZero, 1},
		{`00`, ErrLeadingZero, 1},
		{`-01`, ErrLeadingZero, 2},
		{`[01]`, ErrLeadingZero, 2},
		{`+1`, ErrUnexpectedCharacter, 0},
		{`.5`, ErrUnexpectedCharacter, 0},
		{`NaN`, ErrUnexpectedCharacter, 0},
		{`-Infinity`, ErrInvalidNumber, 1},

		// strings
		{`"\a"`, ErrInvalidEscape, 2},
		{`"\x41"`, ErrInvalidEscape, 2},
		{`"\uGbcd"`, ErrInvalidUnicodeEscape, 3},
		{`"\uaGcd"`, ErrInvalidUnicodeEscape, 4},
		{`"\uabGd"`, ErrInvalidUnicodeEscape, 5},
		{`"\uabcG"`, ErrInvalidUnicodeEscape, 6},
		{`"\uG"`, ErrInvalidUnicodeEscape, 3},
		{`"\ud800\uZZZZ"`, ErrInvalidUnicodeEscape, 9},
		{`"\ud800\q"`, ErrInvalidEscape, 8},
		{"\"a\tb\"", ErrControlCharacter, 2},
		{"\"a\nb\"", ErrControlCharacter, 2},
		{"\"\x00\"", ErrControlCharacter, 1},
		{`'single'`, ErrUnexpectedCharacter, 0},

		// structure
		{`"string"s`, ErrTrailingData, 8},
		{`1 2`, ErrTrailingData, 2},
		{`[1]]`, ErrTrailingData, 3},
		{`{} {}`, ErrTrailingData, 3},
		{`[1,]`, ErrUnexpectedCharacter, 3},
		{`[,1]`, ErrUnexpectedCharacter, 1},
		{`[1 2]`, ErrUnexpectedCharacter, 3},
		{`{"a" 1}`, ErrUnexpectedCharacter, 5},
		{`{1: 2}`, ErrUnexpectedCharacter, 1},
		{`{"a":1,}`, ErrUnexpectedCharacter, 7},
		{`{"a":1 "b":2}`, ErrUnexpectedCharacter, 7},
		{`[1}`, ErrUnexpectedCharacter, 2},
		{`@`, ErrUnexpectedCharacter, 0},
		{`]`, ErrUnexpectedCharacter, 0},

		// truncated input
		{``, ErrEndOfInput, 0},
		{`   `, ErrEndOfInput, 3},
		{`[`, ErrEndOfInput, 1},
		{`[1,`, ErrEndOfInput, 3},
		{`{`, ErrEndOfInput, 1},
		{`{"a"`, ErrEndOfInput, 4},
		{`{"a":`, ErrEndOfInput, 5},
		{`{"a":1`, ErrEndOfInput, 6},
		{`"abc`, ErrEndOfInput, 4},
		{`"\`, ErrEndOfInput, 2},
		{`"\u12`, ErrEndOfInput, 5},
		{`tru`, ErrEndOfInput, 3},
		{`-`, ErrEndOfInput, 1},
		{`1.`, ErrEndOfInput, 2},
		{`1e`, ErrEndOfInput, 2},
		{`1e-`, ErrEndOfInput, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %#v, want error", tt.input, v)
			}
			if !v.IsNull() {
				t.Errorf("Parse(%q) returned partial value %#v", tt.input, v)
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse(%q) error %T is not a *SyntaxError", tt.input, err)
			}
			if syntaxErr.Kind != tt.kind {
				t.Errorf("Parse(%q) kind = %v, want %v (%v)", tt.input, syntaxErr.Kind, tt.kind, err)
			}
			if syntaxErr.Pos.Offset != tt.offset {
				t.Errorf("Parse(%q) offset = %d, want %d (%v)", tt.input, syntaxErr.Pos.Offset, tt.offset, err)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.kind)
			}
		})
	}
}

// The same malformed values inside an object member, as a caller would
// usually meet them.
func TestParseRejectsInsideObject(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
	}{
		{`{"invalid_null": nb}`, ErrInvalidLiteral},
		{`{"invalid_num": 111a2b}`, ErrTrailingGarbage},
		{`{"invalid_zfloat": 0.a}`, ErrInvalidNumber},
		{`{"invalid_float": 0.1b2}`, ErrTrailingGarbage},
		{`{"invalid_escape": "\a"}`, ErrInvalidEscape},
		{`{"invalid_unicode": "\uabGd"}`, ErrInvalidUnicodeEscape},
		{`{"invalid_true": trub}`, ErrInvalidLiteral},
		{`{"invalid_exp": 0F10}`, ErrTrailingGarbage},
		{`{"invalid_neg": -a}`, ErrInvalidNumber},
		{`{"invalid_exp": 0Eb10}`, ErrInvalidNumber},
		{`{"invalid_nexp": 0E1a0}`, ErrTrailingGarbage},
		{`{"leading": 012}`, ErrLeadingZero},
		{`{"n": 1:}`, ErrTrailingGarbage},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.kind) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.kind)
			}
		})
	}
}

func TestParseErrorLineAndColumn(t *testing.T) {
	_, err := Parse("{\n  \"a\": nul\n}")

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}
	want := SyntaxError{
		Kind: ErrInvalidLiteral,
		Pos:  Position{Offset: 12, Line: 2, Column: 11},
		Char: '\n',
	}
	if diff := cmp.Diff(want, *syntaxErr, cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Msg"
	}, cmp.Ignore())); diff != "" {
		t.Errorf("SyntaxError mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse(`nb`)
	want := `1:2: invalid literal: expected 'u' while reading "null", found 'b'`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}

	_, err = Parse(`[`)
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %v, want *SyntaxError", err)
	}
	if !syntaxErr.Incomplete() || syntaxErr.Char != -1 {
		t.Errorf("Parse(`[`) = %+v, want incomplete at end of input", syntaxErr)
	}
}

func TestErrorKindString(t *testing.T) {
	if got := ErrTrailingGarbage.String(); got != "trailing garbage" {
		t.Errorf("String() = %q", got)
	}
	if got := ErrorKind(99).String(); got != "ErrorKind(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	v, err := Parse(`{"b": 1, "a": 2, "b": 3}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	obj, ok := v.AsObject()
	if !ok {
		t.Fatalf("Parse = %#v, want object", v)
	}
	if diff := cmp.Diff([]string{"b", "a"}, obj.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if b, _ := obj.Get("b"); !json.Equal(b, json.Int(3)) {
		t.Errorf("b = %#v, want 3", b)
	}
}

func TestParseSurrogateKeysStayDistinct(t *testing.T) {
	tests := []struct {
		input string
		keys  [][]rune
	}{
		{`{"\ud800": 1, "\udbff": 2}`, [][]rune{{0xD800}, {0xDBFF}}},
		{`{"\ud800": 1, "\ufffd": 2}`, [][]rune{{0xD800}, {0xFFFD}}},
		{`{"a\udc00": 1, "a\ud800": 2, "a\udc00": 3}`, [][]rune{{'a', 0xDC00}, {'a', 0xD800}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			obj, ok := v.AsObject()
			if !ok {
				t.Fatalf("Parse = %#v, want object", v)
			}
			if diff := cmp.Diff(tt.keys, obj.KeyRunes()); diff != "" {
				t.Errorf("KeyRunes() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	v, err := Parse(`{"a\udc00": 1, "a\ud800": 2, "a\udc00": 3}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	obj, _ := v.AsObject()
	if got, _ := obj.GetRunes([]rune{'a', 0xDC00}); !json.Equal(got, json.Int(3)) {
		t.Errorf("a\\udc00 = %#v, want 3", got)
	}
	if got, _ := obj.GetRunes([]rune{'a', 0xD800}); !json.Equal(got, json.Int(2)) {
		t.Errorf("a\\ud800 = %#v, want 2", got)
	}
}

func TestParseSurrogates(t *testing.T) {
	tests := []struct {
		input string
		want  []rune
	}{
		{`"😀"`, []rune{0x1F600}},
		{`"𝄞"`, []rune{0x1D11E}},
		{`"\ud800"`, []rune{0xD800}},
		{`"\udc00"`, []rune{0xDC00}},
		{`"\ud800x"`, []rune{0xD800, 'x'}},
		{`"\ud800A"`, []rune{0xD800, 'A'}},
		{`"\udc00\ud800"`, []rune{0xDC00, 0xD800}},
		{`"\ud800𐀀"`, []rune{0xD800, 0x10000}},
		{`"\ud800\n"`, []rune{0xD800, '\n'}},
		{`"\ud800\\"`, []rune{0xD800, '\\'}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			got, ok := v.Runes()
			if !ok {
				t.Fatalf("Parse = %#v, want string", v)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Runes() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	t.Run("int64 bounds", func(t *testing.T) {
		for _, input := range []string{"9223372036854775807", "-9223372036854775808"} {
			v, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%s) error: %v", input, err)
			}
			n, _ := v.AsNumber()
			if _, ok := n.Int64(); !ok {
				t.Errorf("Parse(%s) does not fit int64", input)
			}
		}
	})

	t.Run("big integer", func(t *testing.T) {
		v, err := Parse("18446744073709551616")
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		n, _ := v.AsNumber()
		if !n.IsInt() || n.BigInt().String() != "18446744073709551616" {
			t.Errorf("Parse = %s, want exact big integer", n.BigInt())
		}
	})

	t.Run("overflow", func(t *testing.T) {
		v, err := Parse("[1e400, -1e400, 1e-400]")
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		elems, _ := v.Elements()
		want := []float64{math.Inf(1), math.Inf(-1), 0}
		for i, elem := range elems {
			n, _ := elem.AsNumber()
			if n.Float64() != want[i] {
				t.Errorf("element %d = %v, want %v", i, n.Float64(), want[i])
			}
		}
	})

	t.Run("literal text kept", func(t *testing.T) {
		v, err := Parse("-1.50E+03")
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		n, _ := v.AsNumber()
		if n.String() != "-1.50E+03" || n.Float64() != -1500 {
			t.Errorf("Parse = %s (%v), want -1.50E+03 (-1500)", n, n.Float64())
		}
	})
}

func TestParseNestingDepth(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("[", n) + strings.Repeat("]", n)
	}

	if _, err := Parse(nested(MaxDepth)); err != nil {
		t.Errorf("Parse at MaxDepth error: %v", err)
	}

	_, err := Parse(nested(MaxDepth + 1))
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("Parse beyond MaxDepth error = %v, want ErrNestingTooDeep", err)
	}

	_, err = Parse(strings.Repeat(`{"a":`, MaxDepth+1))
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("Parse of deep objects error = %v, want ErrNestingTooDeep", err)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := `{"a": [1, 2.5, "x", {"b": null}], "c": true}`
	first, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if !json.Equal(first, again) {
			t.Errorf("Parse run %d = %#v, want %#v", i, again, first)
		}
	}
}

func TestParseConcurrent(t *testing.T) {
	inputs := []string{`[1, 2, 3]`, `{"a": "b"}`, `nb`, `"😀"`}
	done := make(chan error)
	for i := 0; i < 8; i++ {
		go func(input string) {
			_, err := Parse(input)
			if input == `nb` {
				if !errors.Is(err, ErrInvalidLiteral) {
					done <- err
					return
				}
				err = nil
			}
			done <- err
		}(inputs[i%len(inputs)])
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent Parse error: %v", err)
		}
	}
}
