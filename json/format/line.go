package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/tinyjson/json"
)

// LineEncoder writes one tab separated line per scalar and per empty
// container: the path from the root, the kind, and the value.
//
//	$.users[0].name	string	"ada"
type LineEncoder struct {
	w     io.Writer
	value json.Value
}

var _ Encoder = (*LineEncoder)(nil)

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(v json.Value) error {
	e.value = v
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	e.writeLines(&sb, "$", e.value)
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeLines(sb *strings.Builder, path string, v json.Value) {
	switch v.Kind() {
	case json.KindArray:
		elems, _ := v.Elements()
		if len(elems) == 0 {
			fmt.Fprintf(sb, "%s\t%s\t[]\n", path, v.Kind())
			return
		}
		for i, elem := range elems {
			e.writeLines(sb, path+"["+strconv.Itoa(i)+"]", elem)
		}
	case json.KindObject:
		obj, _ := v.AsObject()
		if obj.Len() == 0 {
			fmt.Fprintf(sb, "%s\t%s\t{}\n", path, v.Kind())
			return
		}
		obj.Range(func(key string, val json.Value) bool {
			e.writeLines(sb, path+memberPath(key), val)
			return true
		})
	default:
		fmt.Fprintf(sb, "%s\t%s\t%s\n", path, v.Kind(), scalarText(v))
	}
}

func memberPath(key string) string {
	if isIdentifier(key) {
		return "." + key
	}
	return "[" + strconv.Quote(key) + "]"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func scalarText(v json.Value) string {
	switch v.Kind() {
	case json.KindBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case json.KindNumber:
		n, _ := v.AsNumber()
		return n.String()
	case json.KindString:
		s, _ := v.Str()
		return strconv.Quote(s)
	default:
		return "null"
	}
}
