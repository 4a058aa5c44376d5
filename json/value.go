// Package json defines the value tree produced by the tinyjson parser.
//
// A Value is a tagged union over the six JSON kinds. Values are built once by
// the parser and handed to the caller; nothing in a Value refers back to the
// input text.
package json

import (
	"fmt"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind Kind

	boolVal bool
	numVal  Number
	strVal  []rune
	arrVal  []Value
	objVal  *Object
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// NumberValue wraps n in a Value.
func NumberValue(n Number) Value {
	return Value{kind: KindNumber, numVal: n}
}

// Int returns an integer number value.
func Int(i int64) Value {
	return NumberValue(IntNumber(i))
}

// Float returns a floating-point number value.
func Float(f float64) Value {
	return NumberValue(FloatNumber(f))
}

// String returns a string value holding the code points of s.
func String(s string) Value {
	return Value{kind: KindString, strVal: []rune(s)}
}

// StringRunes returns a string value holding a copy of rs. Unlike String it
// can carry unpaired surrogate code points.
func StringRunes(rs []rune) Value {
	cp := make([]rune, len(rs))
	copy(cp, rs)
	return Value{kind: KindString, strVal: cp}
}

// Array returns an array value holding elems in order.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arrVal: elems}
}

// ObjectValue wraps o in a Value. A nil o is treated as an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, objVal: o}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.boolVal, v.kind == KindBool
}

func (v Value) AsNumber() (Number, bool) {
	return v.numVal, v.kind == KindNumber
}

// Str returns the string content as Go UTF-8. Unpaired surrogates come back
// as U+FFFD; use Runes to see them.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return string(v.strVal), true
}

// Runes returns the string content as code points.
func (v Value) Runes() ([]rune, bool) {
	if v.kind != KindString {
		return nil, false
	}
	return v.strVal, true
}

func (v Value) Elements() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arrVal, true
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.objVal, true
}

// Interface converts v into plain Go values: nil, bool, int64, *big.Int,
// float64, string, []any and map[string]any. Unpaired surrogates become
// U+FFFD, so object keys that differ only there merge, last value winning.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.boolVal
	case KindNumber:
		return v.numVal.Interface()
	case KindString:
		return string(v.strVal)
	case KindArray:
		out := make([]any, len(v.arrVal))
		for i, elem := range v.arrVal {
			out[i] = elem.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.objVal.Len())
		v.objVal.Range(func(key string, val Value) bool {
			out[key] = val.Interface()
			return true
		})
		return out
	default:
		return nil
	}
}

// GoString renders v for debugging in %#v verbs.
func (v Value) GoString() string {
	var sb strings.Builder
	v.writeGo(&sb)
	return sb.String()
}

func (v Value) writeGo(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("Null")
	case KindBool:
		fmt.Fprintf(sb, "Bool(%t)", v.boolVal)
	case KindNumber:
		fmt.Fprintf(sb, "Number(%s)", v.numVal.String())
	case KindString:
		fmt.Fprintf(sb, "String(%+q)", string(v.strVal))
	case KindArray:
		sb.WriteString("Array[")
		for i, elem := range v.arrVal {
			if i > 0 {
				sb.WriteString(", ")
			}
			elem.writeGo(sb)
		}
		sb.WriteString("]")
	case KindObject:
		sb.WriteString("Object{")
		for i, m := range v.objVal.members {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%+q: ", m.Key)
			m.Value.writeGo(sb)
		}
		sb.WriteString("}")
	}
}

// Equal reports whether a and b hold the same JSON data. Object member order
// is ignored and numbers compare by value, so 1 and 1.0 are equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber:
		return a.numVal.Equal(b.numVal)
	case KindString:
		if len(a.strVal) != len(b.strVal) {
			return false
		}
		for i := range a.strVal {
			if a.strVal[i] != b.strVal[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.arrVal) != len(b.arrVal) {
			return false
		}
		for i := range a.arrVal {
			if !Equal(a.arrVal[i], b.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.objVal.Len() != b.objVal.Len() {
			return false
		}
		for _, m := range a.objVal.members {
			other, ok := b.objVal.GetRunes(m.KeyRunes())
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}
