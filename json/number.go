package json

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/valyala/fastjson/fastfloat"
)

// Number is a JSON number. It keeps the literal text and one interpretation
// of it: an integer when the literal has neither a fraction nor an exponent,
// a float64 otherwise. Integers that do not fit in int64 are held as *big.Int.
type Number struct {
	text  string
	isInt bool
	i     int64
	big   *big.Int
	f     float64
}

// IntNumber returns the integer number i.
func IntNumber(i int64) Number {
	return Number{text: strconv.FormatInt(i, 10), isInt: true, i: i}
}

// FloatNumber returns the floating-point number f.
func FloatNumber(f float64) Number {
	return Number{text: strconv.FormatFloat(f, 'g', -1, 64), f: f}
}

// ParseNumber interprets text, which must already be a well-formed JSON
// number literal.
func ParseNumber(text string) (Number, error) {
	if text == "" {
		return Number{}, fmt.Errorf("empty number literal")
	}
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Number{text: text, isInt: true, i: i}, nil
		}
		b, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Number{}, fmt.Errorf("invalid integer literal %q", text)
		}
		return Number{text: text, isInt: true, big: b}, nil
	}
	f, err := parseFloat(text)
	if err != nil {
		return Number{}, err
	}
	return Number{text: text, f: f}, nil
}

// maxExactDigits bounds the mantissa for which fastfloat's single division
// is correctly rounded.
const maxExactDigits = 15

func parseFloat(text string) (float64, error) {
	if !strings.ContainsAny(text, "eE") && countDigits(text) <= maxExactDigits {
		if f, err := fastfloat.Parse(text); err == nil {
			return f, nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Out of range literals round to ±Inf or zero.
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f, nil
		}
		return 0, fmt.Errorf("invalid float literal %q: %w", text, err)
	}
	return f, nil
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

// String returns the literal text as written.
func (n Number) String() string {
	return n.text
}

func (n Number) IsInt() bool {
	return n.isInt
}

// Int64 returns the integer value and whether n is an integer that fits.
func (n Number) Int64() (int64, bool) {
	if !n.isInt || n.big != nil {
		return 0, false
	}
	return n.i, true
}

// BigInt returns the integer value as a new *big.Int, or nil for floats.
func (n Number) BigInt() *big.Int {
	if !n.isInt {
		return nil
	}
	if n.big != nil {
		return new(big.Int).Set(n.big)
	}
	return big.NewInt(n.i)
}

// Float64 returns n as a float64, rounding large integers.
func (n Number) Float64() float64 {
	switch {
	case !n.isInt:
		return n.f
	case n.big != nil:
		f, _ := new(big.Float).SetInt(n.big).Float64()
		return f
	default:
		return float64(n.i)
	}
}

// Interface returns int64, *big.Int or float64.
func (n Number) Interface() any {
	switch {
	case !n.isInt:
		return n.f
	case n.big != nil:
		return n.BigInt()
	default:
		return n.i
	}
}

// Equal compares by numeric value. Integers compare exactly with each other;
// an integer and a float are equal when the float is integral and the same.
func (n Number) Equal(o Number) bool {
	switch {
	case n.isInt && o.isInt:
		return n.BigInt().Cmp(o.BigInt()) == 0
	case !n.isInt && !o.isInt:
		return n.f == o.f || (math.IsNaN(n.f) && math.IsNaN(o.f))
	case n.isInt:
		return intEqualsFloat(n, o.f)
	default:
		return intEqualsFloat(o, n.f)
	}
}

func intEqualsFloat(n Number, f float64) bool {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return false
	}
	bf := new(big.Float).SetFloat64(f)
	i, _ := bf.Int(nil)
	return n.BigInt().Cmp(i) == 0
}
