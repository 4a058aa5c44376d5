// Package reference decodes JSON with established decoders and compares the
// results with parser.Parse.
package reference

import (
	gojson "encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fastjson"

	"github.com/dhamidi/tinyjson/json"
)

// Decoder decodes a complete JSON text into a json.Value.
type Decoder interface {
	Name() string
	Decode(text string) (json.Value, error)
}

var (
	// Std is encoding/json. It is the strict reference.
	Std Decoder = stdDecoder{}
	// Jsoniter is json-iterator configured like encoding/json. It accepts
	// some malformed numbers.
	Jsoniter Decoder = jsoniterDecoder{api: jsoniter.Config{
		EscapeHTML:             true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()}
	// Fastjson is valyala/fastjson. It is lenient about escapes and accepts
	// NaN and Inf.
	Fastjson Decoder = fastjsonDecoder{}
	// Jsonparser is buger/jsonparser. It reads the first value and ignores
	// whatever follows it.
	Jsonparser Decoder = jsonparserDecoder{}
)

var decoders = map[string]Decoder{
	Std.Name():        Std,
	Jsoniter.Name():   Jsoniter,
	Fastjson.Name():   Fastjson,
	Jsonparser.Name(): Jsonparser,
}

// All returns every known decoder, strict reference first.
func All() []Decoder {
	return []Decoder{Std, Jsoniter, Fastjson, Jsonparser}
}

// Names returns the names accepted by Lookup.
func Names() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a decoder by name.
func Lookup(name string) (Decoder, error) {
	d, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown decoder %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

type stdDecoder struct{}

func (stdDecoder) Name() string { return "std" }

func (stdDecoder) Decode(text string) (json.Value, error) {
	dec := gojson.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return json.Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return json.Value{}, errors.New("trailing data after top-level value")
	}
	return FromInterface(v)
}

type jsoniterDecoder struct {
	api jsoniter.API
}

func (jsoniterDecoder) Name() string { return "jsoniter" }

func (d jsoniterDecoder) Decode(text string) (json.Value, error) {
	var v any
	if err := d.api.UnmarshalFromString(text, &v); err != nil {
		return json.Value{}, err
	}
	return FromInterface(v)
}

type fastjsonDecoder struct{}

func (fastjsonDecoder) Name() string { return "fastjson" }

func (fastjsonDecoder) Decode(text string) (json.Value, error) {
	var p fastjson.Parser
	v, err := p.Parse(text)
	if err != nil {
		return json.Value{}, err
	}
	return fromFastjson(v)
}

func fromFastjson(v *fastjson.Value) (json.Value, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return json.Null(), nil
	case fastjson.TypeTrue:
		return json.Bool(true), nil
	case fastjson.TypeFalse:
		return json.Bool(false), nil
	case fastjson.TypeNumber:
		n, err := json.ParseNumber(string(v.MarshalTo(nil)))
		if err != nil {
			return json.Value{}, err
		}
		return json.NumberValue(n), nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return json.Value{}, err
		}
		return json.String(string(b)), nil
	case fastjson.TypeArray:
		arr, err := v.Array()
		if err != nil {
			return json.Value{}, err
		}
		elems := make([]json.Value, 0, len(arr))
		for _, item := range arr {
			elem, err := fromFastjson(item)
			if err != nil {
				return json.Value{}, err
			}
			elems = append(elems, elem)
		}
		return json.Array(elems...), nil
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return json.Value{}, err
		}
		obj := json.NewObject()
		var visitErr error
		o.Visit(func(key []byte, item *fastjson.Value) {
			if visitErr != nil {
				return
			}
			val, err := fromFastjson(item)
			if err != nil {
				visitErr = err
				return
			}
			obj.Set(string(key), val)
		})
		if visitErr != nil {
			return json.Value{}, visitErr
		}
		return json.ObjectValue(obj), nil
	default:
		return json.Value{}, fmt.Errorf("unsupported fastjson type %d", v.Type())
	}
}

type jsonparserDecoder struct{}

func (jsonparserDecoder) Name() string { return "jsonparser" }

func (jsonparserDecoder) Decode(text string) (json.Value, error) {
	value, typ, _, err := jsonparser.Get([]byte(text))
	if err != nil {
		return json.Value{}, err
	}
	return fromJSONParser(value, typ)
}

func fromJSONParser(value []byte, typ jsonparser.ValueType) (json.Value, error) {
	switch typ {
	case jsonparser.Null:
		return json.Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return json.Value{}, err
		}
		return json.Bool(b), nil
	case jsonparser.Number:
		return numberValue(string(value))
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return json.Value{}, err
		}
		return json.String(s), nil
	case jsonparser.Array:
		elems := []json.Value{}
		var elemErr error
		_, err := jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, err error) {
			if err != nil || elemErr != nil {
				if elemErr == nil {
					elemErr = err
				}
				return
			}
			elem, err := fromJSONParser(item, itemType)
			if err != nil {
				elemErr = err
				return
			}
			elems = append(elems, elem)
		})
		if err != nil {
			return json.Value{}, err
		}
		if elemErr != nil {
			return json.Value{}, elemErr
		}
		return json.Array(elems...), nil
	case jsonparser.Object:
		obj := json.NewObject()
		err := jsonparser.ObjectEach(value, func(key, item []byte, itemType jsonparser.ValueType, _ int) error {
			val, err := fromJSONParser(item, itemType)
			if err != nil {
				return err
			}
			obj.Set(string(key), val)
			return nil
		})
		if err != nil {
			return json.Value{}, err
		}
		return json.ObjectValue(obj), nil
	default:
		return json.Value{}, fmt.Errorf("unsupported jsonparser type %v", typ)
	}
}

// FromInterface converts the result of decoding into an `any` back into a
// json.Value. Numbers may be float64, integers, or string-kinded number
// types such as encoding/json.Number.
func FromInterface(v any) (json.Value, error) {
	switch x := v.(type) {
	case nil:
		return json.Null(), nil
	case bool:
		return json.Bool(x), nil
	case string:
		return json.String(x), nil
	case gojson.Number:
		return numberValue(string(x))
	case float64:
		return json.Float(x), nil
	case int64:
		return json.Int(x), nil
	case int:
		return json.Int(int64(x)), nil
	case []any:
		elems := make([]json.Value, 0, len(x))
		for _, item := range x {
			elem, err := FromInterface(item)
			if err != nil {
				return json.Value{}, err
			}
			elems = append(elems, elem)
		}
		return json.Array(elems...), nil
	case map[string]any:
		obj := json.NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			val, err := FromInterface(x[k])
			if err != nil {
				return json.Value{}, err
			}
			obj.Set(k, val)
		}
		return json.ObjectValue(obj), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return numberValue(rv.String())
	}
	return json.Value{}, fmt.Errorf("unsupported decoded type %T", v)
}

func numberValue(text string) (json.Value, error) {
	n, err := json.ParseNumber(text)
	if err != nil {
		return json.Value{}, err
	}
	return json.NumberValue(n), nil
}
