package reference

import (
	"fmt"
	"strings"

	"github.com/dhamidi/tinyjson/json"
	"github.com/dhamidi/tinyjson/json/parser"
)

// Outcome is what one reference decoder made of the input.
type Outcome struct {
	Decoder  string
	Accepted bool
	Err      error
	Value    json.Value
	// Match is set when both sides accepted and produced equal values.
	Match bool
}

// Agrees reports whether the decoder reached the same verdict as Parse and,
// when both accepted, the same value.
func (o Outcome) Agrees(accepted bool) bool {
	if o.Accepted != accepted {
		return false
	}
	return !accepted || o.Match
}

// Report collects the result of Parse and of each reference decoder.
type Report struct {
	Accepted bool
	Err      error
	Value    json.Value
	Outcomes []Outcome
}

// Agree reports whether every decoder agrees with Parse.
func (r Report) Agree() bool {
	for _, o := range r.Outcomes {
		if !o.Agrees(r.Accepted) {
			return false
		}
	}
	return true
}

// Disagreements returns the outcomes that differ from Parse.
func (r Report) Disagreements() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Agrees(r.Accepted) {
			out = append(out, o)
		}
	}
	return out
}

func (r Report) String() string {
	var sb strings.Builder
	if r.Accepted {
		sb.WriteString("tinyjson: accepted\n")
	} else {
		fmt.Fprintf(&sb, "tinyjson: rejected: %v\n", r.Err)
	}
	for _, o := range r.Outcomes {
		verdict := "agrees"
		if !o.Agrees(r.Accepted) {
			verdict = "DISAGREES"
		}
		switch {
		case !o.Accepted:
			fmt.Fprintf(&sb, "%s: rejected (%s): %v\n", o.Decoder, verdict, o.Err)
		case r.Accepted && !o.Match:
			fmt.Fprintf(&sb, "%s: accepted (%s): value differs: %#v\n", o.Decoder, verdict, o.Value)
		default:
			fmt.Fprintf(&sb, "%s: accepted (%s)\n", o.Decoder, verdict)
		}
	}
	return sb.String()
}

// Compare parses text with parser.Parse and with each decoder. With no
// decoders given, All is used.
func Compare(text string, decoders ...Decoder) Report {
	if len(decoders) == 0 {
		decoders = All()
	}

	v, err := parser.Parse(text)
	report := Report{
		Accepted: err == nil,
		Err:      err,
		Value:    v,
	}

	for _, d := range decoders {
		ref, err := d.Decode(text)
		o := Outcome{
			Decoder:  d.Name(),
			Accepted: err == nil,
			Err:      err,
			Value:    ref,
		}
		if report.Accepted && o.Accepted {
			o.Match = json.Equal(Sanitize(v), ref)
		}
		report.Outcomes = append(report.Outcomes, o)
	}
	return report
}

// Sanitize replaces unpaired surrogates in strings with U+FFFD, which is how
// Go-based decoders represent them.
func Sanitize(v json.Value) json.Value {
	switch v.Kind() {
	case json.KindString:
		s, _ := v.Str()
		return json.String(s)
	case json.KindArray:
		elems, _ := v.Elements()
		out := make([]json.Value, len(elems))
		for i, elem := range elems {
			out[i] = Sanitize(elem)
		}
		return json.Array(out...)
	case json.KindObject:
		o, _ := v.AsObject()
		out := json.NewObject()
		o.Range(func(key string, val json.Value) bool {
			out.Set(key, Sanitize(val))
			return true
		})
		return json.ObjectValue(out)
	default:
		return v
	}
}
