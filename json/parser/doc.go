// Package parser implements a strict JSON text parser.
//
// # Overview
//
// Parse turns a string into a json.Value or reports why the string is not
// JSON as defined by RFC 8259:
//
//	v, err := parser.Parse(`{"name": null}`)
//	if err != nil {
//	    var syn *parser.SyntaxError
//	    if errors.As(err, &syn) {
//	        fmt.Println(syn.Pos, syn.Kind)
//	    }
//	}
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│  Scanner    │────▶│  Grammar    │────▶ json.Value
//	│  (string)   │     │ (code pts)  │     │  (descent)  │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// The Scanner is a forward-only cursor over code points with one code point
// of lookahead. The grammar routines call each other recursively, one per
// kind of value, and dispatch on the lookahead code point.
//
// # Errors
//
// Every failure is a *SyntaxError carrying an ErrorKind, the position of the
// rejected code point and a message. ErrorKind values implement error:
//
//	if errors.Is(err, parser.ErrEndOfInput) {
//	    // the input was truncated, more text could make it valid
//	}
//
// ErrEndOfInput is only reported when the input ran out. Whenever a code
// point was examined and rejected, the error names that code point.
//
// # Semantics
//
// Duplicate object keys keep the position of the first occurrence and the
// value of the last. A \u escape of a high surrogate followed by a \u escape
// of a low surrogate decodes to one code point; unpaired surrogates are kept
// as they are (see json.Value.Runes). Numbers without a fraction or exponent
// are integers, everything else is a float64.
//
// # Thread Safety
//
// Parse keeps no state between calls and may be called concurrently.
// A Scanner is not safe for concurrent use.
package parser
