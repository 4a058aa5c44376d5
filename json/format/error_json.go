package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/tinyjson/json/parser"
)

// ErrorJSONEncoder reports parse results as JSON objects, one per input.
type ErrorJSONEncoder struct {
	w io.Writer
}

func NewErrorJSONEncoder(w io.Writer) *ErrorJSONEncoder {
	return &ErrorJSONEncoder{w: w}
}

// Encode writes the result of parsing the input called name. A nil err
// reports success.
func (e *ErrorJSONEncoder) Encode(name string, err error) error {
	text, merr := e.MarshalText(name, err)
	if merr != nil {
		return merr
	}
	text = append(text, '\n')
	_, werr := e.w.Write(text)
	return werr
}

func (e *ErrorJSONEncoder) MarshalText(name string, err error) ([]byte, error) {
	return json.MarshalIndent(resultToJSON(name, err), "", "  ")
}

type jsonResult struct {
	Input string     `json:"input"`
	OK    bool       `json:"ok"`
	Error *jsonError `json:"error,omitempty"`
}

type jsonError struct {
	Kind     string        `json:"kind,omitempty"`
	Message  string        `json:"message"`
	Position *jsonPosition `json:"position,omitempty"`
	Got      string        `json:"got,omitempty"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func resultToJSON(name string, err error) jsonResult {
	res := jsonResult{Input: name, OK: err == nil}
	if err == nil {
		return res
	}

	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		res.Error = &jsonError{Message: err.Error()}
		return res
	}

	res.Error = &jsonError{
		Kind:    syntaxErr.Kind.String(),
		Message: syntaxErr.Msg,
		Position: &jsonPosition{
			Offset: syntaxErr.Pos.Offset,
			Line:   syntaxErr.Pos.Line,
			Column: syntaxErr.Pos.Column,
		},
	}
	if syntaxErr.Char >= 0 {
		res.Error.Got = string(syntaxErr.Char)
	}
	return res
}
