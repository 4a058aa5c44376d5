// Package format renders parsed JSON values and parse errors as text.
package format

import (
	"encoding"

	"github.com/dhamidi/tinyjson/json"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(v json.Value) error
}
