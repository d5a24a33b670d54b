// Package encoding holds the small generic decode helpers used for api payloads.
package encoding

import (
	"encoding/json"
	"errors"
	"io"
)

var (
	ErrDecodeJSON   = errors.New("failed to decode JSON")
	ErrTrailingData = errors.New("unexpected data after JSON value")
)

// UnmarshalJSON decodes exactly one JSON value of type T from reader. Anything other than
// whitespace following the value is treated as a malformed payload.
func UnmarshalJSON[T any](reader io.Reader) (T, error) {
	var value T

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecodeJSON)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		var empty T

		return empty, errors.Join(ErrTrailingData, ErrDecodeJSON)
	}

	return value, nil
}
