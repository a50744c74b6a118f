package tx

import (
	"bytes"
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// decodeJSON parses exactly one JSON value, keeping numbers verbatim
func decodeJSON(b []byte) (any, error) {
	if !utf8.Valid(b) {
		return nil, errors.New("invalid JSON: not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: trailing data")
	}

	return value, nil
}

// marshalCanonical encodes maps with sorted keys, without HTML escaping and
// without a trailing newline
func marshalCanonical(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(value); err != nil {
		return nil, errors.Wrap(ErrEncoding, err.Error())
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
