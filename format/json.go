package format

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/tidwall/jsonc"
)

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	return decodeJSON(data)
}

func (jsonCodec) Encode(w io.Writer, v any) error { return encodeJSON(w, v) }

// jsoncCodec reads JSON with comments and trailing commas. It writes plain
// JSON, which is valid JSONC.
type jsoncCodec struct{}

func (jsoncCodec) Name() string { return "jsonc" }

func (jsoncCodec) Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	return decodeJSON(jsonc.ToJSON(data))
}

func (jsoncCodec) Encode(w io.Writer, v any) error { return encodeJSON(w, v) }

func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return numbers(v), nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", Indent))

	if err := enc.Encode(v); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}

// numbers replaces every json.Number in a decoded tree with an int64 when
// the literal is integral, or a float64 otherwise.
func numbers(x any) any {
	switch t := x.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}

		if f, err := t.Float64(); err == nil {
			return f
		}

		return t.String()

	case map[string]any:
		for k, v := range t {
			t[k] = numbers(v)
		}

	case []any:
		for i, v := range t {
			t[i] = numbers(v)
		}
	}

	return x
}
