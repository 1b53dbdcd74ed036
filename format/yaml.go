package format

import (
	"io"

	"github.com/goccy/go-yaml"
)

// Indent is the indentation width used by the text encoders.
const Indent = 2

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return v, nil
}

func (yamlCodec) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w, yaml.Indent(Indent), yaml.IndentSequence(true))
	if err := enc.Encode(v); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}
