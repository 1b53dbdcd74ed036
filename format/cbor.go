package format

import (
	"errors"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	// cborEnc uses Core Deterministic Encoding, so equal trees encode to
	// identical bytes.
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("format: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("format: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Decode(r io.Reader) (any, error) {
	var v any
	if err := cborDec.NewDecoder(r).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, ErrDecode.Wrap(err)
	}

	return v, nil
}

func (cborCodec) Encode(w io.Writer, v any) error {
	if err := cborEnc.NewEncoder(w).Encode(v); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}
