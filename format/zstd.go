package format

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdCodec compresses the output of another codec.
type zstdCodec struct{ Codec }

func (c zstdCodec) Name() string { return c.Codec.Name() + "." + Compressed }

func (c zstdCodec) Decode(r io.Reader) (any, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}
	defer zr.Close()

	return c.Codec.Decode(zr)
}

func (c zstdCodec) Encode(w io.Writer, v any) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	if err := c.Codec.Encode(zw, v); err != nil {
		zw.Close()

		return err
	}

	if err := zw.Close(); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}
