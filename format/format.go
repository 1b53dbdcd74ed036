package format

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/k3tzchen/conf/pkg"
)

// Codec converts between a byte stream and a decoded tree.
type Codec interface {
	// Name returns the canonical extension handled by the codec.
	Name() string
	Decode(r io.Reader) (any, error)
	Encode(w io.Writer, v any) error
}

// Compressed is the extension suffix selecting zstd compression.
const Compressed = "zst"

var codecs = map[string]Codec{
	"yaml":  yamlCodec{},
	"yml":   yamlCodec{},
	"json":  jsonCodec{},
	"jsonc": jsoncCodec{},
	"hcl":   hclCodec{},
	"cbor":  cborCodec{},
}

// Names returns the supported extensions in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Lookup returns the codec for an extension, with or without a leading dot.
// An extension ending in .zst selects the zstd-wrapped codec.
func Lookup(ext string) (Codec, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	inner, zst := strings.CutSuffix(ext, "."+Compressed)
	if c, ok := codecs[inner]; ok {
		if zst {
			return zstdCodec{c}, nil
		}

		return c, nil
	}

	return nil, ErrFormat.With(slog.String("format", ext))
}

// ForPath returns the codec selected by the extension of path.
func ForPath(path string) (Codec, error) {
	_, ext, ok := Split(filepath.Base(path))
	if !ok {
		return nil, ErrFormat.With(slog.String("path", path))
	}

	return Lookup(ext)
}

// Split separates a file name into its stem and a supported extension,
// including any .zst suffix. It reports false if the name has no supported
// extension.
func Split(name string) (stem, ext string, ok bool) {
	rest, zst := strings.CutSuffix(name, "."+Compressed)

	i := strings.LastIndexByte(rest, '.')
	if i <= 0 {
		return "", "", false
	}

	if _, ok := codecs[strings.ToLower(rest[i+1:])]; !ok {
		return "", "", false
	}

	stem, ext = rest[:i], rest[i+1:]
	if zst {
		ext += "." + Compressed
	}

	return stem, ext, true
}

// ReadFile decodes the file at path with the codec selected by its
// extension.
func ReadFile(path string) (any, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMissing.Wrap(err).With(slog.String("path", path))
		}

		return nil, ErrRead.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	v, err := c.Decode(ra)
	if err != nil {
		return nil, withPath(err, path)
	}

	return v, nil
}

// Decode decodes data with the codec selected by the extension of path.
func Decode(path string, data []byte) (any, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	v, err := c.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, withPath(err, path)
	}

	return v, nil
}

// Encode returns tree encoded in the format selected by the extension of
// path.
func Encode(path string, tree any) ([]byte, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, tree); err != nil {
		return nil, withPath(err, path)
	}

	return buf.Bytes(), nil
}

// withPath attaches a path attribute to a codec error.
func withPath(err error, path string) error {
	var e *pkg.Error
	if errors.As(err, &e) {
		return e.With(slog.String("path", path))
	}

	return err
}
