package format

import "github.com/k3tzchen/conf/pkg"

var (
	// ErrFormat reports a file extension with no registered codec.
	ErrFormat = pkg.ErrType.Kind("unsupported format")
	// ErrDecode reports content that could not be decoded.
	ErrDecode = pkg.ErrIO.Kind("decode failed")
	// ErrEncode reports a tree that could not be encoded.
	ErrEncode = pkg.ErrIO.Kind("encode failed")
	// ErrRead reports a file that could not be read.
	ErrRead = pkg.ErrIO.Kind("read failed")
	// ErrMissing reports a file that does not exist.
	ErrMissing = pkg.ErrReference.Kind("file not found")
)
