// Package format encodes and decodes configuration trees.
//
// A codec is selected by file extension. The supported extensions are
// yaml, yml, json, jsonc, hcl and cbor; any of them may carry a trailing
// .zst suffix, in which case the stream is zstd compressed.
//
// Decoded trees use plain Go values: map[string]any, []any, string, bool,
// integer and float64 numbers, and nil.
package format
