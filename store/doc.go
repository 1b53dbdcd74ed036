// Package store persists versioned configuration trees on disk.
//
// Each configuration has a name and any number of versions, laid out as
//
//	<root>/<name>/<version>.<ext>[.zst]
//
// where version is a normalized semantic version ("1.2.0") and ext selects
// the codec from package format. Reads search a list of roots and use the
// first one holding the name; writes always go to the first root.
//
// Loaded configurations are cached in a [Registry]. Concurrent loads of the
// same name and version share a single read.
//
// Writes are atomic: content is staged in a temporary file beside the
// target, synced, and then renamed (overwrite) or hard-linked (no-clobber)
// into place. Readers never observe a partial file.
package store
