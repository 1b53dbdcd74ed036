package store

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// FileMode is the permission of files created by [WriteFile].
const FileMode fs.FileMode = 0o644

// WriteFile atomically writes data to path. The parent directory must
// exist. Unless overwrite is set, an existing file at path is left
// untouched and ErrExists is returned.
func WriteFile(path string, data []byte, overwrite bool) error {
	id, err := nanoid.New()
	if err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, "."+base+"."+id+".tmp")

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	// After a rename the temporary name no longer exists; after a link it
	// is a second name for the target.
	defer os.Remove(tmp)

	if _, err := file.Write(data); err != nil {
		file.Close()

		return ErrWrite.Wrap(err).With(slog.String("path", tmp))
	}

	if err := file.Sync(); err != nil {
		file.Close()

		return ErrWrite.Wrap(err).With(slog.String("path", tmp))
	}

	if err := file.Close(); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", tmp))
	}

	if overwrite {
		err = os.Rename(tmp, path)
	} else {
		err = os.Link(tmp, path)
	}

	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrExists.With(slog.String("path", path))
		}

		return ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	if d, err := os.Open(filepath.Dir(path)); err == nil {
		d.Sync()
		d.Close()
	}

	return nil
}
