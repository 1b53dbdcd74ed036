package cli

import (
	"os"
	"path/filepath"

	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/pkg"
	"github.com/k3tzchen/conf/store"
)

// baseConfig is the base name of the command line's own configuration file.
const baseConfig = "config"

// defaultDirMode is the permission mode of created runtime directories.
const defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// configFiles returns the candidate configuration files, one per format,
// starting with the one written by the init command.
func configFiles() []string {
	files := []string{configPath(baseConfig + "." + store.DefaultFormat)}

	for _, ext := range format.Names() {
		if ext != store.DefaultFormat {
			files = append(files, configPath(baseConfig+"."+ext))
		}
	}

	return files
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
