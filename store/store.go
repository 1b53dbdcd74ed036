package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/k3tzchen/conf/config"
	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/log"
	"github.com/k3tzchen/conf/version"
)

// DirMode is the permission of directories created by a [Store].
const DirMode fs.FileMode = 0o755

// InitialVersion is bumped to produce the first committed version.
const InitialVersion = "0.0.0"

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store reads and writes versioned configurations below a list of roots.
type Store struct {
	roots      []string
	format     string
	registry   *Registry
	logger     log.Logger
	configOpts []config.Option
}

// New returns a store writing to root.
func New(root string, opts ...Option) *Store {
	s := &Store{roots: []string{root}}

	applyDefaults(s)
	applyOptions(s, opts...)

	return s
}

// Root returns the root that receives writes.
func (s *Store) Root() string { return s.roots[0] }

// Roots returns every root in search order.
func (s *Store) Roots() []string { return append([]string(nil), s.roots...) }

// Registry returns the cache of loaded configurations.
func (s *Store) Registry() *Registry { return s.registry }

// Names returns the configuration names found in every root, without
// duplicates, in root order.
func (s *Store) Names() []string {
	var names []string

	seen := make(map[string]bool)

	for _, root := range s.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if e.IsDir() && validName.MatchString(e.Name()) && !seen[e.Name()] {
				seen[e.Name()] = true
				names = append(names, e.Name())
			}
		}
	}

	return names
}

// Versions returns the stored versions of name in ascending order.
func (s *Store) Versions(name string) ([]string, error) {
	_, files, err := s.files(name)
	if err != nil {
		return nil, err
	}

	vs := slices.Collect(maps.Keys(files))
	version.Sort(vs)

	return vs, nil
}

// Latest returns the newest stored version of name.
func (s *Store) Latest(name string) (string, error) {
	vs, err := s.Versions(name)
	if err != nil {
		return "", err
	}

	v, ok := version.Max(vs)
	if !ok {
		return "", ErrNotFound.With(slog.String("name", name))
	}

	return v, nil
}

// Exists reports whether name has the given version. The version "latest"
// matches any stored version.
func (s *Store) Exists(name, ver string) bool {
	_, _, err := s.resolve(name, ver)

	return err == nil
}

// Path returns the file holding a version of name.
func (s *Store) Path(name, ver string) (string, error) {
	_, path, err := s.resolve(name, ver)

	return path, err
}

// Read decodes a stored version of name without resolving it.
func (s *Store) Read(ctx context.Context, name, ver string) (any, error) {
	v, path, err := s.resolve(name, ver)
	if err != nil {
		return nil, err
	}

	s.logger.TraceContext(ctx, "read",
		slog.String("name", name),
		slog.String("version", v),
		slog.String("path", path),
	)

	return format.ReadFile(path)
}

// Load returns the configuration for a version of name. Results are cached
// in the store's registry.
func (s *Store) Load(
	ctx context.Context,
	name, ver string,
) (*config.Config, error) {
	v, path, err := s.resolve(name, ver)
	if err != nil {
		return nil, err
	}

	c, hit, err := s.registry.Load(ctx, Key(name, v),
		func(ctx context.Context) (*config.Config, error) {
			s.logger.TraceContext(ctx, "load",
				slog.String("name", name),
				slog.String("version", v),
				slog.String("path", path),
			)

			tree, err := format.ReadFile(path)
			if err != nil {
				return nil, err
			}

			return s.config(tree), nil
		},
	)
	if err != nil {
		return nil, err
	}

	if hit {
		s.logger.TraceContext(ctx, "registry hit",
			slog.String("name", name),
			slog.String("version", v),
		)
	}

	return c, nil
}

// Write stores tree as a version of name in the first root. An existing
// file for that version keeps its format. Unless overwrite is set, an
// existing version is left untouched and ErrExists is returned.
func (s *Store) Write(
	ctx context.Context,
	name, ver string,
	tree any,
	overwrite bool,
) error {
	if !validName.MatchString(name) {
		return ErrName.With(slog.String("name", name))
	}

	v, err := version.Normalize(ver)
	if err != nil {
		return err
	}

	dir := filepath.Join(s.Root(), name)

	path := filepath.Join(dir, v+"."+s.format)
	if files, err := s.scan(dir); err == nil {
		if existing, ok := files[v]; ok {
			if !overwrite {
				return ErrExists.With(
					slog.String("name", name),
					slog.String("version", v),
					slog.String("path", existing),
				)
			}

			path = existing
		}
	}

	data, err := format.Encode(path, tree)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, DirMode); err != nil {
		return ErrWrite.Wrap(err).With(slog.String("path", dir))
	}

	if err := WriteFile(path, data, overwrite); err != nil {
		return err
	}

	s.registry.Forget(Key(name, v))

	s.logger.DebugContext(ctx, "write",
		slog.String("name", name),
		slog.String("version", v),
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// Commit stores tree as a new version of name when its fingerprint differs
// from the latest stored version. The new version bumps part of the latest
// one, or of [InitialVersion] if name has no versions. It returns the
// version holding tree and whether a new version was written.
func (s *Store) Commit(
	ctx context.Context,
	name string,
	tree any,
	part version.Part,
) (string, bool, error) {
	base := InitialVersion

	latest, err := s.Latest(name)

	switch {
	case err == nil:
		cur, err := s.Load(ctx, name, latest)
		if err != nil {
			return "", false, err
		}

		if cur.Hash() == s.config(tree).Hash() {
			s.logger.DebugContext(ctx, "unchanged",
				slog.String("name", name),
				slog.String("version", latest),
			)

			return latest, false, nil
		}

		base = latest

	case !errors.Is(err, ErrNotFound):
		return "", false, err
	}

	next, err := version.Bump(base, part)
	if err != nil {
		return "", false, err
	}

	if err := s.Write(ctx, name, next, tree, false); err != nil {
		return "", false, err
	}

	return next, true, nil
}

func (s *Store) config(tree any) *config.Config {
	opts := append([]config.Option{config.WithLogger(s.logger)}, s.configOpts...)

	return config.New(tree, opts...)
}

// resolve returns the normalized version and file path selected by ver.
func (s *Store) resolve(name, ver string) (string, string, error) {
	_, files, err := s.files(name)
	if err != nil {
		return "", "", err
	}

	var v string

	if version.IsLatest(ver) {
		latest, ok := version.Max(slices.Collect(maps.Keys(files)))
		if !ok {
			return "", "", ErrNotFound.With(slog.String("name", name))
		}

		v = latest
	} else if v, err = version.Normalize(ver); err != nil {
		return "", "", err
	}

	path, ok := files[v]
	if !ok {
		return "", "", ErrNotFound.With(
			slog.String("name", name),
			slog.String("version", v),
		)
	}

	return v, path, nil
}

// files returns the first directory named name below a root and its
// version files.
func (s *Store) files(name string) (string, map[string]string, error) {
	if !validName.MatchString(name) {
		return "", nil, ErrName.With(slog.String("name", name))
	}

	for _, root := range s.roots {
		dir := filepath.Join(root, name)

		files, err := s.scan(dir)
		if err == nil {
			return dir, files, nil
		}
	}

	return "", nil, ErrNotFound.With(slog.String("name", name))
}

// scan maps each normalized version in dir to its file path. Files that are
// not versions in a known format are ignored.
func (s *Store) scan(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(entries))

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		stem, _, ok := format.Split(e.Name())
		if !ok {
			continue
		}

		v, err := version.Normalize(stem)
		if err != nil || v != stem {
			continue
		}

		if _, dup := files[v]; !dup {
			files[v] = filepath.Join(dir, e.Name())
		}
	}

	return files, nil
}
