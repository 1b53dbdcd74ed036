package pkg

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "conf" {
		t.Errorf("Expected Name to be %q, got %q", "conf", Name)
	}
}

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Fatal("Expected Version to be embedded")
	}

	if strings.ContainsAny(Version, " \t\r\n") {
		t.Errorf("Expected Version to be trimmed, got %q", Version)
	}
}

func TestAuthor(t *testing.T) {
	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestEnvPrefix(t *testing.T) {
	p := EnvPrefix()
	if !strings.HasSuffix(p, "_") {
		t.Errorf("EnvPrefix() = %q, want trailing underscore", p)
	}

	if strings.ToUpper(p) != p {
		t.Errorf("EnvPrefix() = %q, want upper case", p)
	}
}

func TestDirs(t *testing.T) {
	for name, fn := range map[string]func() string{
		"ConfigDir": ConfigDir,
		"CacheDir":  CacheDir,
		"DataDir":   DataDir,
	} {
		t.Run(name, func(t *testing.T) {
			if dir := fn(); filepath.Base(dir) != Prefix() {
				t.Errorf("%s() = %q, want base %q", name, dir, Prefix())
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	errCycle := ErrReference.Kind("circular reference")
	wrapped := errCycle.Wrap(errors.New("a -> a")).With(slog.String("path", "a"))

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel", wrapped, errCycle, true},
		{"kind", wrapped, ErrReference, true},
		{"other kind", wrapped, ErrIO, false},
		{"root", ErrIO, ErrIO, true},
		{"cause", ErrIO.Wrap(fs.ErrExist), fs.ErrExist, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := ErrSyntax.Kind("invalid version").Wrap(errors.New(`"x.y"`))
	if got, want := err.Error(), `invalid version: "x.y"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got := WrapError(errors.New("plain")).Error(); got != "plain" {
		t.Errorf("WrapError().Error() = %q, want %q", got, "plain")
	}
}

func TestError_LogValue(t *testing.T) {
	t.Parallel()

	err := ErrIO.Kind("file exists").With(slog.String("path", "/x"))

	attrs := err.LogValue().Group()
	keys := make([]string, 0, len(attrs))

	for _, a := range attrs {
		keys = append(keys, a.Key)
	}

	if got, want := strings.Join(keys, ","), "error,kind,path"; got != want {
		t.Errorf("LogValue keys = %q, want %q", got, want)
	}
}
