package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/store"
	"github.com/k3tzchen/conf/version"
)

const testYAML = `env: prod
mode: "{{ if ($env equals prod) then (fast) else (slow) }}"
server:
  host: localhost
  port: "8080"
`

// newTestContext returns a context holding a store with version 1.0.0 of
// "app", and the buffer receiving command output.
func newTestContext(t *testing.T) (context.Context, *store.Store, *bytes.Buffer) {
	t.Helper()

	tree, err := format.Decode("app.yaml", []byte(testYAML))
	if err != nil {
		t.Fatal(err)
	}

	s := store.New(t.TempDir())
	if err := s.Write(t.Context(), "app", "1.0.0", tree, false); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	ctx := WithOutput(WithStore(t.Context(), s), &out)

	return ctx, s, &out
}

// canonJSON re-encodes JSON output so it compares independent of layout.
func canonJSON(t *testing.T, data []byte) string {
	t.Helper()

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestStoreFrom(t *testing.T) {
	t.Parallel()

	if _, err := storeFrom(t.Context()); !errors.Is(err, ErrNoStore) {
		t.Errorf("storeFrom() error = %v, want ErrNoStore", err)
	}

	if err := (&Hash{Name: "app"}).Run(t.Context()); !errors.Is(err, ErrNoStore) {
		t.Errorf("Hash.Run() error = %v, want ErrNoStore", err)
	}
}

func TestGetRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Get
		want string
	}{
		{
			name: "all_keys",
			cmd:  Get{Name: "app", Version: "latest", Output: "json"},
			want: `{"env":"prod","mode":"fast","server":{"host":"localhost","port":"8080"}}`,
		},
		{
			name: "paths",
			cmd:  Get{Name: "app", Paths: []string{"server.port", "mode"}, Version: "1.0.0", Output: "json"},
			want: `{"mode":"fast","server":{"port":8080}}`,
		},
		{
			name: "missing_path",
			cmd:  Get{Name: "app", Paths: []string{"nope"}, Version: "latest", Output: "json"},
			want: `{}`,
		},
		{
			name: "transform",
			cmd: Get{
				Name:      "app",
				Paths:     []string{"env", "mode"},
				Version:   "latest",
				Output:    "json",
				Transform: `path + "=" + upper(value)`,
			},
			want: `{"env":"env=PROD","mode":"mode=FAST"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _, out := newTestContext(t)

			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("Get.Run() error = %v", err)
			}

			if got := canonJSON(t, out.Bytes()); got != tt.want {
				t.Errorf("Get.Run() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGetRun_Errors(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newTestContext(t)

	err := (&Get{Name: "app", Version: "latest", Output: "json", Transform: "value +"}).Run(ctx)
	if !errors.Is(err, ErrTransform) {
		t.Errorf("bad transform error = %v, want ErrTransform", err)
	}

	err = (&Get{Name: "other", Version: "latest", Output: "json"}).Run(ctx)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown name error = %v, want ErrNotFound", err)
	}

	err = (&Get{Name: "app", Version: "latest", Output: "toml"}).Run(ctx)
	if !errors.Is(err, ErrOutput) {
		t.Errorf("unknown output error = %v, want ErrOutput", err)
	}
}

func TestRawRun(t *testing.T) {
	t.Parallel()

	ctx, _, out := newTestContext(t)

	if err := (&Raw{Name: "app", Paths: []string{"mode"}, Version: "latest", Output: "json"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	want := `{"mode":"{{ if ($env equals prod) then (fast) else (slow) }}"}`
	if got := canonJSON(t, out.Bytes()); got != want {
		t.Errorf("Raw.Run() = %s, want %s", got, want)
	}
}

func TestHashRun(t *testing.T) {
	t.Parallel()

	ctx, s, out := newTestContext(t)

	if err := (&Hash{Name: "app", Version: "latest"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	c, err := s.Load(ctx, "app", "1.0.0")
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.TrimSpace(out.String()); got != c.Hash() || len(got) != 64 {
		t.Errorf("Hash.Run() = %q, want %q", got, c.Hash())
	}
}

func TestPutRun(t *testing.T) {
	t.Parallel()

	ctx, _, out := newTestContext(t)

	changed := writeSource(t, "app.json", `{"env": "dev"}`)

	steps := []struct {
		name string
		cmd  Put
		want string
		err  error
	}{
		{"commit_minor", Put{Name: "app", Source: changed, Bump: "minor"}, "1.1.0", nil},
		{"commit_unchanged", Put{Name: "app", Source: changed, Bump: "major"}, "1.1.0", nil},
		{"exact_version", Put{Name: "app", Source: changed, Version: "v2"}, "2.0.0", nil},
		{"exists", Put{Name: "app", Source: changed, Version: "1.0.0"}, "", store.ErrExists},
		{"force", Put{Name: "app", Source: changed, Version: "1.0.0", Force: true}, "1.0.0", nil},
		{"bad_part", Put{Name: "app", Source: changed, Bump: "huge"}, "", version.ErrPart},
	}

	for _, s := range steps {
		out.Reset()

		err := s.cmd.Run(ctx)
		if s.err == nil && err != nil {
			t.Fatalf("%s: Put.Run() error = %v", s.name, err)
		}

		if s.err != nil && !errors.Is(err, s.err) {
			t.Errorf("%s: Put.Run() error = %v, want %v", s.name, err, s.err)
		}

		if got := strings.TrimSpace(out.String()); got != s.want {
			t.Errorf("%s: Put.Run() printed %q, want %q", s.name, got, s.want)
		}
	}

	out.Reset()

	if err := (&Versions{Name: "app"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), "1.0.0\n1.1.0\n2.0.0\n"; got != want {
		t.Errorf("Versions.Run() = %q, want %q", got, want)
	}
}

func TestEvalRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Eval
		want string
	}{
		{
			name: "reference",
			cmd:  Eval{Name: "app", Directive: []string{"$server.host"}, Version: "latest", Output: "text"},
			want: "localhost\n",
		},
		{
			name: "joined_args",
			cmd:  Eval{Name: "app", Directive: []string{"$missing", "??", "$env"}, Version: "latest", Output: "text"},
			want: "prod\n",
		},
		{
			name: "directive",
			cmd: Eval{
				Name:      "app",
				Directive: []string{"{{ if ($mode equals fast) then (1) else (0) }}"},
				Version:   "latest",
				Output:    "text",
			},
			want: "1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, _, out := newTestContext(t)

			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("Eval.Run() error = %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("Eval.Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtRun(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "in.yaml", testYAML)

	var out bytes.Buffer

	ctx := WithOutput(t.Context(), &out)

	if err := (&Fmt{Source: src, To: "json"}).Run(ctx); err != nil {
		t.Fatalf("Fmt.Run() error = %v", err)
	}

	want := `{"env":"prod","mode":"{{ if ($env equals prod) then (fast) else (slow) }}","server":{"host":"localhost","port":"8080"}}`
	if got := canonJSON(t, out.Bytes()); got != want {
		t.Errorf("Fmt.Run() = %s, want %s", got, want)
	}

	if err := (&Fmt{Source: src, To: "toml"}).Run(ctx); !errors.Is(err, ErrOutput) {
		t.Errorf("Fmt.Run(toml) error = %v, want ErrOutput", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if err := (&Fmt{Source: missing, To: "json"}).Run(ctx); !errors.Is(err, format.ErrMissing) {
		t.Errorf("Fmt.Run(missing) error = %v, want ErrMissing", err)
	}
}

type testLevel string

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli struct {
				Level     testLevel `default:"info"`
				Root      string    `default:"/srv/conf"`
				Tags      []string  `default:"a,b"`
				Secret    string    `default:"x" hidden:""`
				PprofMode string    `default:"cpu"`
				Empty     string
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			err = (&Init{Force: tt.force}).Run(WithContext(t.Context(), ktx))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			tree, err := format.ReadFile(confPath)
			if err != nil {
				t.Fatalf("generated config does not decode: %v", err)
			}

			b, err := json.Marshal(tree)
			if err != nil {
				t.Fatal(err)
			}

			want := `{"level":"info","root":"/srv/conf","tags":["a","b"]}`
			if got := string(b); got != want {
				t.Errorf("generated config = %s, want %s", got, want)
			}
		})
	}
}
