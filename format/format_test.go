package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/k3tzchen/conf/pkg"
)

// canon renders a decoded tree as JSON so trees decoded by different codecs
// compare equal regardless of their integer types.
func canon(t *testing.T, v any) string {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %#v: %v", v, err)
	}

	return string(b)
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, stem, ext string
		ok              bool
	}{
		{"1.2.0.yaml", "1.2.0", "yaml", true},
		{"1.2.0.json.zst", "1.2.0", "json.zst", true},
		{"app.HCL", "app", "HCL", true},
		{"1.0.0.toml", "", "", false},
		{".yaml", "", "", false},
		{"yaml", "", "", false},
		{"1.0.0.zst", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stem, ext, ok := Split(tt.name)
			if stem != tt.stem || ext != tt.ext || ok != tt.ok {
				t.Errorf("Split(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.name, stem, ext, ok, tt.stem, tt.ext, tt.ok)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	c, err := Lookup(".yml.zst")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if got := c.Name(); got != "yaml.zst" {
		t.Errorf("Name() = %q, want yaml.zst", got)
	}

	_, err = Lookup("toml")
	if !errors.Is(err, ErrFormat) || !errors.Is(err, pkg.ErrType) {
		t.Errorf("Lookup(toml) error = %v, want ErrFormat", err)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		src  string
		want string
	}{
		{
			name: "yaml",
			path: "c.yaml",
			src:  "a:\n  b: 1\n  c: [x, y]\nd: \"{{ $a.b ?? 2 }}\"\n",
			want: `{"a":{"b":1,"c":["x","y"]},"d":"{{ $a.b ?? 2 }}"}`,
		},
		{
			name: "json",
			path: "c.json",
			src:  `{"a": {"b": 1.5}, "n": null}`,
			want: `{"a":{"b":1.5},"n":null}`,
		},
		{
			name: "jsonc",
			path: "c.jsonc",
			src:  "{\n  // port\n  \"port\": 8080,\n  \"tags\": [\"a\", \"b\",],\n}",
			want: `{"port":8080,"tags":["a","b"]}`,
		},
		{
			name: "hcl attributes",
			path: "c.hcl",
			src:  "name = \"svc\"\nport = 8080\nratio = 0.5\nlist = [1, \"two\"]\n",
			want: `{"list":[1,"two"],"name":"svc","port":8080,"ratio":0.5}`,
		},
		{
			name: "hcl blocks",
			path: "c.hcl",
			src:  "server \"a\" {\n  port = 1\n}\nserver \"b\" {\n  port = 2\n}\nlog {\n  level = \"debug\"\n}\n",
			want: `{"log":{"level":"debug"},"server":{"a":{"port":1},"b":{"port":2}}}`,
		},
		{
			name: "empty json",
			path: "c.json",
			src:  "  \n",
			want: `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Decode(tt.path, []byte(tt.src))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}

			if got := canon(t, v); got != tt.want {
				t.Errorf("Decode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"c.json", "c.yaml", "c.hcl", "c.cbor"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(path, []byte("{{{ :"))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Decode(%s) error = %v, want ErrDecode", path, err)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"name": "svc",
		"port": 8080,
		"tags": []any{"a", "b"},
		"nested": map[string]any{
			"enabled": true,
			"ratio":   0.25,
			"unset":   nil,
		},
		"greeting": "{{ if ($env equals prod) then (hi) else (yo) }}",
	}
	want := canon(t, tree)

	var exts []string
	for _, name := range Names() {
		exts = append(exts, name, name+"."+Compressed)
	}

	for _, ext := range exts {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()

			path := "config." + ext

			data, err := Encode(path, tree)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			v, err := Decode(path, data)
			if err != nil {
				t.Fatalf("Decode: %v\n%s", err, data)
			}

			if got := canon(t, v); got != want {
				t.Errorf("round trip = %s, want %s", got, want)
			}
		})
	}
}

func TestEncode_HCLInvalidKey(t *testing.T) {
	t.Parallel()

	_, err := Encode("c.hcl", map[string]any{"not valid": 1})
	if !errors.Is(err, ErrEncode) {
		t.Errorf("Encode error = %v, want ErrEncode", err)
	}
}

func TestEncode_CBORDeterministic(t *testing.T) {
	t.Parallel()

	build := func() map[string]any {
		m := make(map[string]any)
		for _, k := range []string{"z", "y", "x", "w", "v", "u"} {
			m[k] = map[string]any{"k": k}
		}

		return m
	}

	a, err := Encode("c.cbor", build())
	if err != nil {
		t.Fatal(err)
	}

	b, err := Encode("c.cbor", build())
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a, b) {
		t.Error("equal trees encoded to different bytes")
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "1.0.0.yaml.zst")

	data, err := Encode(path, map[string]any{"a": "b"})
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got := canon(t, v); got != `{"a":"b"}` {
		t.Errorf("ReadFile() = %s", got)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrMissing) || !errors.Is(err, pkg.ErrReference) {
		t.Errorf("ReadFile(missing) error = %v, want ErrMissing", err)
	}

	_, err = ReadFile(filepath.Join(dir, "notes.txt"))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("ReadFile(txt) error = %v, want ErrFormat", err)
	}
}
