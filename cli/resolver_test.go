package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestFlagKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want []string
	}{
		{"root", []string{"root"}},
		{"log-level", []string{"log-level", "log_level", "log.level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := flagKeys(tt.name); !slices.Equal(got, tt.want) {
				t.Errorf("flagKeys(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("CONF_TEST_ROOT", "/from/env")

	tests := []struct {
		name   string
		ext    string
		config string
		want   map[string]any
	}{
		{
			name:   "hyphenated",
			ext:    "yaml",
			config: "log-level: debug\n",
			want:   map[string]any{"log-level": "debug"},
		},
		{
			name:   "underscore",
			ext:    "yaml",
			config: "log_format: json\n",
			want:   map[string]any{"log-format": "json"},
		},
		{
			name:   "nested",
			ext:    "yaml",
			config: "log:\n  pretty: true\n  caller: false\n",
			want:   map[string]any{"log-pretty": true, "log-caller": false},
		},
		{
			name:   "number",
			ext:    "json",
			config: `{"depth": 3, "ratio": 0.5}`,
			want:   map[string]any{"depth": "3", "ratio": "0.5"},
		},
		{
			name:   "directive",
			ext:    "yaml",
			config: "root: \"{{ $CONF_TEST_ROOT ?? /srv/conf }}\"\n",
			want:   map[string]any{"root": "/from/env"},
		},
		{
			name:   "absent",
			ext:    "yaml",
			config: "other: 1\n",
			want:   map[string]any{"root": nil},
		},
		{
			name:   "malformed",
			ext:    "json",
			config: `{"root": `,
			want:   map[string]any{"root": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolve(tt.ext)(strings.NewReader(tt.config))
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}

			for name, want := range tt.want {
				got, err := res.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
				if err != nil {
					t.Fatalf("Resolve(%s) error = %v", name, err)
				}

				if got != want {
					t.Errorf("Resolve(%s) = %#v, want %#v", name, got, want)
				}
			}
		})
	}
}

func TestResolve_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := resolve("toml")(strings.NewReader("")); err == nil {
		t.Error("resolve(toml) succeeded, want error")
	}
}

func TestResolve_Kong(t *testing.T) {
	t.Parallel()

	res, err := resolve("yaml")(strings.NewReader("log:\n  level: warn\nname: [a, b]\n"))
	if err != nil {
		t.Fatal(err)
	}

	var cli struct {
		Log  logConfig `embed:"" prefix:"log-"`
		Name []string
	}

	var l logConfig

	parser, err := kong.New(&cli, kong.Resolvers(res), l.vars())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--log-format=json"}); err != nil {
		t.Fatal(err)
	}

	if cli.Log.Level != "warn" {
		t.Errorf("Level = %q, want warn from the configuration", cli.Log.Level)
	}

	if cli.Log.Format != "json" {
		t.Errorf("Format = %q, want json from the command line", cli.Log.Format)
	}

	if !slices.Equal(cli.Name, []string{"a", "b"}) {
		t.Errorf("Name = %q, want [a b]", cli.Name)
	}
}

func TestLogScan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		pretty bool
		caller bool
	}{
		{"separate value", []string{"get", "--log-level", "debug"}, "debug", false, false},
		{"assigned", []string{"--log-level=warn", "--log-pretty"}, "warn", true, false},
		{"negated", []string{"--log-caller", "--no-log-caller=false"}, "", false, true},
		{"invalid bool", []string{"--log-pretty=maybe"}, "", false, false},
		{"terminator", []string{"--", "--log-pretty"}, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f logConfig

			f.scan(tt.args)

			if f.Level != tt.level || f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("scan(%q) = {level:%q pretty:%v caller:%v}, want {%q %v %v}",
					tt.args, f.Level, f.Pretty, f.Caller, tt.level, tt.pretty, tt.caller)
			}
		})
	}
}
