package profile

import "testing"

func TestMake_Options(t *testing.T) {
	t.Parallel()

	mode, path, quiet := Make(
		WithMode("cpu"),
		WithPath("/tmp/p"),
		WithQuiet(true),
	)()

	if mode != "cpu" || path != "/tmp/p" || !quiet {
		t.Errorf("Make() = (%q, %q, %v)", mode, path, quiet)
	}
}

func TestStart_EmptyMode(t *testing.T) {
	t.Parallel()

	p := Make().Start()
	if _, ok := p.(ignore); !ok {
		t.Errorf("Start() with empty mode = %T, want ignore", p)
	}

	p.Stop()
}
