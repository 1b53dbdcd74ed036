package version

import (
	"errors"
	"slices"
	"testing"

	"github.com/k3tzchen/conf/pkg"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1.2.3", "1.2.3", false},
		{"v1.2.3", "1.2.3", false},
		{"1", "1.0.0", false},
		{"v1.2", "1.2.0", false},
		{" 2.0.0-rc.1 ", "2.0.0-rc.1", false},
		{"1.0.0+build.5", "1.0.0", false},
		{"", "", true},
		{"x.y", "", true},
		{"1.2.3.4", "", true},
		{"latest", "", true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)

			continue
		}

		if err != nil && !errors.Is(err, pkg.ErrSyntax) {
			t.Errorf("Normalize(%q) error %v is not a syntax error", tt.in, err)
		}

		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortAndMax(t *testing.T) {
	t.Parallel()

	vs := []string{"1.10.0", "1.2.0", "2.0.0-rc.1", "1.9.9", "2.0.0"}
	Sort(vs)

	want := []string{"1.2.0", "1.9.9", "1.10.0", "2.0.0-rc.1", "2.0.0"}
	if !slices.Equal(vs, want) {
		t.Errorf("Sort = %v, want %v", vs, want)
	}

	if got, ok := Max(append(vs, "junk")); !ok || got != "2.0.0" {
		t.Errorf("Max = %q, %v", got, ok)
	}

	if _, ok := Max([]string{"junk"}); ok {
		t.Error("Max of invalid versions should report false")
	}
}

func TestBump(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		part Part
		want string
	}{
		{"1.2.3", Patch, "1.2.4"},
		{"1.2.3", Minor, "1.3.0"},
		{"1.2.3", Major, "2.0.0"},
		{"1.2.3-rc.1", Patch, "1.2.3"},
		{"0", Patch, "0.0.1"},
	}

	for _, tt := range tests {
		if got, err := Bump(tt.in, tt.part); err != nil || got != tt.want {
			t.Errorf("Bump(%q, %s) = %q, %v, want %q", tt.in, tt.part, got, err, tt.want)
		}
	}

	if _, err := Bump("1.0.0", "tiny"); !errors.Is(err, ErrPart) {
		t.Errorf("Bump with bad part error = %v", err)
	}
}

func TestParsePartAndLatest(t *testing.T) {
	t.Parallel()

	if p, err := ParsePart(" Minor "); err != nil || p != Minor {
		t.Errorf("ParsePart = %q, %v", p, err)
	}

	if _, err := ParsePart("micro"); !errors.Is(err, pkg.ErrSyntax) {
		t.Errorf("ParsePart(micro) error = %v", err)
	}

	for in, want := range map[string]bool{"": true, "latest": true, "LATEST": true, "1.0.0": false} {
		if got := IsLatest(in); got != want {
			t.Errorf("IsLatest(%q) = %v", in, got)
		}
	}
}
