package store

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/k3tzchen/conf/pkg"
)

// PathVar returns the name of the environment variable holding the store
// search path, for example "CONF_PATH".
func PathVar() string { return pkg.EnvPrefix() + "PATH" }

// Search returns roots followed by the entries of the search path variable,
// without duplicates or empty entries.
func Search(roots ...string) []string {
	return search(os.Getenv(PathVar()), roots...)
}

func search(list string, roots ...string) []string {
	merged := mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(roots...),
	).String()

	var out []string

	seen := make(map[string]bool)

	for _, dir := range filepath.SplitList(merged) {
		if dir == "" {
			continue
		}

		if clean := filepath.Clean(dir); !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}

	return out
}
