package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// fingerprint returns the hex BLAKE3-256 digest of the canonical JSON
// encoding of tree. encoding/json writes map keys in sorted order.
func fingerprint(tree map[string]any) string {
	b, err := json.Marshal(tree)
	if err != nil {
		// values JSON cannot represent, such as NaN
		b = fmt.Appendf(nil, "%#v", tree)
	}

	sum := blake3.Sum256(b)

	return hex.EncodeToString(sum[:])
}
