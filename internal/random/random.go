// Package random provides cryptographically random identifiers.
package random

import (
	"crypto/rand"
	"github.com/myrjola/dailytake/internal/errors"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Letters returns n random ASCII letters. It names in-memory databases and CSP nonces.
func Letters(n uint) (string, error) {
	out := make([]byte, n)
	upper := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, upper)
		if err != nil {
			return "", errors.Wrap(err, "random index")
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
