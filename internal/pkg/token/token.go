package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// NumericCode generates a cryptographically random code of n decimal digits,
// zero-padded, suitable for one-time passwords.
func NumericCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("generate code: invalid length %d", n)
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	s := v.String()
	return strings.Repeat("0", n-len(s)) + s, nil
}
