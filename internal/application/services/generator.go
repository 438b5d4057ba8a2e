package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// generateCode returns a 4-digit code drawn uniformly from 1000-9999.
// Collisions with previously issued codes are allowed; every issuance is
// a fresh row regardless of value.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}
