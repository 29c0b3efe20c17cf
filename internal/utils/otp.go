package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// GenerateOTPCode returns a 6-digit numeric one-time code.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// CodesEqual compares two OTP codes in constant time.
func CodesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
