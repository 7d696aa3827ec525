package secretshare

import (
	"crypto/rand"
	"fmt"
	"math/big"

	terrors "github.com/trusteetool/trustee/internal/errors"
)

// DigitsPerShare fixes each participant's share at 4 digits, so the full
// secret is always an exact multiple of the participant count and
// splitting never truncates.
const DigitsPerShare = 4

// Generate draws a numeric secret of exactly DigitsPerShare×n digits,
// each digit chosen independently and uniformly from crypto/rand. The
// secret seals the backup artifact, so a general-purpose RNG is not
// acceptable here.
func Generate(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("participant count must be at least 1, got %d", n)
	}

	digits := make([]byte, 0, DigitsPerShare*n)
	ten := big.NewInt(10)
	for i := 0; i < DigitsPerShare*n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to draw secure random digit: %w", err)
		}
		digits = append(digits, byte('0'+d.Int64()))
	}

	return string(digits), nil
}

// Split cuts the secret into n contiguous equal-length shares in order.
// Concatenating the shares in ascending index order reproduces the
// secret exactly. Lengths that are not an exact multiple of n are
// refused rather than silently truncated.
func Split(secret string, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("share count must be at least 1, got %d", n)
	}
	if len(secret)%n != 0 {
		return nil, fmt.Errorf("%w: %d digits into %d shares", terrors.ErrUnevenSplit, len(secret), n)
	}

	size := len(secret) / n
	shares := make([]string, 0, n)
	for i := 0; i < len(secret); i += size {
		shares = append(shares, secret[i:i+size])
	}
	return shares, nil
}
