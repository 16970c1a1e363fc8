package internal

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
)

// TextAlphabet excludes visually ambiguous characters (0/O/o, 1/I/l) so the
// rendered artifact stays unambiguous regardless of distortion.
const TextAlphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

// RandomInt returns a uniform value in [0, max) from crypto/rand.
func RandomInt(max int) (int, error) {
	if max <= 0 {
		return 0, errors.New("random bound must be > 0")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// RandomString draws n characters from the given alphabet.
func RandomString(alphabet string, n int) (string, error) {
	if n <= 0 {
		return "", errors.New("random string length must be > 0")
	}
	if alphabet == "" {
		return "", errors.New("random string alphabet must not be empty")
	}

	var b strings.Builder
	b.Grow(n)

	for i := 0; i < n; i++ {
		idx, err := RandomInt(len(alphabet))
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[idx])
	}
	return b.String(), nil
}

// RandomDigits returns a random decimal digit string of length n.
func RandomDigits(n int) (string, error) {
	return RandomString("0123456789", n)
}

// HexSuffix returns 2*n lowercase hex characters of fresh randomness, used as
// the collision-resistant tail of challenge ids.
func HexSuffix(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("hex suffix size must be > 0")
	}
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
