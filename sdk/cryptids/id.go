// Package cryptids generates random string identifiers from crypto/rand.
package cryptids

import (
	"crypto/rand"
	"fmt"
)

// HexAlphabet is the lowercase hex digit set.
const HexAlphabet = "0123456789abcdef"

// GenerateCustomID creates a random string of size characters drawn from alphabet.
func GenerateCustomID(alphabet string, size int) (string, error) {
	return generateID(alphabet, size)
}

// GenerateHexID creates a lowercase hex id of size characters, the shape
// Zipkin expects for span ids (16) and trace ids (16 or 32).
func GenerateHexID(size int) (string, error) {
	return generateID(HexAlphabet, size)
}

func generateID(alphabet string, size int) (string, error) {
	if len(alphabet) < 2 || len(alphabet) > 256 {
		return "", fmt.Errorf("alphabet must contain between 2 and 256 characters")
	}
	if size < 1 {
		return "", fmt.Errorf("size must be at least 1")
	}

	// smallest all-ones mask covering the alphabet; bytes past len(alphabet)
	// are rejected rather than folded to keep the distribution uniform.
	mask := 1
	for mask < len(alphabet)-1 {
		mask = (mask << 1) | 1
	}

	step := size + size/2 + 1
	id := make([]byte, 0, size)
	buf := make([]byte, step)

	for len(id) < size {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			idx := int(b) & mask
			if idx >= len(alphabet) {
				continue
			}
			id = append(id, alphabet[idx])
			if len(id) == size {
				break
			}
		}
	}

	return string(id), nil
}
