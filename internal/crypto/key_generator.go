package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const fileKeySize = 16

type randomKeyGenerator struct {
	source io.Reader
}

// NewKeyGenerator returns a [KeyGenerator] reading from the OS CSPRNG.
func NewKeyGenerator() KeyGenerator {
	return &randomKeyGenerator{source: rand.Reader}
}

func (g *randomKeyGenerator) GenerateFileKey() (string, error) {
	key := make([]byte, fileKeySize)
	if _, err := io.ReadFull(g.source, key); err != nil {
		return "", fmt.Errorf("error generating file key: %w", err)
	}

	return hex.EncodeToString(key), nil
}
