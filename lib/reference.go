package lib

import (
	"crypto/rand"
	"fmt"
)

const referenceChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateQuoteReference returns a human-readable quote reference such as Q-7KX2MD.
func GenerateQuoteReference() (string, error) {
	const length = 6

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate quote reference: %w", err)
	}
	for i := range b {
		b[i] = referenceChars[int(b[i])%len(referenceChars)]
	}

	return fmt.Sprintf("Q-%s", string(b)), nil
}
