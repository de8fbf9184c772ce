package platform

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const maskedLabelAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// MinMaskedLabelLength is the floor for generated masked labels.
const MinMaskedLabelLength = 8

// DefaultMaskedLabelLength is used when no length is requested.
const DefaultMaskedLabelLength = 24

func NewID() string {
	return uuid.New().String()
}

// NewMaskedLabel returns a random DNS label of lowercase letters and digits.
// Lengths below MinMaskedLabelLength are raised to it.
func NewMaskedLabel(length int) string {
	if length < MinMaskedLabelLength {
		length = MinMaskedLabelLength
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = maskedLabelAlphabet[b[i]%byte(len(maskedLabelAlphabet))]
	}
	return string(b)
}
