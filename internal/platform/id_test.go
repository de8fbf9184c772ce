package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMaskedLabel_Length(t *testing.T) {
	assert.Len(t, NewMaskedLabel(24), 24)
	assert.Len(t, NewMaskedLabel(12), 12)
	// Requests below the floor are raised to it.
	assert.Len(t, NewMaskedLabel(0), MinMaskedLabelLength)
	assert.Len(t, NewMaskedLabel(3), MinMaskedLabelLength)
	assert.Len(t, NewMaskedLabel(-5), MinMaskedLabelLength)
}

func TestNewMaskedLabel_Charset(t *testing.T) {
	for i := 0; i < 50; i++ {
		label := NewMaskedLabel(DefaultMaskedLabelLength)
		for _, r := range label {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			assert.True(t, ok, "unexpected character %q in %q", r, label)
		}
	}
}

func TestNewMaskedLabel_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		label := NewMaskedLabel(DefaultMaskedLabelLength)
		assert.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
