package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePaymentReference(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		reference := GeneratePaymentReference()
		assert.True(t, strings.HasPrefix(reference, "LSH-"))
		assert.Len(t, reference, 24)
		assert.Equal(t, strings.ToUpper(reference), reference)
		assert.False(t, seen[reference], "references should not repeat")
		seen[reference] = true
	}
}
