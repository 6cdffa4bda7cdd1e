package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePaymentReference returns a fresh correlation token for one checkout
// attempt. Callers still collision-check it against existing orders before
// use.
func GeneratePaymentReference() string {
	return "LSH-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:20])
}
