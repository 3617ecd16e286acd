package uuid

import (
	"github.com/google/uuid"
)

// NewString returns a new random (version 4) UUID string.
func NewString() string {
	return uuid.NewString()
}
