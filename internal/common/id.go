package common

import (
	"github.com/google/uuid"
)

// NewResultID generates a unique identifier for a categorization record.
func NewResultID() string {
	return uuid.New().String()
}
