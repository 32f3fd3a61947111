package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new time-ordered UUIDv7 string, so ids of bids,
// obligations and penalties sort by creation in the database index
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
