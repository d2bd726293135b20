package utils

import "github.com/google/uuid"

// GenerateID returns a new random identifier for requests and CLI runs.
func GenerateID() string {
	return uuid.NewString()
}
