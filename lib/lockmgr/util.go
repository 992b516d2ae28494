package lockmgr

import (
	"crypto/rand"
)

const (
	ownerIDBytes = 32 // 256 bit
)

// generateOwnerID creates a new unique owner ID
func generateOwnerID() ([]byte, error) {
	randomBytes := make([]byte, ownerIDBytes)
	_, err := rand.Read(randomBytes)
	return randomBytes, err
}
