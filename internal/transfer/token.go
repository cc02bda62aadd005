package transfer

import (
	"crypto/rand"
	"encoding/hex"
)

const mutationIDBytes = 20

// NewMutationID returns a fresh hex-encoded client mutation id.
func NewMutationID() string {
	b := make([]byte, mutationIDBytes)
	// rand.Read never returns an error; it crashes the process instead.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
