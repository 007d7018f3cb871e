package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// HashJSON fingerprints a request payload.
func HashJSON(jsonData any) (string, error) {
	data, err := json.Marshal(jsonData)
	if err != nil {
		return "", fmt.Errorf("hash payload: %w", err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}

// NewID returns a random UUID. If the system entropy source fails it falls
// back to a millisecond timestamp with a random hex suffix.
func NewID() string {
	return newIDFrom(nil, time.Now)
}

func newIDFrom(entropy io.Reader, now func() time.Time) string {
	var (
		id  uuid.UUID
		err error
	)
	if entropy == nil {
		id, err = uuid.NewRandom()
	} else {
		id, err = uuid.NewRandomFromReader(entropy)
	}
	if err == nil {
		return id.String()
	}
	return fmt.Sprintf("%d-%x", now().UnixMilli(), rand.Uint64())
}
