package engine

import (
	"crypto/rand"
	"time"
)

const idLength = 20

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// newID produces a random entity id. Falls back to a time-derived id if
// the system randomness source fails.
func newID() string {
	b := make([]byte, idLength)
	randomBytes := make([]byte, idLength)
	if _, err := rand.Read(randomBytes); err != nil {
		seed := time.Now().UnixNano()
		for i := range b {
			b[i] = idCharset[int(seed>>uint(i%8))%len(idCharset)]
		}
		return string(b)
	}
	for i, rb := range randomBytes {
		b[i] = idCharset[int(rb)%len(idCharset)]
	}
	return string(b)
}
