package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key of the form kind:hash(parts...), where kind
// is the content kind ("layout" or "artifact") and parts are the
// identifying inputs: the content hash plus every option that changes the
// stored bytes. JSON encoding keeps the part order and types stable.
func hashKey(kind string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 content hash used to identify tree and layout
// bytes. Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
