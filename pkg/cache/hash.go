package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a report cache key of the form "prefix:hex". The parts
// (graph fingerprint plus the query options) are JSON-encoded and hashed,
// so any change to the structure or the query yields a distinct key. The
// full 256-bit digest is kept: report keys are long-lived and must not
// collide across scenario generations.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
// The file backend uses it to shard report entries into subdirectories.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
