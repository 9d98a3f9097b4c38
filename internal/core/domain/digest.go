package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestPrefix marks identities derived from content.
const DigestPrefix = "sha256:"

// ContentDigest returns the content identity of data. Equal bytes always
// give equal ids.
func ContentDigest(data []byte) AssetID {
	sum := sha256.Sum256(data)
	return AssetID(DigestPrefix + hex.EncodeToString(sum[:]))
}
