package hashutil

import (
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// DefaultHashAlgo is used for report digests.
const DefaultHashAlgo = HashAlgoBLAKE3

// HashBytes returns the hash of bytes as a hex string using the specified algorithm.
// Only "blake3" is supported.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoBLAKE3:
		return hashBytesBlake3(data), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// ShortDigest returns the first n hex characters of the digest, or the full
// digest when it is shorter than n.
func ShortDigest(digest string, n int) string {
	if n <= 0 || n >= len(digest) {
		return digest
	}
	return digest[:n]
}

func hashBytesBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
