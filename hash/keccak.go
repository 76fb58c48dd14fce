// Package hash exposes the Keccak-256 hash primitive used throughout the
// RLP and EIP-712 codecs.
//
// This is the original Keccak padding (0x01), not the NIST-standardized
// SHA3-256 (0x06 padding). Ethereum uses the former exclusively; mixing the
// two silently produces different, but equally plausible-looking, digests.
package hash

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Size is the length in bytes of a Keccak-256 digest.
const Size = 32

// Keccak256 hashes data and returns the 32-byte digest.
func Keccak256(data []byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}

// Keccak256Bytes hashes data and returns the digest as a newly allocated slice.
func Keccak256Bytes(data []byte) []byte {
	h := Keccak256(data)
	return h[:]
}

// Keccak256Concat hashes the concatenation of multiple byte slices without
// allocating an intermediate buffer for the whole input.
func Keccak256Concat(parts ...[]byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	copy(out[:], h.Sum(nil))
	return out
}

// Keccak256String hashes the raw UTF-8 bytes of s, with no length framing.
func Keccak256String(s string) [32]byte {
	return Keccak256([]byte(s))
}

// ToHex renders a digest as a lowercase, 0x-prefixed hex string.
func ToHex(digest [32]byte) string {
	return "0x" + hex.EncodeToString(digest[:])
}
