// Package address parses and validates Ethereum addresses, the
// `parseAddress` collaborator the EIP-712 encoder relies on for the
// "address" field type.
package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evmts/ethcodec/hash"
)

// Address is a 20-byte Ethereum account or contract address.
type Address [20]byte

// Zero is the zero address.
var Zero = Address{}

var (
	ErrInvalidFormat   = errors.New("address: not a 40 hex digit string")
	ErrInvalidChecksum = errors.New("address: EIP-55 checksum mismatch")
)

// Parse validates and decodes a hex address string. It accepts
// all-lowercase, all-uppercase, and mixed-case (EIP-55 checksummed)
// input; mixed-case input with an incorrect checksum is rejected.
func Parse(s string) (Address, error) {
	body := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(body) != 40 {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	raw, err := decodeHex(body)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var addr Address
	copy(addr[:], raw)

	if hasMixedCase(body) && checksum(addr) != body {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidChecksum, s)
	}

	return addr, nil
}

// FromBytes wraps a 20-byte slice as an Address.
func FromBytes(b []byte) (Address, error) {
	if len(b) != 20 {
		return Address{}, fmt.Errorf("%w: expected 20 bytes, got %d", ErrInvalidFormat, len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// Bytes returns the address's 20 raw bytes.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Zero
}

// Hex returns the EIP-55 checksummed, 0x-prefixed representation.
func (a Address) Hex() string {
	return "0x" + checksum(a)
}

// String implements fmt.Stringer using the checksummed form.
func (a Address) String() string {
	return a.Hex()
}

// checksum implements EIP-55: uppercase a lowercase hex nibble wherever
// the corresponding nibble of keccak256(lowercaseHex) is >= 8.
func checksum(a Address) string {
	lower := lowerHex(a[:])
	digest := hash.Keccak256([]byte(lower))

	out := make([]byte, 40)
	for i := 0; i < 40; i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' {
			var nibble byte
			if i%2 == 0 {
				nibble = digest[i/2] >> 4
			} else {
				nibble = digest[i/2] & 0x0f
			}
			if nibble >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return string(out)
}

func hasMixedCase(s string) bool {
	lower, upper := false, false
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'f':
			lower = true
		case c >= 'A' && c <= 'F':
			upper = true
		}
	}
	return lower && upper
}

func lowerHex(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[2*i] = digits[c>>4]
		out[2*i+1] = digits[c&0x0f]
	}
	return string(out)
}

func decodeHex(s string) ([]byte, error) {
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, err := hexNibble(s[2*i])
		if err != nil {
			return nil, err
		}
		lo, err := hexNibble(s[2*i+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
}
