// Package abi implements Ethereum's 32-byte-padded ABI encoding for the
// fixed-width scalar types needed by the EIP-712 field encoder: bool,
// signed and unsigned integers, address, and fixed-size byte arrays.
//
// It intentionally covers only the "single value, 32 bytes out" subset of
// the full Contract ABI (no tuples, no dynamic types, no offset tables) —
// that is all a typed-data struct field ever needs.
package abi

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned by Encode.
var (
	ErrUnsupportedType = errors.New("abi: unsupported type")
	ErrInvalidValue    = errors.New("abi: value does not match type")
	ErrOutOfRange      = errors.New("abi: value out of range for type")
	ErrInvalidWidth    = errors.New("abi: invalid bit or byte width")
)

var numericType = regexp.MustCompile(`^(u?)int(\d*)$`)
var bytesType = regexp.MustCompile(`^bytes(\d+)$`)

// Encode produces the canonical 32-byte ABI encoding for a fixed-width
// scalar named by typ: "bool", "intN"/"uintN" (N a multiple of 8 in
// 8..256, defaulting to 256 when omitted), "address", or "bytesN"
// (1 <= N <= 32).
//
// Numeric and address values are accepted as decimal/hex strings so
// callers working from JSON never have to pick a native Go numeric type.
func Encode(typ string, value interface{}) ([32]byte, error) {
	switch {
	case typ == "bool":
		return encodeBool(value)
	case typ == "address":
		return encodeAddress(value)
	}

	if m := numericType.FindStringSubmatch(typ); m != nil {
		signed := m[1] == ""
		width := 256
		if m[2] != "" {
			w, err := strconv.Atoi(m[2])
			if err != nil {
				return [32]byte{}, fmt.Errorf("%w: %s", ErrInvalidWidth, typ)
			}
			width = w
		}
		if width <= 0 || width > 256 || width%8 != 0 {
			return [32]byte{}, fmt.Errorf("%w: %s", ErrInvalidWidth, typ)
		}
		return encodeInt(value, width, signed)
	}

	if m := bytesType.FindStringSubmatch(typ); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > 32 {
			return [32]byte{}, fmt.Errorf("%w: %s", ErrInvalidWidth, typ)
		}
		return encodeFixedBytes(value, n)
	}

	return [32]byte{}, fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
}

func encodeBool(value interface{}) ([32]byte, error) {
	var out [32]byte
	switch v := value.(type) {
	case bool:
		if v {
			out[31] = 1
		}
		return out, nil
	case string:
		switch v {
		case "true":
			out[31] = 1
			return out, nil
		case "false":
			return out, nil
		}
	}
	return out, fmt.Errorf("%w: bool", ErrInvalidValue)
}

func encodeAddress(value interface{}) ([32]byte, error) {
	var out [32]byte
	s, ok := value.(string)
	if !ok {
		return out, fmt.Errorf("%w: address", ErrInvalidValue)
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 40 {
		return out, fmt.Errorf("%w: address must be 20 bytes", ErrInvalidValue)
	}
	raw, err := decodeHex(s)
	if err != nil {
		return out, fmt.Errorf("%w: address: %v", ErrInvalidValue, err)
	}
	copy(out[12:], raw)
	return out, nil
}

func encodeFixedBytes(value interface{}, n int) ([32]byte, error) {
	var out [32]byte
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		trimmed := strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
		b, err := decodeHex(trimmed)
		if err != nil {
			return out, fmt.Errorf("%w: bytes%d: %v", ErrInvalidValue, n, err)
		}
		raw = b
	default:
		return out, fmt.Errorf("%w: bytes%d", ErrInvalidValue, n)
	}
	if len(raw) > n {
		return out, fmt.Errorf("%w: bytes%d holds at most %d bytes, got %d", ErrOutOfRange, n, n, len(raw))
	}
	copy(out[:], raw) // right-padded: fixed bytes are left-aligned within the word
	return out, nil
}

// encodeInt ABI-encodes a signed or unsigned integer into 32 bytes,
// validating that it fits within width bits.
func encodeInt(value interface{}, width int, signed bool) ([32]byte, error) {
	var out [32]byte

	n, err := toBigInt(value)
	if err != nil {
		return out, err
	}

	if signed {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
		min := new(big.Int).Neg(limit)
		max := new(big.Int).Sub(limit, big.NewInt(1))
		if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
			return out, fmt.Errorf("%w: int%d", ErrOutOfRange, width)
		}
		twosComplement(&out, n)
		return out, nil
	}

	if n.Sign() < 0 {
		return out, fmt.Errorf("%w: uint%d cannot be negative", ErrOutOfRange, width)
	}
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
	if n.Cmp(max) > 0 {
		return out, fmt.Errorf("%w: uint%d", ErrOutOfRange, width)
	}
	n.FillBytes(out[:])
	return out, nil
}

func toBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
		if !ok {
			return nil, fmt.Errorf("%w: not a decimal integer: %q", ErrInvalidValue, v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unsupported numeric representation %T", ErrInvalidValue, value)
	}
}

// twosComplement writes n's 256-bit two's-complement representation into
// dest. big.Int stores magnitude and sign separately, so a negative value
// needs 2^256 + n rather than a raw byte copy.
func twosComplement(dest *[32]byte, n *big.Int) {
	if n.Sign() >= 0 {
		n.FillBytes(dest[:])
		return
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	mod.Add(mod, n)
	mod.FillBytes(dest[:])
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.New("odd-length hex string")
	}
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
