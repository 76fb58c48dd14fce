// Package eip712 implements EIP-712 typed structured data hashing: the
// canonical type-string construction, per-struct hashing, and top-level
// signing digest that Ethereum wallets use to produce a byte-exact hash
// of a JSON typed-data document prior to signing.
package eip712

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/evmts/ethcodec/abi"
	"github.com/evmts/ethcodec/address"
	"github.com/evmts/ethcodec/hash"
)

// ErrProcessing wraps every failure raised while building a canonical
// type string, encoding a field, or hashing a struct. It carries a
// human-readable description of what went wrong, per the produced
// surface's contract.
var ErrProcessing = errors.New("eip712: processing error")

func processingErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrProcessing, fmt.Sprintf(format, args...))
}

// FieldDecl is one field of a struct type declaration: its name and its
// Solidity type expression (an atomic type, a user-defined type name, or
// either followed by any number of "[]" / "[N]" suffixes).
type FieldDecl struct {
	Name string
	Type string
}

// TypedData is a complete EIP-712 document: the struct-type declarations
// referenced by the message, the name of the primary (top-level) type,
// and the domain and message payloads as generic JSON-shaped values
// (map[string]interface{}, produced by encoding/json or built by hand).
type TypedData struct {
	Types       map[string][]FieldDecl
	PrimaryType string
	Domain      map[string]interface{}
	Message     map[string]interface{}
}

var numericOrArray = regexp.MustCompile(`^(.*?)(\[(\d*)\])$`)

// EncodeType builds the canonical type string for typeName against the
// document's type declarations: typeName's own primary definition first,
// followed by the primaries of every other type transitively referenced
// from it, sorted lexicographically.
func EncodeType(types map[string][]FieldDecl, typeName string) (string, error) {
	if _, ok := types[typeName]; !ok {
		return "", processingErrorf("unknown type %q", typeName)
	}

	found := make(map[string]bool)
	var walk func(string) error
	walk = func(t string) error {
		if found[t] {
			return nil
		}
		found[t] = true
		fields, ok := types[t]
		if !ok {
			return processingErrorf("unknown type %q", t)
		}
		for _, f := range fields {
			base := stripArraySuffixes(f.Type)
			if _, isStruct := types[base]; isStruct {
				if err := walk(base); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(typeName); err != nil {
		return "", err
	}

	others := make([]string, 0, len(found)-1)
	for t := range found {
		if t != typeName {
			others = append(others, t)
		}
	}
	sort.Strings(others)

	var b strings.Builder
	writePrimary(&b, typeName, types[typeName])
	for _, t := range others {
		writePrimary(&b, t, types[t])
	}
	return b.String(), nil
}

func writePrimary(b *strings.Builder, name string, fields []FieldDecl) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Type)
		b.WriteByte(' ')
		b.WriteString(f.Name)
	}
	b.WriteByte(')')
}

// stripArraySuffixes removes every trailing "[]" or "[N]" from a type
// expression, leaving the element type. "uint256[][3]" becomes "uint256".
func stripArraySuffixes(t string) string {
	for {
		m := numericOrArray.FindStringSubmatch(t)
		if m == nil {
			return t
		}
		t = m[1]
	}
}

func isArrayType(t string) (base string, isArray bool) {
	m := numericOrArray.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TypeHash is keccak256 of the canonical type string.
func TypeHash(types map[string][]FieldDecl, typeName string) ([32]byte, error) {
	str, err := EncodeType(types, typeName)
	if err != nil {
		return [32]byte{}, err
	}
	return hash.Keccak256String(str), nil
}

// HashStruct computes keccak256(typeHash ‖ encodeData) for typeName
// applied to value.
func HashStruct(types map[string][]FieldDecl, typeName string, value map[string]interface{}) ([32]byte, error) {
	typeHash, err := TypeHash(types, typeName)
	if err != nil {
		return [32]byte{}, err
	}

	data, err := encodeData(types, typeName, value)
	if err != nil {
		return [32]byte{}, err
	}

	return hash.Keccak256Concat(typeHash[:], data), nil
}

// encodeData concatenates each declared field's 32-byte encoding, in
// declaration order. Fields declared on the type but absent from value
// are silently skipped, matching observed Ethereum tooling behavior.
func encodeData(types map[string][]FieldDecl, typeName string, value map[string]interface{}) ([]byte, error) {
	fields, ok := types[typeName]
	if !ok {
		return nil, processingErrorf("unknown type %q", typeName)
	}

	var out []byte
	for _, f := range fields {
		v, present := value[f.Name]
		if !present {
			continue
		}
		encoded, err := encodeField(types, f.Type, v)
		if err != nil {
			return nil, processingErrorf("field %s.%s: %v", typeName, f.Name, err)
		}
		out = append(out, encoded...)
	}
	return out, nil
}

// encodeField dispatches a single field value to its 32-byte (or, for
// dynamic types, digest) ABI encoding, per the EIP-712 field encoding
// table: structs recurse into HashStruct, arrays hash the concatenation
// of their element encodings, and the remaining atomic types delegate to
// the ABI encoder or are hashed directly.
func encodeField(types map[string][]FieldDecl, fieldType string, value interface{}) ([]byte, error) {
	if base, isArr := isArrayType(fieldType); isArr {
		items, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected array for type %s, got %T", fieldType, value)
		}
		var concatenated []byte
		for i, item := range items {
			encoded, err := encodeField(types, base, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			concatenated = append(concatenated, encoded...)
		}
		digest := hash.Keccak256(concatenated)
		return digest[:], nil
	}

	if _, isStruct := types[fieldType]; isStruct {
		obj, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected object for type %s, got %T", fieldType, value)
		}
		digest, err := HashStruct(types, fieldType, obj)
		if err != nil {
			return nil, err
		}
		return digest[:], nil
	}

	switch fieldType {
	case "string":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		digest := hash.Keccak256String(s)
		return digest[:], nil

	case "bytes":
		raw, err := decodeDynamicHex(value)
		if err != nil {
			return nil, err
		}
		digest := hash.Keccak256(raw)
		return digest[:], nil

	case "address":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected hex string for address, got %T", value)
		}
		addr, err := address.Parse(s)
		if err != nil {
			return nil, err
		}
		var padded [32]byte
		copy(padded[12:], addr.Bytes())
		return padded[:], nil

	case "bool":
		out, err := abi.Encode("bool", value)
		if err != nil {
			return nil, err
		}
		return out[:], nil
	}

	// bytesN, intN, uintN: delegate width parsing and encoding to the
	// ABI encoder, which carries the canonical regex for these names.
	out, err := abi.Encode(fieldType, value)
	if err != nil {
		return nil, err
	}
	return out[:], nil
}

// decodeDynamicHex accepts either a 0x-prefixed hex string or a raw byte
// slice for the "bytes" field type.
func decodeDynamicHex(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		s := strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
		if len(s)%2 != 0 {
			return nil, fmt.Errorf("odd-length hex string %q", v)
		}
		out := make([]byte, len(s)/2)
		for i := range out {
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
	default:
		return nil, fmt.Errorf("expected hex string or bytes, got %T", value)
	}
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

// Digest computes the final EIP-712 signing hash:
// keccak256(0x19 ‖ 0x01 ‖ hashStruct("EIP712Domain", domain) ‖ hashStruct(primaryType, message)).
func Digest(td TypedData) ([32]byte, error) {
	if _, ok := td.Types["EIP712Domain"]; !ok {
		return [32]byte{}, processingErrorf("types is missing required EIP712Domain declaration")
	}
	if _, ok := td.Types[td.PrimaryType]; !ok {
		return [32]byte{}, processingErrorf("types is missing primary type %q", td.PrimaryType)
	}

	domainHash, err := HashStruct(td.Types, "EIP712Domain", td.Domain)
	if err != nil {
		return [32]byte{}, err
	}

	messageHash, err := HashStruct(td.Types, td.PrimaryType, td.Message)
	if err != nil {
		return [32]byte{}, err
	}

	prefix := []byte{0x19, 0x01}
	return hash.Keccak256Concat(prefix, domainHash[:], messageHash[:]), nil
}
