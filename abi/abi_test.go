package abi

import (
	"math/big"
	"testing"
)

func TestEncodeBool(t *testing.T) {
	got, err := Encode("bool", true)
	if err != nil {
		t.Fatal(err)
	}
	want := [32]byte{}
	want[31] = 1
	if got != want {
		t.Errorf("Encode(bool, true) = %x, want %x", got, want)
	}

	got, err = Encode("bool", false)
	if err != nil {
		t.Fatal(err)
	}
	if got != ([32]byte{}) {
		t.Errorf("Encode(bool, false) = %x, want all zero", got)
	}
}

func TestEncodeUint256(t *testing.T) {
	got, err := Encode("uint256", "1")
	if err != nil {
		t.Fatal(err)
	}
	want := [32]byte{}
	want[31] = 1
	if got != want {
		t.Errorf("Encode(uint256, 1) = %x, want %x", got, want)
	}
}

func TestEncodeUintDefaultWidth(t *testing.T) {
	// "uint" with no digits defaults to uint256.
	got, err := Encode("uint", "256")
	if err != nil {
		t.Fatal(err)
	}
	if got[31] != 0 || got[30] != 1 {
		t.Errorf("Encode(uint, 256) = %x, want value 256", got)
	}
}

func TestEncodeInt8Negative(t *testing.T) {
	got, err := Encode("int8", "-1")
	if err != nil {
		t.Fatal(err)
	}
	// -1 in two's complement is all 0xFF bytes.
	for i, b := range got {
		if b != 0xFF {
			t.Fatalf("Encode(int8, -1)[%d] = %x, want 0xff", i, b)
		}
	}
}

func TestEncodeInt8OutOfRange(t *testing.T) {
	if _, err := Encode("int8", "128"); err == nil {
		t.Error("expected error for int8 overflow, got nil")
	}
	if _, err := Encode("int8", "-129"); err == nil {
		t.Error("expected error for int8 underflow, got nil")
	}
}

func TestEncodeUintRejectsNegative(t *testing.T) {
	if _, err := Encode("uint256", "-1"); err == nil {
		t.Error("expected error encoding negative value as uint256")
	}
}

func TestEncodeIntMinAndMax(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	if _, err := Encode("int256", max.String()); err != nil {
		t.Errorf("expected int256 max to be valid, got %v", err)
	}
	min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	if _, err := Encode("int256", min.String()); err != nil {
		t.Errorf("expected int256 min to be valid, got %v", err)
	}
	overMax := new(big.Int).Add(max, big.NewInt(1))
	if _, err := Encode("int256", overMax.String()); err == nil {
		t.Error("expected int256 max+1 to overflow")
	}
}

func TestEncodeAddress(t *testing.T) {
	got, err := Encode("address", "0x0000000000000000000000000000000000000001")
	if err != nil {
		t.Fatal(err)
	}
	want := [32]byte{}
	want[31] = 1
	if got != want {
		t.Errorf("Encode(address) = %x, want %x", got, want)
	}
}

func TestEncodeAddressRejectsWrongLength(t *testing.T) {
	if _, err := Encode("address", "0x1234"); err == nil {
		t.Error("expected error for short address")
	}
}

func TestEncodeBytesNRightPadded(t *testing.T) {
	got, err := Encode("bytes1", "0xff")
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0xff {
		t.Errorf("Encode(bytes1, 0xff)[0] = %x, want 0xff", got[0])
	}
	for i := 1; i < 32; i++ {
		if got[i] != 0 {
			t.Errorf("Encode(bytes1, 0xff)[%d] = %x, want 0", i, got[i])
		}
	}
}

func TestEncodeBytesNTooLong(t *testing.T) {
	if _, err := Encode("bytes1", "0xffff"); err == nil {
		t.Error("expected error for bytes1 given 2 bytes of data")
	}
}

func TestEncodeUnsupportedType(t *testing.T) {
	if _, err := Encode("string", "hi"); err == nil {
		t.Error("expected error for unsupported type string")
	}
}
