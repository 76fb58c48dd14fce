package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeccak256KnownVectors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", ToHex(Keccak256(nil)))
	})

	t.Run("hello", func(t *testing.T) {
		assert.Equal(t, "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8", ToHex(Keccak256String("hello")))
	})
}

func TestKeccak256ConcatMatchesManualConcat(t *testing.T) {
	a := []byte("foo")
	b := []byte("bar")

	want := Keccak256(append(append([]byte{}, a...), b...))
	got := Keccak256Concat(a, b)

	require.Equal(t, want, got)
}

func TestKeccak256BytesLength(t *testing.T) {
	out := Keccak256Bytes([]byte("anything"))
	assert.Len(t, out, Size)
}
