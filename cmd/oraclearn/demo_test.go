package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oraclearn/oraclearn/alphabet"
)

func w(symbols ...string) alphabet.Word {
	out := make(alphabet.Word, len(symbols))
	for i, s := range symbols {
		out[i] = alphabet.Symbol(s)
	}
	return out
}

func TestIsAnBn(t *testing.T) {
	assert.True(t, isAnBn(w()))
	assert.True(t, isAnBn(w("a", "b")))
	assert.True(t, isAnBn(w("a", "a", "b", "b")))
	assert.False(t, isAnBn(w("a", "a", "b")))
	assert.False(t, isAnBn(w("b", "a")))
}

func TestIsAnCBn(t *testing.T) {
	assert.True(t, isAnCBn(w()))
	assert.True(t, isAnCBn(w("a", "b")))
	assert.True(t, isAnCBn(w("a", "c", "c", "b")))
	assert.True(t, isAnCBn(w("a", "a", "c", "b", "b")))
	assert.False(t, isAnCBn(w("a", "a", "c", "b")))
}

func TestIsXABnYCDnZ(t *testing.T) {
	assert.True(t, isXABnYCDnZ(w("x", "y", "z")))
	assert.True(t, isXABnYCDnZ(w("x", "a", "b", "y", "z")))
	assert.True(t, isXABnYCDnZ(w("x", "a", "a", "b", "b", "y", "c", "d", "z")))
	assert.False(t, isXABnYCDnZ(w("x", "a", "b", "z")))
	assert.False(t, isXABnYCDnZ(w("a", "b", "x", "y", "z")))
}
