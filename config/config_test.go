package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/config"
)

func TestParse_PlainAlphabet(t *testing.T) {
	a, err := config.Parse([]byte("symbols: [a, b]\n"))
	require.NoError(t, err)
	assert.Equal(t, []alphabet.Symbol{"a", "b"}, a.Symbols)
	assert.Nil(t, a.Weights)
}

func TestParse_WeightedAlphabet(t *testing.T) {
	a, err := config.Parse([]byte("symbols: [a, b]\nweights:\n  a: 1\n  b: -1\n"))
	require.NoError(t, err)
	w, err := a.Weight("a")
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	w, err = a.Weight("b")
	require.NoError(t, err)
	assert.Equal(t, -1, w)
}

func TestParse_EmptySymbols(t *testing.T) {
	_, err := config.Parse([]byte("symbols: []\n"))
	assert.ErrorIs(t, err, alphabet.ErrEmptyAlphabet)
}

func TestParse_WeightMissingSymbol(t *testing.T) {
	_, err := config.Parse([]byte("symbols: [a, b]\nweights:\n  a: 1\n"))
	assert.ErrorIs(t, err, alphabet.ErrWeightUndefined)
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alphabet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols: [a, b, c]\n"), 0o644))

	a, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, a.Symbols, 3)
}
