package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oraclearn/oraclearn/alphabet"
)

// FileFormat is the on-disk shape of an alphabet configuration file:
//
//	symbols: [a, b]
//	weights: {a: 1, b: -1}
type FileFormat struct {
	// Symbols lists Σ in iteration order (tie-breaking in closure and
	// consistency witness search depends on this order).
	Symbols []string `yaml:"symbols"`
	// Weights supplies χ; omit entirely for a plain (L*) alphabet.
	Weights map[string]int `yaml:"weights,omitempty"`
}

// Load reads and parses an alphabet configuration file at path.
func Load(path string) (alphabet.Alphabet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return alphabet.Alphabet{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses alphabet configuration content from bytes.
func Parse(data []byte) (alphabet.Alphabet, error) {
	var ff FileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return alphabet.Alphabet{}, fmt.Errorf("config: parsing: %w", err)
	}
	if len(ff.Symbols) == 0 {
		return alphabet.Alphabet{}, fmt.Errorf("config: %w", alphabet.ErrEmptyAlphabet)
	}

	symbols := make([]alphabet.Symbol, len(ff.Symbols))
	for i, s := range ff.Symbols {
		symbols[i] = alphabet.Symbol(s)
	}

	if ff.Weights == nil {
		return alphabet.New(symbols...)
	}

	weights := make(map[alphabet.Symbol]int, len(ff.Weights))
	for sym, w := range ff.Weights {
		weights[alphabet.Symbol(sym)] = w
	}
	return alphabet.NewWeighted(symbols, weights)
}
