// Package config loads an alphabet.Alphabet from a YAML file, mirroring
// funxy's internal/ext.Config: a yaml-tagged struct, unmarshal, then
// validate. Symbols lists Σ in iteration order; Weights, if present,
// supplies χ for the one-counter (stratified) learner; its absence
// means the file describes a plain (L*) alphabet.
package config
