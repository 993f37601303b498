// Package tokenizer estimates how much of a model's context window a
// document consumes, using tiktoken encodings with per-model correction
// multipliers.
package tokenizer

import (
	"fmt"
	"strings"
)

// defaultEncodingName is the tiktoken encoding used as the counting baseline.
const defaultEncodingName = "cl100k_base"

// Model is one entry of the static token-model catalog: a display name, the
// tiktoken encoding that approximates its tokenizer, a correction multiplier
// applied to the baseline count, and the model's context window.
type Model struct {
	Name             string
	TokenizerID      string
	Multiplier       float64
	MaxContextTokens int
}

// defaultModels is the built-in catalog consulted read-only at run time.
var defaultModels = []Model{
	{Name: "GPT-4", TokenizerID: defaultEncodingName, Multiplier: 1.00, MaxContextTokens: 8192},
	{Name: "GPT-3.5", TokenizerID: defaultEncodingName, Multiplier: 1.00, MaxContextTokens: 4096},
	{Name: "Claude", TokenizerID: defaultEncodingName, Multiplier: 0.80, MaxContextTokens: 100000},
	{Name: "GPT-O1", TokenizerID: defaultEncodingName, Multiplier: 1.10, MaxContextTokens: 4096},
	{Name: "Ollama-Llama2-7B", TokenizerID: defaultEncodingName, Multiplier: 0.90, MaxContextTokens: 4096},
	{Name: "Ollama-Llama2-13B", TokenizerID: defaultEncodingName, Multiplier: 0.85, MaxContextTokens: 4096},
}

// DefaultModels returns a fresh copy of the built-in model catalog.
func DefaultModels() []Model {
	models := make([]Model, len(defaultModels))
	copy(models, defaultModels)
	return models
}

// ModelsByName resolves the requested model names against the catalog,
// case-insensitively, preserving request order. An unknown name is a
// configuration error reported before any estimation runs.
func ModelsByName(names []string) ([]Model, error) {
	if len(names) == 0 {
		return DefaultModels(), nil
	}
	selected := make([]Model, 0, len(names))
	for _, requestedName := range names {
		found := false
		for _, model := range defaultModels {
			if strings.EqualFold(model.Name, requestedName) {
				selected = append(selected, model)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown token model %q", requestedName)
		}
	}
	return selected, nil
}
