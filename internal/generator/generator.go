// Package generator holds the shared pieces of the generation layer: the
// result contract, document serialization, and the orchestrator that runs
// every enabled generator over one (config, model) pair.
package generator

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/apiforge/apiforge/internal/model"
)

// Target generates one artifact family from a validated model. Generate
// never panics across this boundary and never mutates its inputs.
type Target interface {
	Name() string
	Generate(cfg *model.ProjectConfig, m *model.DataModel) model.GenerationResult
}

// Failure builds a failed result with a single error message.
func Failure(format string, args ...any) model.GenerationResult {
	return model.GenerationResult{
		Success: false,
		Errors:  []string{fmt.Sprintf(format, args...)},
	}
}

// Recover converts a panic during document construction into a failed
// result. Generators install it with defer so internal failures surface as
// success=false instead of crossing the public boundary.
func Recover(result *model.GenerationResult) {
	if r := recover(); r != nil {
		result.Success = false
		result.Files = nil
		result.Errors = append(result.Errors, fmt.Sprintf("generation failed: %v", r))
	}
}

// RenderDocument serializes an in-memory spec document to JSON and YAML
// artifacts under docs/. Both encoders emit map keys in sorted order, so
// repeated generation is byte-identical.
func RenderDocument(doc map[string]any, baseName string) ([]model.GeneratedFile, error) {
	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s to JSON: %w", baseName, err)
	}
	yamlBytes, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s to YAML: %w", baseName, err)
	}
	return []model.GeneratedFile{
		{
			Path:    "docs/" + baseName + ".json",
			Content: string(jsonBytes) + "\n",
			Type:    model.FileDocumentation,
		},
		{
			Path:    "docs/" + baseName + ".yaml",
			Content: string(yamlBytes),
			Type:    model.FileDocumentation,
		},
	}, nil
}

// Run executes every target enabled by the config's feature toggles and
// returns the per-target results in execution order. A failing target never
// prevents the remaining targets from running.
func Run(cfg *model.ProjectConfig, m *model.DataModel, targets []Target) map[string]model.GenerationResult {
	results := make(map[string]model.GenerationResult, len(targets))
	for _, t := range targets {
		results[t.Name()] = t.Generate(cfg, m)
	}
	return results
}
