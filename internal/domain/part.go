package domain

import "strings"

// Part identifies the product being searched for. It is produced upstream
// (typically by the part-identifier service) and never mutated by the pipeline.
type Part struct {
	Name     string
	Category string // may be empty when the identifier could not classify
	Brand    string
}

// Signature returns a normalized identity string used for cache keys.
func (p Part) Signature() string {
	fields := []string{p.Name, p.Category, p.Brand}
	for i, f := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return strings.Join(fields, "|")
}

// Describe returns a human-readable description for oracle prompts.
func (p Part) Describe() string {
	desc := strings.TrimSpace(p.Name)
	if p.Brand != "" {
		desc = strings.TrimSpace(p.Brand) + " " + desc
	}
	if p.Category != "" {
		desc += " (" + strings.TrimSpace(p.Category) + ")"
	}
	return desc
}
