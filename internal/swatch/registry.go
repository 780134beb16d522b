// Package swatch holds the catalog of folder color swatches. Colors are
// identified by name everywhere in the engine; the hex values only matter
// to rendering layers above it.
package swatch

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Swatch is one named color.
type Swatch struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

type catalog struct {
	Swatches []Swatch `yaml:"swatches"`
	Default  string   `yaml:"default"`
}

// Registry manages the set of valid folder colors.
type Registry struct {
	swatches map[string]Swatch
	order    []string
	def      string
	mu       sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded YAML catalog.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/swatches.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read swatch catalog: %w", err)
	}

	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swatch catalog: %w", err)
	}
	if len(c.Swatches) == 0 {
		return nil, fmt.Errorf("swatch catalog is empty")
	}

	r := &Registry{
		swatches: make(map[string]Swatch, len(c.Swatches)),
		def:      c.Default,
	}
	for _, s := range c.Swatches {
		r.swatches[s.Name] = s
		r.order = append(r.order, s.Name)
	}
	if _, ok := r.swatches[r.def]; !ok {
		return nil, fmt.Errorf("default swatch %q not in catalog", r.def)
	}

	return r, nil
}

// Valid reports whether name is a known swatch.
func (r *Registry) Valid(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.swatches[name]
	return ok
}

// Default returns the default swatch name.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def
}

// Names returns the swatch names in catalog order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the swatch for a name.
func (r *Registry) Get(name string) (Swatch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.swatches[name]
	return s, ok
}
