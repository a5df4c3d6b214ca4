// Package gyms serves the read-only campus gym reference data.
package gyms

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

//go:embed gyms.yaml
var defaultGyms []byte

// Catalog is an ordered, immutable list of gyms.
type Catalog struct {
	gyms []internal.Gym
}

// Default returns the built-in campus catalog.
func Default() *Catalog {
	c, err := Parse(defaultGyms)
	if err != nil {
		panic(fmt.Sprintf("gyms: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gyms: reading %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var gyms []internal.Gym
	if err := yaml.Unmarshal(data, &gyms); err != nil {
		return nil, fmt.Errorf("gyms: decoding catalog: %w", err)
	}
	seen := make(map[string]bool, len(gyms))
	for i, g := range gyms {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return nil, fmt.Errorf("gyms: entry %d has no name", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("gyms: duplicate gym %q", name)
		}
		seen[key] = true
		gyms[i].Name = name
	}
	if len(gyms) == 0 {
		return nil, errors.New("gyms: catalog is empty")
	}
	return &Catalog{gyms: gyms}, nil
}

// All returns a copy of the catalog in file order.
func (c *Catalog) All() []internal.Gym {
	out := make([]internal.Gym, len(c.gyms))
	for i, g := range c.gyms {
		g.Facilities = append([]string(nil), g.Facilities...)
		out[i] = g
	}
	return out
}

// Find looks a gym up by name, ignoring case.
func (c *Catalog) Find(name string) (internal.Gym, bool) {
	name = strings.TrimSpace(name)
	for _, g := range c.gyms {
		if strings.EqualFold(g.Name, name) {
			g.Facilities = append([]string(nil), g.Facilities...)
			return g, true
		}
	}
	return internal.Gym{}, false
}

// Match returns the first gym whose name appears in text, ignoring case.
func (c *Catalog) Match(text string) (internal.Gym, bool) {
	lower := strings.ToLower(text)
	for _, g := range c.gyms {
		if strings.Contains(lower, strings.ToLower(g.Name)) {
			g.Facilities = append([]string(nil), g.Facilities...)
			return g, true
		}
	}
	return internal.Gym{}, false
}
