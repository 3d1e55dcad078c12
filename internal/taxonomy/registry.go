package taxonomy

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Registry is the authoritative, ordered category set. It is immutable
// after construction and safe for unlimited concurrent readers.
type Registry struct {
	categories []Category
	index      map[string]int
	exclusions []Exclusion
}

type registryFile struct {
	Categories []Category  `toml:"categories"`
	Exclusions []Exclusion `toml:"exclusions"`
}

// New builds and validates a registry from an ordered category list and
// optional exclusion pairs. Validation fails fast on duplicate codes,
// out-of-range levels, or exclusions referencing unknown codes.
func New(categories []Category, exclusions []Exclusion) (*Registry, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("registry requires at least one category")
	}

	index := make(map[string]int, len(categories))
	for i, c := range categories {
		if c.Code == "" {
			return nil, fmt.Errorf("category %d: code required", i)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("category %s: name required", c.Code)
		}
		if !c.Level.Valid() {
			return nil, fmt.Errorf("category %s: level %d out of range [1,4]", c.Code, c.Level)
		}
		if _, exists := index[c.Code]; exists {
			return nil, fmt.Errorf("duplicate category code: %s", c.Code)
		}
		index[c.Code] = i
	}

	for _, x := range exclusions {
		if _, ok := index[x.First]; !ok {
			return nil, fmt.Errorf("exclusion references unknown category: %s", x.First)
		}
		if _, ok := index[x.Second]; !ok {
			return nil, fmt.Errorf("exclusion references unknown category: %s", x.Second)
		}
		if x.First == x.Second {
			return nil, fmt.Errorf("exclusion pairs category %s with itself", x.First)
		}
	}

	return &Registry{
		categories: categories,
		index:      index,
		exclusions: exclusions,
	}, nil
}

// Load reads a registry from a TOML taxonomy file. An empty path loads
// the embedded HFACS 8.0 default set.
func Load(path string) (*Registry, error) {
	if path == "" {
		return New(defaultCategories(), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}

	reg, err := New(file.Categories, file.Exclusions)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}

	return reg, nil
}

// All returns the ordered category list. Callers must treat the slice as
// read-only.
func (r *Registry) All() []Category {
	return r.categories
}

// Get returns the category with the given code, or ErrCategoryNotFound.
func (r *Registry) Get(code string) (Category, error) {
	i, ok := r.index[code]
	if !ok {
		return Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, code)
	}
	return r.categories[i], nil
}

// Contains reports whether the code is registered.
func (r *Registry) Contains(code string) bool {
	_, ok := r.index[code]
	return ok
}

// Len returns the number of registered categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

// ByLevel returns the registered categories at the given level, in
// registry order.
func (r *Registry) ByLevel(level Level) []Category {
	var out []Category
	for _, c := range r.categories {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

// Exclusions returns the configured mutually-exclusive category pairs.
func (r *Registry) Exclusions() []Exclusion {
	return r.exclusions
}
