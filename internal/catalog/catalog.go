// Package catalog provides the entity reference table for inventory scanning.
//
// The catalog maps stable entity IDs to display names, entity kinds and
// optional icon template paths. It is loaded once from an embedded JSON
// table and is immutable afterwards, so lookups are safe from concurrent
// goroutines without locking.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

//go:embed entities.json
var embeddedEntities []byte

// Kind identifies the category an entity belongs to.
//
// The four kinds mirror the inventory screen's sections: passive items,
// weapons, tomes and playable characters.
type Kind string

const (
	KindItem      Kind = "item"
	KindWeapon    Kind = "weapon"
	KindTome      Kind = "tome"
	KindCharacter Kind = "character"
)

// Valid reports whether k is one of the four known entity kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindItem, KindWeapon, KindTome, KindCharacter:
		return true
	}
	return false
}

// Entity is a single catalog entry.
type Entity struct {
	ID   string `json:"id"`             // Stable slug, unique across all kinds
	Name string `json:"name"`           // Display name shown to the user
	Kind Kind   `json:"kind"`           // Entity category
	Icon string `json:"icon,omitempty"` // Template image path relative to the template dir
}

// Catalog is an immutable set of entities with lookup indexes.
//
// Build one with New or use Default for the embedded table. All methods
// are read-only and safe for concurrent use.
type Catalog struct {
	entities []Entity
	byID     map[string]Entity
	byName   map[string]Entity

	// matchOrder holds indexes into entities sorted by descending
	// normalized-name length, so "tome of embers" wins over "ember".
	matchOrder []int
}

// New builds a Catalog from a list of entities.
//
// Later entries with a duplicate ID are dropped. Entities with an invalid
// kind or an empty name are dropped as well.
func New(entities []Entity) *Catalog {
	c := &Catalog{
		byID:   make(map[string]Entity),
		byName: make(map[string]Entity),
	}
	for _, e := range entities {
		if e.ID == "" || e.Name == "" || !e.Kind.Valid() {
			continue
		}
		if _, dup := c.byID[e.ID]; dup {
			continue
		}
		c.entities = append(c.entities, e)
		c.byID[e.ID] = e
		c.byName[normalizeName(e.Name)] = e
	}
	c.matchOrder = make([]int, len(c.entities))
	for i := range c.matchOrder {
		c.matchOrder[i] = i
	}
	sort.SliceStable(c.matchOrder, func(a, b int) bool {
		na := normalizeName(c.entities[c.matchOrder[a]].Name)
		nb := normalizeName(c.entities[c.matchOrder[b]].Name)
		return len(na) > len(nb)
	})
	return c
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog parsed from the embedded entity table.
//
// Parsing happens once; subsequent calls return the cached catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		var entities []Entity
		if err := json.Unmarshal(embeddedEntities, &entities); err != nil {
			defaultErr = fmt.Errorf("failed to parse embedded entity table: %w", err)
			return
		}
		defaultCat = New(entities)
	})
	return defaultCat, defaultErr
}

// Lookup returns the entity with the given kind and ID.
func (c *Catalog) Lookup(kind Kind, id string) (Entity, bool) {
	e, ok := c.byID[id]
	if !ok || e.Kind != kind {
		return Entity{}, false
	}
	return e, true
}

// ByID returns the entity with the given ID regardless of kind.
func (c *Catalog) ByID(id string) (Entity, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// ByName returns the entity whose display name matches after
// normalization (case and punctuation insensitive).
func (c *Catalog) ByName(name string) (Entity, bool) {
	e, ok := c.byName[normalizeName(name)]
	return e, ok
}

// Match finds the catalog entity whose display name occurs inside the
// given text fragment.
//
// The text is normalized the same way as entity names, and candidates are
// tried longest name first so that multi-word names are preferred over
// their substrings. Names shorter than three normalized characters never
// match, which keeps noise fragments from binding to short IDs.
//
// Returns:
//   - the matched entity and true, or a zero Entity and false
func (c *Catalog) Match(text string) (Entity, bool) {
	norm := normalizeName(text)
	if norm == "" {
		return Entity{}, false
	}
	for _, idx := range c.matchOrder {
		e := c.entities[idx]
		name := normalizeName(e.Name)
		if len(name) < 3 {
			continue
		}
		if strings.Contains(norm, name) {
			return e, true
		}
	}
	return Entity{}, false
}

// Entities returns a copy of all catalog entries in table order.
func (c *Catalog) Entities() []Entity {
	out := make([]Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entities)
}

// normalizeName lowercases s and collapses every run of non-alphanumeric
// runes into a single space.
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		} else {
			space = true
		}
	}
	return b.String()
}
