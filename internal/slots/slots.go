// Package slots carries a small embedded catalog of bonus-buy slots and
// their providers. The catalog backs provider attribution in the analytics
// views and name suggestions when logging a buy; games outside the catalog
// simply attribute to "Unknown".
package slots

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"
)

//go:embed catalog.json
var catalogJSON []byte

// Slot is one catalog entry.
type Slot struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// UnknownProvider is returned for games the catalog does not know.
const UnknownProvider = "Unknown"

var (
	loadOnce sync.Once
	catalog  []Slot
	byName   map[string]string
)

func load() {
	loadOnce.Do(func() {
		if err := json.Unmarshal(catalogJSON, &catalog); err != nil {
			panic("slots: bad embedded catalog: " + err.Error())
		}
		byName = make(map[string]string, len(catalog))
		for _, s := range catalog {
			byName[strings.ToLower(s.Name)] = s.Provider
		}
	})
}

// Catalog returns all known slots in catalog order. Callers must not
// modify the returned slice.
func Catalog() []Slot {
	load()
	return catalog
}

// ProviderFor resolves a game name to its provider, matching
// case-insensitively on the exact name.
func ProviderFor(game string) string {
	load()
	if game == "" {
		return UnknownProvider
	}
	if p, ok := byName[strings.ToLower(strings.TrimSpace(game))]; ok {
		return p
	}
	return UnknownProvider
}

// Suggest returns up to limit catalog entries whose name contains the query,
// case-insensitively. An empty query suggests nothing.
func Suggest(query string, limit int) []Slot {
	load()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	var out []Slot
	for _, s := range catalog {
		if strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
