package render

import (
	"sync"

	"github.com/nasiloldu/backend/seo"
)

// Cache keys are the contract with the client data layer: the client computes
// the same strings for its own fetches, so a key mismatch silently defeats
// rehydration. Keep these in sync with the client's query-key helpers.
const (
	KeyCategories    = "categories"
	KeyCountries     = "countries"
	KeyProfessions   = "professions"
	KeyPersonsRecent = "persons:recent"
	KeyPersonsPop    = "persons:popular"
	KeyPersonsToday  = "persons:today"
)

// KeyPerson is the detail-page cache key for a person slug.
func KeyPerson(slug string) string { return "person:" + slug }

// KeyPersonRelated is the related-persons cache key for a person slug.
func KeyPersonRelated(slug string) string { return "person:" + slug + ":related" }

// KeyCategory is the cache key for a category's own record.
func KeyCategory(slug string) string { return "category:" + slug }

// KeyCategoryPersons is the cache key for a category's person list.
func KeyCategoryPersons(slug string) string { return "category:" + slug + ":persons" }

// KeyCountry is the cache key for a country's own record.
func KeyCountry(slug string) string { return "country:" + slug }

// KeyCountryPersons is the cache key for a country's person list.
func KeyCountryPersons(slug string) string { return "country:" + slug + ":persons" }

// KeyProfession is the cache key for a profession's own record.
func KeyProfession(slug string) string { return "profession:" + slug }

// KeyProfessionPersons is the cache key for a profession's person list.
func KeyProfessionPersons(slug string) string { return "profession:" + slug + ":persons" }

// Cache is the request-scoped prefetch store. Each request gets its own
// instance, so there is no cross-request locking concern; the mutex only
// guards the concurrent prefetch goroutines of a single request.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
}

// NewCache creates an empty request-scoped cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Set stores a query result under its stable key. A nil value is meaningful:
// it records that the lookup ran and found nothing, so the client will not
// refetch it.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Get returns the stored value and whether the key was populated.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of populated keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the populated keys in unspecified order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Serialize renders the cache as a JSON object safe for raw embedding inside
// a script tag.
func (c *Cache) Serialize() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seo.MarshalJSONLD(c.entries)
}
