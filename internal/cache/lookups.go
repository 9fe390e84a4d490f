package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dirm02/course-admin-api/internal/models"
)

const (
	keyUniversities = "universities"
	keyCities       = "cities"
	keyCountries    = "countries"
	keyCurrencies   = "currencies"
)

// LookupCache holds the four reference lists fetched from the upstream.
// Within a TTL window a cached list is immutable; a fresh fetch is the only
// way to refresh it.
type LookupCache struct {
	store *gocache.Cache
}

// NewLookupCache builds a lookup cache with the given list TTL.
func NewLookupCache(ttl, cleanupInterval time.Duration) *LookupCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &LookupCache{store: gocache.New(ttl, cleanupInterval)}
}

func (c *LookupCache) Universities() ([]models.University, bool) {
	if v, ok := c.store.Get(keyUniversities); ok {
		if list, ok := v.([]models.University); ok {
			return list, true
		}
	}
	return nil, false
}

func (c *LookupCache) SetUniversities(list []models.University) {
	c.store.SetDefault(keyUniversities, list)
}

func (c *LookupCache) Cities() ([]models.City, bool) {
	if v, ok := c.store.Get(keyCities); ok {
		if list, ok := v.([]models.City); ok {
			return list, true
		}
	}
	return nil, false
}

func (c *LookupCache) SetCities(list []models.City) {
	c.store.SetDefault(keyCities, list)
}

func (c *LookupCache) Countries() ([]models.Country, bool) {
	if v, ok := c.store.Get(keyCountries); ok {
		if list, ok := v.([]models.Country); ok {
			return list, true
		}
	}
	return nil, false
}

func (c *LookupCache) SetCountries(list []models.Country) {
	c.store.SetDefault(keyCountries, list)
}

func (c *LookupCache) Currencies() ([]models.Currency, bool) {
	if v, ok := c.store.Get(keyCurrencies); ok {
		if list, ok := v.([]models.Currency); ok {
			return list, true
		}
	}
	return nil, false
}

func (c *LookupCache) SetCurrencies(list []models.Currency) {
	c.store.SetDefault(keyCurrencies, list)
}

// Flush drops every cached list.
func (c *LookupCache) Flush() {
	c.store.Flush()
}
