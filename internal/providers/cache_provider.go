package providers

import (
	"donosync/internal/structures"
	"time"

	"github.com/coocood/freecache"
	"github.com/dustin/go-humanize"
)

// CacheProviderInterface caches encoded API responses.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	EntryCount() int64
}

type CacheProvider struct {
	cache  *freecache.Cache
	ttl    int
	logger Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size << 20
	ttl := responseTTL(conf.Spotlight.Duration)
	logger.Infof(TypeApp, "Response cache: %s, TTL=%ds", humanize.IBytes(uint64(sizeBytes)), ttl)

	return &CacheProvider{
		cache:  freecache.NewCache(sizeBytes),
		ttl:    ttl,
		logger: logger,
	}
}

// responseTTL outlives one spotlight window. Keys carry the session version,
// so the TTL only bounds how long superseded versions stay around.
func responseTTL(spotlight time.Duration) int {
	return max(int(spotlight.Seconds()), 1) + 1
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores value under key. Entries larger than 1/1024 of the cache are
// rejected by freecache and only logged.
func (c *CacheProvider) Set(key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.ttl); err != nil {
		c.logger.Debugf(TypeHTTP, "Not caching %s (%s): %s", key, humanize.Bytes(uint64(len(value))), err)
	}
}

func (c *CacheProvider) EntryCount() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) EntryCount() int64           { return 0 }
