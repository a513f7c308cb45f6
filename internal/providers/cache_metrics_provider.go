package providers

import "donosync/internal/structures"

// InstrumentedCache reports hits and misses of the response cache.
type InstrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *InstrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *InstrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *InstrumentedCache) EntryCount() int64 {
	return c.inner.EntryCount()
}

// NewInstrumentedCacheProvider returns the response cache used by the API
// controller. A disabled cache is returned unwrapped so it reports no misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &InstrumentedCache{
		inner:   inner,
		metrics: metrics,
	}
}
