package app

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"time"

	"github.com/coocood/freecache"
	"github.com/vmihailenco/msgpack/v5"

	"cutplan/internal/domain"
)

// DashboardCache memoizes computed dashboards. Keys digest the exact
// calculation inputs (profile settings, the as-of day, every log entry), so
// any change produces a new key and stale values simply age out.
type DashboardCache struct {
	cache *freecache.Cache
	ttl   time.Duration
}

// NewDashboardCache creates a cache of the given size in bytes with a TTL
// per entry.
func NewDashboardCache(sizeBytes int, ttl time.Duration) *DashboardCache {
	return &DashboardCache{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttl,
	}
}

// Get returns a previously memoized dashboard, if any.
func (c *DashboardCache) Get(key []byte) (*Dashboard, bool) {
	raw, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	var d Dashboard
	if err := msgpack.Unmarshal(raw, &d); err != nil {
		return nil, false
	}
	// msgpack decodes timestamps into the local zone; pin them back to UTC
	// so a cache hit serializes exactly like a fresh compute.
	d.AsOf = d.AsOf.UTC()
	for i := range d.Descent.Samples {
		d.Descent.Samples[i].Date = d.Descent.Samples[i].Date.UTC()
	}
	return &d, true
}

// Set memoizes a dashboard. Serialization failures drop the value silently;
// the cache is an optimization, never a source of truth.
func (c *DashboardCache) Set(key []byte, d *Dashboard) {
	raw, err := msgpack.Marshal(d)
	if err != nil {
		return
	}
	_ = c.cache.Set(key, raw, int(c.ttl.Seconds()))
}

func dashboardKey(p domain.AthleteProfile, asOf time.Time, entries []domain.WeightLogEntry) []byte {
	h := fnv.New64a()
	buf := make([]byte, 8)
	writeUint := func(v uint64) {
		binary.BigEndian.PutUint64(buf, v)
		_, _ = h.Write(buf)
	}

	_, _ = h.Write([]byte(p.Protocol))
	writeUint(uint64(p.WeightClass))
	writeUint(uint64(p.WeighInAt.Unix()))
	_, _ = h.Write([]byte(asOf.Format("2006-01-02")))
	for _, e := range entries {
		_, _ = h.Write([]byte(e.ID))
		_, _ = h.Write([]byte(e.Kind))
		writeUint(uint64(e.At.Unix()))
		writeUint(math.Float64bits(e.Weight))
	}
	return h.Sum(nil)
}
