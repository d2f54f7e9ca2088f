package province

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticResolver(fast bool) *Resolver {
	return NewResolver(NewStaticProvider(), Config{FastPath: fast, CacheSize: 64, CacheTTL: time.Minute})
}

func TestHaversine(t *testing.T) {
	assert.Zero(t, Haversine(-6.2088, 106.8456, -6.2088, 106.8456))
	assert.InDelta(t, 939.889, Haversine(-6.2088, 106.8456, -8.3405, 115.0920), 0.01)
	// 对称
	assert.InDelta(t, Haversine(1, 2, 3, 4), Haversine(3, 4, 1, 2), 1e-9)
	// 赤道一度约 111.19km
	assert.InDelta(t, 111.195, Haversine(0, 0, 0, 1), 0.01)
}

func TestNearestTieBreakKeepsFirst(t *testing.T) {
	table := []Coordinate{
		{Name: "A", Latitude: 1, Longitude: 1},
		{Name: "B", Latitude: 1, Longitude: 1},
		{Name: "C", Latitude: 5, Longitude: 5},
	}
	c, d, ok := Nearest(table, GeoPoint{Latitude: 1, Longitude: 1})
	require.True(t, ok)
	assert.Equal(t, "A", c.Name)
	assert.Zero(t, d)

	_, _, ok = Nearest(nil, GeoPoint{})
	assert.False(t, ok)
	_, _, ok = Nearest(table, GeoPoint{Latitude: math.NaN()})
	assert.False(t, ok)
}

func TestResolveScenarios(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		pt       GeoPoint
		province string
		slug     string
	}{
		{"jakarta", GeoPoint{Latitude: -6.2088, Longitude: 106.8456}, "DKI Jakarta", "dki-jakarta"},
		{"bali", GeoPoint{Latitude: -8.3405, Longitude: 115.0920}, "Bali", "bali"},
		{"gulf of guinea", GeoPoint{Latitude: 0, Longitude: 0}, "Aceh", "aceh"},
		{"bandung", GeoPoint{Latitude: -6.9175, Longitude: 107.6191}, "Jawa Barat", "jawa-barat"},
		{"surabaya", GeoPoint{Latitude: -7.2575, Longitude: 112.7521}, "Jawa Timur", "jawa-timur"},
		{"medan", GeoPoint{Latitude: 3.5952, Longitude: 98.6722}, "Sumatera Utara", "sumatera-utara"},
		{"serang", GeoPoint{Latitude: -6.12, Longitude: 106.15}, "Banten", "banten"},
	}
	for _, fast := range []bool{true, false} {
		r := newStaticResolver(fast)
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				got := r.Resolve(ctx, tc.pt)
				assert.Equal(t, tc.province, got.Province)
				assert.Equal(t, tc.slug, got.Slug)
				assert.Equal(t, tc.province, r.ResolveProvince(ctx, tc.pt))
			})
		}
	}
}

func TestResolveFastPathOverridesNearest(t *testing.T) {
	ctx := context.Background()
	bogor := GeoPoint{Latitude: -6.595, Longitude: 106.816}

	got := newStaticResolver(true).Resolve(ctx, bogor)
	assert.Equal(t, "Jawa Barat", got.Province)
	assert.Equal(t, SourceFastPath, got.Source)

	got = newStaticResolver(false).Resolve(ctx, bogor)
	assert.Equal(t, "DKI Jakarta", got.Province)
	assert.Equal(t, SourceNearest, got.Source)
	assert.InDelta(t, 43.07, got.DistanceKm, 0.05)
}

func TestResolveEveryEntryResolvesToItself(t *testing.T) {
	ctx := context.Background()
	for _, fast := range []bool{true, false} {
		r := newStaticResolver(fast)
		for _, c := range StaticTable() {
			got := r.Resolve(ctx, GeoPoint{Latitude: c.Latitude, Longitude: c.Longitude})
			assert.Equal(t, c.Name, got.Province, "fast=%v", fast)
			assert.InDelta(t, 0, got.DistanceKm, 1e-9)
		}
	}
}

func TestResolveEmptyTableFallsBack(t *testing.T) {
	r := NewResolver(NewFixedProvider(nil), Config{FastPath: true})
	for _, pt := range []GeoPoint{{}, {Latitude: -8.3405, Longitude: 115.092}, {Latitude: 89, Longitude: -179}} {
		got := r.Resolve(context.Background(), pt)
		assert.Equal(t, "DKI Jakarta", got.Province)
		assert.Equal(t, "dki-jakarta", got.Slug)
		assert.Equal(t, SourceDefault, got.Source)
	}
}

func TestResolveNonFinite(t *testing.T) {
	r := newStaticResolver(true)
	got := r.Resolve(context.Background(), GeoPoint{Latitude: math.NaN(), Longitude: 1})
	assert.Equal(t, DefaultProvince, got.Province)
	got = r.Resolve(context.Background(), GeoPoint{Latitude: 1, Longitude: math.Inf(-1)})
	assert.Equal(t, DefaultProvince, got.Province)
}

func TestResolveResultAlwaysInTableAndDeterministic(t *testing.T) {
	ctx := context.Background()
	names := map[string]struct{}{}
	for _, c := range StaticTable() {
		names[c.Name] = struct{}{}
	}
	cached := newStaticResolver(true)
	uncached := NewResolver(NewStaticProvider(), Config{FastPath: true})
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		pt := GeoPoint{Latitude: rng.Float64()*180 - 90, Longitude: rng.Float64()*360 - 180}
		a := cached.Resolve(ctx, pt)
		b := cached.Resolve(ctx, pt)
		c := uncached.Resolve(ctx, pt)
		assert.Equal(t, a, b)
		assert.Equal(t, a.Province, c.Province)
		_, ok := names[a.Province]
		assert.True(t, ok, a.Province)
	}
}

func TestResolveCustomTableIgnoresMissingFastPathProvince(t *testing.T) {
	table := []Coordinate{
		{Name: "Utara", Latitude: 10, Longitude: 106.8},
		{Name: "Selatan", Latitude: -10, Longitude: 106.8},
	}
	r := NewResolver(NewFixedProvider(table), Config{FastPath: true})
	got := r.Resolve(context.Background(), GeoPoint{Latitude: -6.2088, Longitude: 106.8456})
	assert.Equal(t, "Selatan", got.Province)
	assert.Equal(t, SourceNearest, got.Source)
}

func TestResolverPurge(t *testing.T) {
	r := newStaticResolver(true)
	r.Resolve(context.Background(), GeoPoint{Latitude: 1, Longitude: 1})
	assert.Equal(t, 1, r.cache.Len())
	r.Purge()
	assert.Zero(t, r.cache.Len())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PROVINCE_FAST_PATH", "false")
	t.Setenv("PROVINCE_CACHE_SIZE", "10")
	t.Setenv("PROVINCE_CACHE_TTL_S", "5")
	cfg := ConfigFromEnv()
	assert.False(t, cfg.FastPath)
	assert.Equal(t, 10, cfg.CacheSize)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
}
