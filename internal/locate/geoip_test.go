package locate

import (
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"province-api/internal/province"
)

type fakeCity struct {
	rec    *geoip2.City
	err    error
	lookup []string
}

func (f *fakeCity) City(ip net.IP) (*geoip2.City, error) {
	f.lookup = append(f.lookup, ip.String())
	return f.rec, f.err
}

func (f *fakeCity) Close() error { return nil }

func cityAt(lat, lng float64, radius uint16) *geoip2.City {
	rec := &geoip2.City{}
	rec.Location.Latitude = lat
	rec.Location.Longitude = lng
	rec.Location.AccuracyRadius = radius
	return rec
}

func TestGeoIPLocatorLocateIP(t *testing.T) {
	db := &fakeCity{rec: cityAt(-7.7956, 110.3695, 50)}
	g := &GeoIPLocator{db: db}
	pt, err := g.LocateIP("36.66.1.1")
	require.NoError(t, err)
	assert.Equal(t, province.GeoPoint{Latitude: -7.7956, Longitude: 110.3695}, pt)
	assert.Equal(t, []string{"36.66.1.1"}, db.lookup)
	assert.NoError(t, g.Close())
}

func TestGeoIPLocatorNoCoordinates(t *testing.T) {
	g := &GeoIPLocator{db: &fakeCity{rec: cityAt(0, 0, 0)}}
	_, err := g.LocateIP("10.0.0.1")
	assert.ErrorIs(t, err, ErrNoFix)

	// 赤道零点附近但带精度半径视为有效坐标
	g = &GeoIPLocator{db: &fakeCity{rec: cityAt(0, 0, 1000)}}
	pt, err := g.LocateIP("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, province.GeoPoint{}, pt)
}

func TestGeoIPLocatorErrors(t *testing.T) {
	db := &fakeCity{rec: cityAt(1, 1, 1)}
	_, err := (&GeoIPLocator{db: db}).LocateIP("not-an-ip")
	assert.Error(t, err)
	assert.Empty(t, db.lookup)

	boom := errors.New("corrupt database")
	_, err = (&GeoIPLocator{db: &fakeCity{err: boom}}).LocateIP("1.1.1.1")
	assert.ErrorIs(t, err, boom)
}

func TestAcquireWithGeoIPWithoutFix(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/province", nil)
	l := FromRequest(r, &GeoIPLocator{db: &fakeCity{rec: cityAt(0, 0, 0)}})
	_, err := Acquire(r.Context(), l)
	assert.ErrorIs(t, err, ErrLocationUnavailable)
	assert.ErrorIs(t, err, ErrNoFix)
}
