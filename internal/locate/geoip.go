package locate

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"province-api/internal/province"
)

// 文档注释：MaxMind GeoLite2-City 粗定位
// 背景：设备未上报坐标时按 IP 取城市级坐标作为最低精度定位。
// 约束：库中无坐标（经纬度均为 0 且无精度半径）视为无定位。
type GeoIPLocator struct {
	db cityReader
}

// cityReader：geoip2.Reader 的城市查询子集
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

func OpenGeoIP(path string) (*GeoIPLocator, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &GeoIPLocator{db: db}, nil
}

func (g *GeoIPLocator) Close() error { return g.db.Close() }

func (g *GeoIPLocator) LocateIP(ip string) (province.GeoPoint, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return province.GeoPoint{}, fmt.Errorf("bad ip %q", ip)
	}
	rec, err := g.db.City(parsed)
	if err != nil {
		return province.GeoPoint{}, err
	}
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 && rec.Location.AccuracyRadius == 0 {
		return province.GeoPoint{}, errors.Join(ErrNoFix, fmt.Errorf("ip %s has no coordinates", ip))
	}
	return province.GeoPoint{Latitude: rec.Location.Latitude, Longitude: rec.Location.Longitude}, nil
}
