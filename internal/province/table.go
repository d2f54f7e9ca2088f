package province

import (
	"errors"
	"fmt"
	"math"
)

// 印尼 34 个省级行政区代表点（顺序即最近邻并列时的优先顺序）
var staticTable = []Coordinate{
	{Name: "Aceh", Latitude: 4.6951, Longitude: 96.7494},
	{Name: "Sumatera Utara", Latitude: 2.1154, Longitude: 99.5451},
	{Name: "Sumatera Barat", Latitude: -0.7399, Longitude: 100.8000},
	{Name: "Riau", Latitude: 0.2933, Longitude: 101.7068},
	{Name: "Kepulauan Riau", Latitude: 3.9457, Longitude: 108.1429},
	{Name: "Jambi", Latitude: -1.6101, Longitude: 103.6131},
	{Name: "Sumatera Selatan", Latitude: -3.3194, Longitude: 103.9144},
	{Name: "Kepulauan Bangka Belitung", Latitude: -2.7411, Longitude: 106.4406},
	{Name: "Bengkulu", Latitude: -3.7928, Longitude: 102.2608},
	{Name: "Lampung", Latitude: -4.5586, Longitude: 105.4068},
	{Name: "DKI Jakarta", Latitude: -6.2088, Longitude: 106.8456},
	{Name: "Jawa Barat", Latitude: -7.0909, Longitude: 107.6689},
	{Name: "Banten", Latitude: -6.4058, Longitude: 106.0640},
	{Name: "Jawa Tengah", Latitude: -7.1510, Longitude: 110.1403},
	{Name: "DI Yogyakarta", Latitude: -7.8754, Longitude: 110.4262},
	{Name: "Jawa Timur", Latitude: -7.5361, Longitude: 112.2384},
	{Name: "Bali", Latitude: -8.3405, Longitude: 115.0920},
	{Name: "Nusa Tenggara Barat", Latitude: -8.6529, Longitude: 117.3616},
	{Name: "Nusa Tenggara Timur", Latitude: -8.6574, Longitude: 121.0794},
	{Name: "Kalimantan Barat", Latitude: -0.2788, Longitude: 111.4753},
	{Name: "Kalimantan Tengah", Latitude: -1.6815, Longitude: 113.3824},
	{Name: "Kalimantan Selatan", Latitude: -3.0926, Longitude: 115.2838},
	{Name: "Kalimantan Timur", Latitude: 0.5387, Longitude: 116.4194},
	{Name: "Kalimantan Utara", Latitude: 3.0731, Longitude: 116.0414},
	{Name: "Sulawesi Utara", Latitude: 0.6247, Longitude: 123.9750},
	{Name: "Gorontalo", Latitude: 0.6999, Longitude: 122.4467},
	{Name: "Sulawesi Tengah", Latitude: -1.4300, Longitude: 121.4456},
	{Name: "Sulawesi Barat", Latitude: -2.8441, Longitude: 119.2321},
	{Name: "Sulawesi Selatan", Latitude: -3.6688, Longitude: 119.9740},
	{Name: "Sulawesi Tenggara", Latitude: -4.1449, Longitude: 122.1746},
	{Name: "Maluku", Latitude: -3.2385, Longitude: 130.1453},
	{Name: "Maluku Utara", Latitude: 1.5709, Longitude: 127.8088},
	{Name: "Papua Barat", Latitude: -1.3361, Longitude: 133.1747},
	{Name: "Papua", Latitude: -4.2699, Longitude: 138.0804},
}

// StaticTable：返回内置表的副本，调用方可自由修改
func StaticTable() []Coordinate {
	return append([]Coordinate(nil), staticTable...)
}

var (
	ErrDuplicateName = errors.New("duplicate province name")
	ErrBadCoordinate = errors.New("coordinate out of range")
	ErrEmptyName     = errors.New("empty province name")
)

// 文档注释：坐标表校验
// 背景：文件/数据库来源的表在加载时校验一次，避免脏数据进入最近邻计算。
// 返回：首个违规项的错误，携带名称与下标。
func ValidateTable(table []Coordinate) error {
	seen := make(map[string]struct{}, len(table))
	for i, c := range table {
		if c.Name == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("entry %d %q: %w", i, c.Name, ErrDuplicateName)
		}
		seen[c.Name] = struct{}{}
		if !validLatLng(c.Latitude, c.Longitude) {
			return fmt.Errorf("entry %d %q (%f,%f): %w", i, c.Name, c.Latitude, c.Longitude, ErrBadCoordinate)
		}
	}
	return nil
}

func validLatLng(lat, lng float64) bool {
	if !finite(lat) || !finite(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// lookupByName：按名称精确查找
func lookupByName(table []Coordinate, name string) (Coordinate, bool) {
	for _, c := range table {
		if c.Name == name {
			return c, true
		}
	}
	return Coordinate{}, false
}
