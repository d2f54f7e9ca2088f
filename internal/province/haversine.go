package province

import "math"

const earthRadiusKm = 6371.0

// 球面距离（Haversine），返回千米
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// 文档注释：最近邻线性扫描
// 背景：表规模约几十项，逐项计算距离即可；不建索引，保证并列时按表顺序取第一个。
// 返回：命中项、距离（千米）；表为空或距离无法计算（非有限输入）时 ok=false。
func Nearest(table []Coordinate, pt GeoPoint) (Coordinate, float64, bool) {
	var best Coordinate
	bestD := math.Inf(1)
	found := false
	for _, c := range table {
		d := Haversine(pt.Latitude, pt.Longitude, c.Latitude, c.Longitude)
		// 严格小于：并列时保留先出现的项
		if d < bestD {
			bestD = d
			best = c
			found = true
		}
	}
	if !found {
		return Coordinate{}, 0, false
	}
	return best, bestD, true
}
