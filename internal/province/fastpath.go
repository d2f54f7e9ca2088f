package province

// 文档注释：高密度区域的包围盒快速判定
// 背景：绝大多数查询集中在雅加达/万丹/西爪哇，命中矩形即可跳过全表扫描。
// 约束：手工调参的启发式，边界附近可能误判；按顺序检查，先命中先返回；仅当该省存在于当前表时生效。
type fastBox struct {
	Province string
	BBox     [4]float64 // minLng, minLat, maxLng, maxLat
}

var fastBoxes = []fastBox{
	{Province: "DKI Jakarta", BBox: [4]float64{106.68, -6.37, 106.98, -6.08}},
	{Province: "Banten", BBox: [4]float64{105.10, -7.00, 106.68, -5.80}},
	{Province: "Jawa Barat", BBox: [4]float64{106.40, -7.85, 108.80, -5.90}},
}

func inBBox(pt GeoPoint, b [4]float64) bool {
	return pt.Longitude >= b[0] && pt.Longitude <= b[2] && pt.Latitude >= b[1] && pt.Latitude <= b[3]
}

// fastPath：返回命中矩形对应的表项
func fastPath(table []Coordinate, pt GeoPoint) (Coordinate, bool) {
	for _, fb := range fastBoxes {
		if !inBBox(pt, fb.BBox) {
			continue
		}
		if c, ok := lookupByName(table, fb.Province); ok {
			return c, true
		}
	}
	return Coordinate{}, false
}
