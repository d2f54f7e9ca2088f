package province

// 文档注释：省级代表点与查询坐标的最小数据结构
// 背景：省份以单一代表点参与最近邻计算；不携带边界几何，保持常驻内存与快速判定。
// 约束：坐标为 WGS84 度数；表内名称唯一，纬度在 [-90,90]、经度在 [-180,180]。
type Coordinate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoPoint：调用方提供的设备坐标（WGS84）
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// 解析来源标记
const (
	SourceFastPath = "fast_path"
	SourceNearest  = "nearest"
	SourceDefault  = "default"
	SourceCache    = "cache"
)

// DefaultProvince：坐标表为空时的兜底省份
const DefaultProvince = "DKI Jakarta"

// 文档注释：一次解析的结果
// 背景：除省名外附带 slug 与距离，便于路由层直接拼接地区列表路径；Source 标识命中路径。
type Resolution struct {
	Province   string  `json:"province"`
	Slug       string  `json:"slug"`
	DistanceKm float64 `json:"distance_km"`
	Source     string  `json:"source"`
}
