package api

// 文档注释：对外返回结构
// 约束：字段稳定；新增字段需评估前端路由对 slug 的依赖。
type provinceResult struct {
	Province   string  `json:"province"`
	Slug       string  `json:"slug"`
	DistanceKm float64 `json:"distance_km"`
	Source     string  `json:"source"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type slugResult struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tableEntry struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type errorResult struct {
	Error string `json:"error"`
}
