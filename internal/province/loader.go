package province

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// 文档注释：从文件加载坐标表
// 背景：支持两种格式：[{name,latitude,longitude}] 数组，或 Point 要素组成的 GeoJSON FeatureCollection（properties.province 或 properties.name 为省名）。
// 约束：GeoJSON 坐标顺序为 [lng, lat]；非 Point 几何忽略。
func LoadTableFile(path string) ([]Coordinate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTable(b)
}

func ParseTable(b []byte) ([]Coordinate, error) {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var out []Coordinate
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("decode coordinate array: %w", err)
		}
		return out, nil
	}
	var gj map[string]any
	if err := json.Unmarshal(b, &gj); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if !strings.EqualFold(getStr(gj, "type"), "featurecollection") {
		return nil, fmt.Errorf("unsupported document type %q", getStr(gj, "type"))
	}
	var out []Coordinate
	arr, _ := gj["features"].([]any)
	for _, it := range arr {
		f, ok := it.(map[string]any)
		if !ok {
			continue
		}
		var c Coordinate
		if p, ok := f["properties"].(map[string]any); ok {
			c.Name = getStr(p, "province")
			if c.Name == "" {
				c.Name = getStr(p, "name")
			}
		}
		g, ok := f["geometry"].(map[string]any)
		if !ok || !strings.EqualFold(getStr(g, "type"), "point") {
			continue
		}
		vv, ok := g["coordinates"].([]any)
		if !ok || len(vv) < 2 {
			continue
		}
		c.Longitude = toFloat(vv[0])
		c.Latitude = toFloat(vv[1])
		out = append(out, c)
	}
	return out, nil
}

func getStr(m map[string]any, k string) string {
	if v, ok := m[k].(string); ok {
		return v
	}
	return ""
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return 0
	}
}
