package province

import (
	"strings"

	"province-api/internal/logger"
)

// 文档注释：按名称选择坐标表来源（PROVINCE_TABLE_SOURCE）
// 背景：入口与 CLI 共用；依赖缺失（无数据库、无房源端点、无文件路径）时回退静态表并记录原因。
// 约束：未知名称按 static 处理。
func SelectProvider(source, path string, loader CoordinateLoader, names NameSource) TableProvider {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "file":
		if path != "" {
			return NewFileProvider(path)
		}
		logger.L().Info("province_source_fallback", "source", source, "reason", "no_path")
	case "db":
		if loader != nil {
			return NewDBProvider(loader)
		}
		logger.L().Info("province_source_fallback", "source", source, "reason", "no_db")
	case "remote":
		if names != nil {
			return NewRemoteProvider(names)
		}
		logger.L().Info("province_source_fallback", "source", source, "reason", "no_listing_endpoint")
	case "", "static":
	default:
		logger.L().Info("province_source_unknown", "source", source)
	}
	return NewStaticProvider()
}
