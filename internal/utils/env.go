package utils

import (
	"os"
	"strconv"
	"strings"
)

// GetEnv：读取环境变量，未设置时返回默认值
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt：整数型环境变量，解析失败时回退默认值
func GetEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsFloat：浮点型环境变量，解析失败时回退默认值
func GetEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(GetEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsBool：布尔型环境变量，仅识别 true/false/1/0
func GetEnvAsBool(key string, fallback bool) bool {
	switch strings.ToLower(GetEnv(key, "")) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return fallback
}
