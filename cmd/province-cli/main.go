// province-cli：坐标解析、slug 转换与坐标表维护的命令行工具
package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
