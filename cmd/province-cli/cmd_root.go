package main

import (
	"os"
	"time"

	"province-api/internal/listing"
	"province-api/internal/logger"
	"province-api/internal/province"
	"province-api/internal/store"
	"province-api/internal/utils"

	"github.com/spf13/cobra"
)

var (
	flagSource   string
	flagPath     string
	flagEndpoint string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:     "province-cli",
	Short:   "印尼省份解析工具",
	Version: version,
	Long: `
province-cli 使用与服务相同的坐标表来源（static/file/db/remote）解析坐标所在省份，
并提供省名与 slug 的互转、坐标表入库与房源省名查看。
`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetupWriter(os.Stderr, flagLogLevel, os.Getenv("LOG_FORMAT"))
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSource, "source", utils.GetEnv("PROVINCE_TABLE_SOURCE", "static"), "坐标表来源：static|file|db|remote")
	pf.StringVar(&flagPath, "table", os.Getenv("PROVINCE_TABLE_PATH"), "file 来源的 JSON/GeoJSON 路径")
	pf.StringVar(&flagEndpoint, "listing-endpoint", os.Getenv("LISTING_ENDPOINT"), "房源数据接口地址")
	pf.StringVar(&flagLogLevel, "log-level", utils.GetEnv("LOG_LEVEL", "warn"), "日志级别")
}

// 文档注释：按命令行参数装配坐标表来源
// 返回：来源与清理函数（关闭数据库连接）。
func openProvider() (province.TableProvider, func(), error) {
	cleanup := func() {}
	var loader province.CoordinateLoader
	if flagSource == "db" {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			return nil, cleanup, err
		}
		if db != nil {
			st := store.AttachDB(db)
			loader = st
			cleanup = func() { _ = st.Close() }
		}
	}
	var names province.NameSource
	if flagEndpoint != "" {
		names = listingClient()
	}
	return province.SelectProvider(flagSource, flagPath, loader, names), cleanup, nil
}

func listingClient() *listing.Client {
	return listing.NewClient(flagEndpoint, time.Duration(utils.GetEnvAsInt("LISTING_TIMEOUT_S", 10))*time.Second)
}
