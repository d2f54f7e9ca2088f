package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"province-api/internal/logger"
	"province-api/internal/migrate"
	"province-api/internal/province"
	"province-api/internal/store"
	"province-api/internal/utils"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "将坐标表写入数据库",
	Long: `建表后按顺序 upsert 坐标表；默认写入内置 34 省表，--file 指定 JSON/GeoJSON 时写入文件内容。
写入前校验名称唯一与经纬度范围。`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		table := province.StaticTable()
		if seedFile != "" {
			t, err := province.LoadTableFile(seedFile)
			if err != nil {
				return err
			}
			table = t
		}
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			return err
		}
		if db == nil {
			return errors.New("PG_HOST not set")
		}
		st := store.AttachDB(db)
		defer st.Close()
		if err := migrate.EnsureSchema(ctx, db); err != nil {
			return err
		}
		if err := st.UpsertCoordinates(ctx, table); err != nil {
			return err
		}
		logger.L().Info("seed_done", "entries", len(table))
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d provinces\n", len(table))
		return nil
	},
}

var listingCmd = &cobra.Command{
	Use:   "listing",
	Short: "查看房源数据中出现的省名及匹配情况",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagEndpoint == "" {
			return errors.New("--listing-endpoint or LISTING_ENDPOINT required")
		}
		names, err := listingClient().Provinces(cmd.Context())
		if err != nil {
			return err
		}
		derived := province.DeriveTable(names, province.StaticTable())
		known := make(map[string]struct{}, len(derived))
		for _, c := range derived {
			known[province.Slug(c.Name)] = struct{}{}
		}
		type row struct {
			Name    string `json:"name"`
			Slug    string `json:"slug"`
			Matched bool   `json:"matched"`
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, n := range names {
			s := province.Slug(n)
			_, ok := known[s]
			if err := enc.Encode(row{Name: n, Slug: s, Matched: ok}); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON 数组或 GeoJSON 点要素文件")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listingCmd)
}
