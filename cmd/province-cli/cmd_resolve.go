package main

import (
	"encoding/json"
	"fmt"

	"province-api/internal/province"

	"github.com/spf13/cobra"
)

var (
	resolveLat    float64
	resolveLng    float64
	resolveNoFast bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "解析坐标所在省份",
	Long: `输出 JSON：省名、slug、到代表点的距离（千米）与命中路径。

$ province-cli resolve --lat -8.3405 --lng 115.092
{"province":"Bali","slug":"bali","distance_km":0,"source":"nearest"}
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, cleanup, err := openProvider()
		if err != nil {
			return err
		}
		defer cleanup()
		cfg := province.ConfigFromEnv()
		cfg.FastPath = cfg.FastPath && !resolveNoFast
		r := province.NewResolver(p, cfg)
		res := r.Resolve(cmd.Context(), province.GeoPoint{Latitude: resolveLat, Longitude: resolveLng})
		return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
	},
}

var slugCmd = &cobra.Command{
	Use:   "slug NAME...",
	Short: "省名转 slug",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range args {
			fmt.Fprintln(cmd.OutOrStdout(), province.Slug(a))
		}
	},
}

var nameCmd = &cobra.Command{
	Use:   "name SLUG...",
	Short: "slug 还原省名",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := openProvider()
		if err != nil {
			return err
		}
		defer cleanup()
		table, _ := p.Table(cmd.Context())
		for _, a := range args {
			fmt.Fprintln(cmd.OutOrStdout(), province.NameFromSlug(a, table))
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().Float64Var(&resolveLat, "lat", 0, "纬度（WGS84）")
	resolveCmd.Flags().Float64Var(&resolveLng, "lng", 0, "经度（WGS84）")
	resolveCmd.Flags().BoolVar(&resolveNoFast, "no-fast-path", false, "跳过包围盒快速判定")
	_ = resolveCmd.MarkFlagRequired("lat")
	_ = resolveCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(slugCmd)
	rootCmd.AddCommand(nameCmd)
}
