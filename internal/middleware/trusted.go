package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"province-api/internal/logger"
	"province-api/internal/utils"
)

// 位置与来源相关的请求头：仅可信边缘节点可注入
var edgeHeaders = []string{
	"X-EO-Geo-Latitude",
	"X-EO-Geo-Longitude",
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
	"X-EdgeOne-IP",
}

// 文档注释：可信边缘节点过滤
// 背景：高精度定位会读取 CDN 注入的 X-EO-Geo-* 头，最低精度按转发头识别客户端 IP；直连源站的请求可伪造这些头。
// 约束：来源（RemoteAddr）不在允许网段内时删除上述头后放行，不拒绝请求；支持 IPv4/IPv6 单 IP 与 CIDR。
type TrustedEdge struct {
	prefixes []netip.Prefix
}

// ParseTrustedEdge：解析逗号分隔的 IP/CIDR 列表，无效项跳过并记录
func ParseTrustedEdge(list string) *TrustedEdge {
	t := &TrustedEdge{}
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			if a, err := netip.ParseAddr(p); err == nil {
				t.prefixes = append(t.prefixes, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
				continue
			}
		}
		pf, err := netip.ParsePrefix(p)
		if err != nil {
			logger.L().Info("trusted_edge_bad_entry", "entry", p)
			continue
		}
		t.prefixes = append(t.prefixes, pf.Masked())
	}
	return t
}

// Trusted：判断对端地址是否属于可信网段
func (t *TrustedEdge) Trusted(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range t.prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

func (t *TrustedEdge) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.Trusted(r.RemoteAddr) {
			stripped := false
			for _, h := range edgeHeaders {
				if r.Header.Get(h) != "" {
					r.Header.Del(h)
					stripped = true
				}
			}
			if stripped {
				logger.L().Debug("trusted_edge_strip", "remote", r.RemoteAddr)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// WrapTrustedEdge：TRUSTED_EDGE_ENABLED=true 时按 TRUSTED_EDGE_CIDRS 过滤；未启用时原样返回
func WrapTrustedEdge(next http.Handler) http.Handler {
	if !utils.GetEnvAsBool("TRUSTED_EDGE_ENABLED", false) {
		return next
	}
	t := ParseTrustedEdge(utils.GetEnv("TRUSTED_EDGE_CIDRS", "127.0.0.1,::1"))
	logger.L().Info("trusted_edge_enabled", "prefixes", len(t.prefixes))
	return t.Wrap(next)
}
