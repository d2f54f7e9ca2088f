package locate

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"province-api/internal/province"
)

// IPLocator：按 IP 粗定位
type IPLocator interface {
	LocateIP(ip string) (province.GeoPoint, error)
}

// 文档注释：基于 HTTP 请求的定位来源
// 背景：高精度取客户端上报的 lat/lng 参数，缺失时读取边缘节点注入的 X-EO-Geo-Latitude/Longitude 头；最低精度按客户端 IP 查 GeoIP。
// 约束：坐标需为有限值且在合法经纬度范围内，否则视为该档位无定位。
type RequestLocator struct {
	r  *http.Request
	ip IPLocator
}

func FromRequest(r *http.Request, ip IPLocator) *RequestLocator {
	return &RequestLocator{r: r, ip: ip}
}

func (l *RequestLocator) Locate(ctx context.Context, acc Accuracy) (province.GeoPoint, error) {
	switch acc {
	case High:
		q := l.r.URL.Query()
		if pt, ok := parsePair(q.Get("lat"), q.Get("lng")); ok {
			return pt, nil
		}
		h := l.r.Header
		if pt, ok := parsePair(h.Get("X-EO-Geo-Latitude"), h.Get("X-EO-Geo-Longitude")); ok {
			return pt, nil
		}
		return province.GeoPoint{}, ErrNoFix
	case Lowest:
		if l.ip == nil {
			return province.GeoPoint{}, ErrNoFix
		}
		ip := ClientIP(l.r)
		if ip == "" {
			return province.GeoPoint{}, ErrNoFix
		}
		return l.ip.LocateIP(ip)
	}
	return province.GeoPoint{}, fmt.Errorf("unsupported accuracy %s", acc)
}

func parsePair(latS, lngS string) (province.GeoPoint, bool) {
	if latS == "" || lngS == "" {
		return province.GeoPoint{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(latS), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(lngS), 64)
	if err1 != nil || err2 != nil {
		return province.GeoPoint{}, false
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.Abs(lat) > 90 || math.Abs(lng) > 180 {
		return province.GeoPoint{}, false
	}
	return province.GeoPoint{Latitude: lat, Longitude: lng}, true
}

// 文档注释：解析访问者 IP
// 背景：优先常见反向代理头，其次 RemoteAddr；多级代理时取 x-forwarded-for 第一段。
func ClientIP(r *http.Request) string {
	h := r.Header
	if x := h.Get("x-forwarded-for"); x != "" {
		return strings.TrimSpace(strings.Split(x, ",")[0])
	}
	for _, k := range []string{"cf-connecting-ip", "x-real-ip", "x-edgeone-ip"} {
		if x := h.Get(k); x != "" {
			return strings.TrimSpace(x)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
