// 包 locate：设备位置获取与按精度降级重试
package locate

import (
	"context"
	"errors"
	"fmt"

	"province-api/internal/logger"
	"province-api/internal/metrics"
	"province-api/internal/province"
)

// Accuracy：定位精度档位，数值越小精度越高
type Accuracy int

const (
	High Accuracy = iota
	Lowest
)

func (a Accuracy) String() string {
	switch a {
	case High:
		return "high"
	case Lowest:
		return "lowest"
	}
	return fmt.Sprintf("accuracy(%d)", int(a))
}

var (
	// ErrLocationUnavailable：所有精度档位均失败，唯一需要呈现给界面的错误
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrNoFix：该档位没有可用的定位数据
	ErrNoFix = errors.New("no location fix")
)

// LocationError：记录失败的精度档位与原因
type LocationError struct {
	Accuracy Accuracy
	Err      error
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("locate at %s accuracy: %v", e.Accuracy, e.Err)
}

func (e *LocationError) Unwrap() error { return e.Err }

// Locator：定位来源契约
type Locator interface {
	Locate(ctx context.Context, acc Accuracy) (province.GeoPoint, error)
}

// LocatorFunc：函数适配器
type LocatorFunc func(ctx context.Context, acc Accuracy) (province.GeoPoint, error)

func (f LocatorFunc) Locate(ctx context.Context, acc Accuracy) (province.GeoPoint, error) {
	return f(ctx, acc)
}

// 文档注释：先高精度、失败后以最低精度重试一次
// 返回：首个成功的坐标；两次都失败时返回同时包装 ErrLocationUnavailable 与最后一次 LocationError 的错误。
// 约束：ctx 取消时立即停止，不再降级。
func Acquire(ctx context.Context, l Locator) (province.GeoPoint, error) {
	var last error = ErrNoFix
	for _, acc := range []Accuracy{High, Lowest} {
		if err := ctx.Err(); err != nil {
			return province.GeoPoint{}, err
		}
		pt, err := l.Locate(ctx, acc)
		if err == nil {
			metrics.LocateAttemptsTotal.WithLabelValues(acc.String(), "ok").Inc()
			return pt, nil
		}
		metrics.LocateAttemptsTotal.WithLabelValues(acc.String(), "fail").Inc()
		logger.L().Debug("locate_attempt_fail", "accuracy", acc.String(), "err", err)
		last = &LocationError{Accuracy: acc, Err: err}
	}
	return province.GeoPoint{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, last)
}
