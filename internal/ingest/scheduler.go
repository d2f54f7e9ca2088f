// 包 ingest：坐标表的周期刷新任务，运行在服务进程内的后台协程
package ingest

import (
	"context"
	"time"

	"province-api/internal/logger"
)

// Refresher：可重建的坐标表来源（远端派生表）
type Refresher interface {
	Refresh(ctx context.Context) error
}

// nextMondayAt：计算下一次周一指定小时的时间点（不含当前已过时的当周）
func nextMondayAt(now time.Time, hour int) time.Time {
	loc := now.Location()
	for i := 0; i <= 7; i++ {
		d := now.AddDate(0, 0, i)
		if d.Weekday() == time.Monday {
			t := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc)
			if t.After(now) {
				return t
			}
		}
	}
	d := now.AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc)
}

// 文档注释：每周一（Asia/Jakarta）指定小时刷新派生坐标表
// 背景：房源数据中的省份变化很少，周级刷新足够；刷新成功后调用 onDone（通常为清空解析缓存）。
// 约束：ctx 取消时退出；刷新失败只记录日志，继续按周调度。
func StartWeeklyJakarta(ctx context.Context, r Refresher, hour int, onDone func()) {
	l := logger.L()
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*3600)
	}
	next := nextMondayAt(time.Now().In(loc), hour)
	l.Info("refresh_scheduled", "next", next)
	go func() {
		for {
			t := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
			l.Info("refresh_start", "at", next)
			if err := r.Refresh(ctx); err != nil {
				l.Error("refresh_error", "err", err)
			} else {
				l.Info("refresh_done")
				if onDone != nil {
					onDone()
				}
			}
			next = next.AddDate(0, 0, 7)
		}
	}()
}
