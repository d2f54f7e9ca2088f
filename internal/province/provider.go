package province

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"province-api/internal/logger"
	"province-api/internal/metrics"
)

// 文档注释：坐标表提供策略
// 背景：静态表、文件、数据库与远端房源数据四种来源统一为同一接口，由调用方在装配时选择。
// 约束：Table 不应返回错误给解析器以外的层；各实现失败时自行回退到静态表并记录日志，error 仅用于观测。
type TableProvider interface {
	Name() string
	Table(ctx context.Context) ([]Coordinate, error)
}

// StaticProvider：内置 34 省表或调用方注入的固定表
type StaticProvider struct {
	entries []Coordinate
}

func NewStaticProvider() *StaticProvider { return &StaticProvider{entries: StaticTable()} }

// NewFixedProvider：使用给定表（测试或自定义部署）
func NewFixedProvider(entries []Coordinate) *StaticProvider {
	return &StaticProvider{entries: append([]Coordinate(nil), entries...)}
}

func (p *StaticProvider) Name() string { return "static" }
func (p *StaticProvider) Table(ctx context.Context) ([]Coordinate, error) {
	return p.entries, nil
}

// CoordinateLoader：数据库等外部存储的读取契约
type CoordinateLoader interface {
	LoadCoordinates(ctx context.Context) ([]Coordinate, error)
}

// 文档注释：数据库来源
// 背景：运营侧可在库中修正代表点而无需发版；每次取表读取一次，读取失败或空表回退静态表。
// 约束：解析结果仍受 Resolver 的 LRU 与接口层 Redis 缓存约束（键不含表版本），库中修改在缓存 TTL 到期或 Resolver.Purge 后才生效。
type DBProvider struct {
	loader   CoordinateLoader
	fallback []Coordinate
}

func NewDBProvider(loader CoordinateLoader) *DBProvider {
	return &DBProvider{loader: loader, fallback: StaticTable()}
}

func (p *DBProvider) Name() string { return "db" }

func (p *DBProvider) Table(ctx context.Context) ([]Coordinate, error) {
	if p.loader == nil {
		return p.fallback, errors.New("no coordinate loader")
	}
	t, err := p.loader.LoadCoordinates(ctx)
	if err != nil {
		logger.L().Error("province_db_table_error", "err", err)
		return p.fallback, err
	}
	if len(t) == 0 {
		logger.L().Info("province_db_table_empty")
		return p.fallback, nil
	}
	if err := ValidateTable(t); err != nil {
		logger.L().Error("province_db_table_invalid", "err", err)
		return p.fallback, err
	}
	return t, nil
}

// FileProvider：从 JSON 文件加载一次，失败或空表时固定使用静态表（与 DBProvider 一致）
type FileProvider struct {
	path  string
	once  sync.Once
	table []Coordinate
	err   error
}

func NewFileProvider(path string) *FileProvider { return &FileProvider{path: path} }

func (p *FileProvider) Name() string { return "file" }

func (p *FileProvider) Table(ctx context.Context) ([]Coordinate, error) {
	p.once.Do(func() {
		t, err := LoadTableFile(p.path)
		if err == nil {
			err = ValidateTable(t)
		}
		if err != nil {
			logger.L().Error("province_file_table_error", "path", p.path, "err", err)
			p.table, p.err = StaticTable(), err
			return
		}
		if len(t) == 0 {
			logger.L().Info("province_file_table_empty", "path", p.path)
			p.table = StaticTable()
			return
		}
		logger.L().Info("province_file_table_loaded", "path", p.path, "entries", len(t))
		p.table = t
	})
	return p.table, p.err
}

// NameSource：远端房源数据中出现过的省名
type NameSource interface {
	Provinces(ctx context.Context) ([]string, error)
}

// 文档注释：远端房源数据派生的坐标表（一次性记忆）
// 背景：接口只返回房源记录中的省名，不带省中心点；派生表对每个已知省名复用静态表中的代表点，未知省名跳过并记录。
// 约束：首次解析时构建并记忆；并发首次构建可能重复请求，但表项不可变，不会损坏；拉取失败或无可识别省名时使用静态表，不向调用方报错。
type RemoteProvider struct {
	src      NameSource
	fallback []Coordinate
	memo     atomic.Pointer[[]Coordinate]
}

func NewRemoteProvider(src NameSource) *RemoteProvider {
	return &RemoteProvider{src: src, fallback: StaticTable()}
}

func (p *RemoteProvider) Name() string { return "remote" }

func (p *RemoteProvider) Table(ctx context.Context) ([]Coordinate, error) {
	if t := p.memo.Load(); t != nil {
		return *t, nil
	}
	t, err := p.build(ctx)
	p.memo.CompareAndSwap(nil, &t)
	return *p.memo.Load(), err
}

// Refresh：强制重建派生表（供定时任务调用）
func (p *RemoteProvider) Refresh(ctx context.Context) error {
	t, err := p.build(ctx)
	p.memo.Store(&t)
	return err
}

func (p *RemoteProvider) build(ctx context.Context) ([]Coordinate, error) {
	if p.src == nil {
		return p.fallback, errors.New("no name source")
	}
	names, err := p.src.Provinces(ctx)
	if err != nil {
		metrics.TableFallbackTotal.WithLabelValues(p.Name()).Inc()
		logger.L().Error("province_remote_table_error", "err", err)
		return p.fallback, err
	}
	t := DeriveTable(names, p.fallback)
	if len(t) == 0 {
		metrics.TableFallbackTotal.WithLabelValues(p.Name()).Inc()
		logger.L().Info("province_remote_table_unmatched", "names", len(names))
		return p.fallback, nil
	}
	logger.L().Info("province_remote_table_built", "names", len(names), "entries", len(t))
	return t, nil
}

// 文档注释：由省名列表派生坐标表
// 背景：按 slug 比对（忽略大小写与空白差异）匹配参考表中的代表点，名称统一为参考表写法；重复省名仅保留一次，保持首次出现顺序。
func DeriveTable(names []string, reference []Coordinate) []Coordinate {
	bySlug := make(map[string]Coordinate, len(reference))
	for _, c := range reference {
		bySlug[Slug(c.Name)] = c
	}
	seen := make(map[string]struct{}, len(names))
	var out []Coordinate
	for _, n := range names {
		s := Slug(n)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		c, ok := bySlug[s]
		if !ok {
			logger.L().Debug("province_remote_unknown_name", "name", n)
			continue
		}
		out = append(out, c)
	}
	return out
}
