// Package query 将 (domain, info, option) 三元组分发到各域 Provider。
//
// Provider 按域惰性构造，进程内至多构造一次；携带选项字符串的查询
// 走一次性覆盖（见 overlay.go），默认配置永不被查询修改。
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/internal/providers"
)

// 硬错误哨兵。模板里写错 domain/info/option 是用户输入错误，
// 渲染应当中止并以非零码退出，而不是悄悄吞掉。
var (
	ErrUnknownDomain = errors.New("query: unknown domain")
	ErrUnknownInfo   = errors.New("query: info name not in domain")
	ErrUnknownOption = errors.New("query: no such option in domain")
	ErrBadPrefix     = errors.New("query: invalid prefix value")
)

// Dispatcher 查询分发器。
type Dispatcher struct {
	factories map[string]providers.Factory
	cfg       *config.Config
	active    map[string]providers.Provider
}

// NewDispatcher 构造分发器；Provider 在首次触达对应域时才构造。
func NewDispatcher(cfg *config.Config, factories map[string]providers.Factory) *Dispatcher {
	return &Dispatcher{
		factories: factories,
		cfg:       cfg,
		active:    make(map[string]providers.Provider),
	}
}

// Domains 返回已注册域名（有序）。
func (d *Dispatcher) Domains() []string {
	domains := make([]string, 0, len(d.factories))
	for name := range d.factories {
		domains = append(domains, name)
	}
	sort.Strings(domains)

	return domains
}

// Infos 返回某个域声明的字段名。
func (d *Dispatcher) Infos(domain string) ([]string, error) {
	p, err := d.provider(domain)
	if err != nil {
		return nil, err
	}

	return p.Infos(), nil
}

// Query 执行一次查询。
//
// option 为 nil 时使用域默认配置；否则构造一次性覆盖。
// 多值结果按选择器或插入序第一项坍缩为标量；key 缺失返回 nil。
func (d *Dispatcher) Query(domain, info string, option *string) (any, error) {
	p, err := d.provider(domain)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(p.Infos(), info) {
		return nil, fmt.Errorf("%w: %q has no %q", ErrUnknownInfo, domain, info)
	}

	opts := p.Defaults()
	if option != nil {
		opts, err = buildOverlay(p, info, *option)
		if err != nil {
			return nil, err
		}
	}

	result, err := p.Query(info, opts)
	if err != nil {
		return nil, err
	}

	if m, ok := result.(*providers.Mapping); ok {
		return collapse(p, opts, m), nil
	}

	return result, nil
}

// provider 惰性构造并缓存域 Provider。
func (d *Dispatcher) provider(domain string) (providers.Provider, error) {
	if p, ok := d.active[domain]; ok {
		return p, nil
	}

	factory, ok := d.factories[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}

	p := factory(d.cfg)
	d.active[domain] = p
	slog.Debug("Constructed provider", "domain", domain)

	return p, nil
}

// collapse 把多值结果坍缩为单个标量。
func collapse(p providers.Provider, opts any, m *providers.Mapping) any {
	key := ""
	if indexed, ok := p.(providers.Indexed); ok {
		key = indexed.ResolveIndex(opts, m)
	}
	if key == "" {
		if len(m.Keys) == 0 {
			return nil
		}
		key = m.Keys[0]
	}

	v, ok := m.Values[key]
	if !ok {
		return nil
	}

	return v
}
