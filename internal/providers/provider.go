// Package providers 实现各信息域（cpu、mem、swap、disk、bat、net、
// date、misc、wm）的取值。
//
// 每个 Provider 通过显式注册表（info 名 → 处理函数）声明字段，
// 由 internal/query 负责分发与选项覆盖。所有字段在底层数据缺失时
// 返回 nil 而不是错误：桌面机没有电池属于常态，不应让渲染崩溃。
//
// 昂贵的数据源（gopsutil 调用、外部命令）缓存在 Provider 实例的
// 显式字段里，首次访问时计算一次，进程内不失效。
package providers

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
)

// Provider 一个信息域的取值实现。
type Provider interface {
	// Infos 返回该域声明的全部字段名（有序、稳定）。
	Infos() []string

	// Defaults 返回该域默认选项结构体副本的指针，
	// 供选项覆盖机制反射与解码。
	Defaults() any

	// Query 以给定选项执行一次取值。
	// opts 与 Defaults 返回值同类型；数据缺失返回 nil。
	Query(info string, opts any) (any, error)
}

// OptionHook 多值域对未知选项 token 的兜底处理。
//
// 覆盖机制在平铺 key 与 info 限定 key 都未命中时调用；
// 实现方可把裸 token 解释为选择器写入 overlay，返回是否接受。
type OptionHook interface {
	ApplyUnknownOption(overlay map[string]any, key, value string) bool
}

// Indexed 返回映射结果的选择 key 的域。
type Indexed interface {
	// ResolveIndex 把选项中的选择器换算为 Mapping 的 key；
	// 空串表示未指定选择器。
	ResolveIndex(opts any, m *Mapping) string
}

// Mapping 多值域的有序键值结果。
//
// Keys 保留插入顺序，未显式选择时取第一个条目。
type Mapping struct {
	Keys   []string
	Values map[string]any
}

// Put 追加一个条目。
func (m *Mapping) Put(key string, value any) {
	if m.Values == nil {
		m.Values = make(map[string]any)
	}
	if _, exists := m.Values[key]; !exists {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = value
}

// Factory 构造某个域的 Provider。
type Factory func(cfg *config.Config) Provider

// Factories 返回当前主机支持的域工厂表。
//
// 暂只支持 linux；其他平台返回错误，由 CLI 以退出码 2 终止。
func Factories() (map[string]Factory, error) {
	if runtime.GOOS != "linux" {
		return nil, fmt.Errorf("providers: unsupported platform %q", runtime.GOOS)
	}

	return map[string]Factory{
		"cpu":  NewCPU,
		"mem":  NewMem,
		"swap": NewSwap,
		"disk": NewDisk,
		"bat":  NewBat,
		"net":  NewNet,
		"date": NewDate,
		"misc": NewMisc,
		"wm":   NewWM,
	}, nil
}

// sortedInfos 返回注册表 key 的有序切片。
func sortedInfos[V any](table map[string]V) []string {
	infos := make([]string, 0, len(table))
	for name := range table {
		infos = append(infos, name)
	}
	sort.Strings(infos)

	return infos
}
