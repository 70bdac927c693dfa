package providers

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

// Mem mem 域。
type Mem struct {
	opts config.MemOptions

	tried    bool
	snapshot *mem.VirtualMemoryStat
}

// NewMem 构造 mem 域 Provider。
func NewMem(cfg *config.Config) Provider {
	return &Mem{opts: cfg.Mem}
}

var memTable = map[string]func(*Mem, *config.MemOptions) any{
	"used":    (*Mem).used,
	"free":    (*Mem).free,
	"percent": (*Mem).percent,
}

func (m *Mem) Infos() []string { return sortedInfos(memTable) }

func (m *Mem) Defaults() any {
	o := m.opts

	return &o
}

func (m *Mem) Query(info string, opts any) (any, error) {
	fn, ok := memTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain mem", info)
	}
	o, _ := opts.(*config.MemOptions)
	if o == nil {
		o = &m.opts
	}

	return fn(m, o), nil
}

func (m *Mem) stat() *mem.VirtualMemoryStat {
	if !m.tried {
		m.tried = true
		if vm, err := mem.VirtualMemory(); err == nil {
			m.snapshot = vm
		}
	}

	return m.snapshot
}

func (m *Mem) used(o *config.MemOptions) any {
	vm := m.stat()
	if vm == nil {
		return nil
	}

	return value.NewBytes(float64(vm.Used), value.Prefix(o.Used.Prefix), o.Used.Round)
}

func (m *Mem) free(o *config.MemOptions) any {
	vm := m.stat()
	if vm == nil {
		return nil
	}

	return value.NewBytes(float64(vm.Available), value.Prefix(o.Free.Prefix), o.Free.Round)
}

func (m *Mem) percent(o *config.MemOptions) any {
	vm := m.stat()
	if vm == nil {
		return nil
	}

	return value.Round(vm.UsedPercent, o.Percent.Round)
}
