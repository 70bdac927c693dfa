package providers

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

// Swap swap 域。
type Swap struct {
	opts config.SwapOptions

	tried    bool
	snapshot *mem.SwapMemoryStat
}

// NewSwap 构造 swap 域 Provider。
func NewSwap(cfg *config.Config) Provider {
	return &Swap{opts: cfg.Swap}
}

var swapTable = map[string]func(*Swap, *config.SwapOptions) any{
	"used":    (*Swap).used,
	"free":    (*Swap).free,
	"percent": (*Swap).percent,
}

func (s *Swap) Infos() []string { return sortedInfos(swapTable) }

func (s *Swap) Defaults() any {
	o := s.opts

	return &o
}

func (s *Swap) Query(info string, opts any) (any, error) {
	fn, ok := swapTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain swap", info)
	}
	o, _ := opts.(*config.SwapOptions)
	if o == nil {
		o = &s.opts
	}

	return fn(s, o), nil
}

func (s *Swap) stat() *mem.SwapMemoryStat {
	if !s.tried {
		s.tried = true
		if sw, err := mem.SwapMemory(); err == nil {
			s.snapshot = sw
		}
	}

	return s.snapshot
}

func (s *Swap) used(o *config.SwapOptions) any {
	sw := s.stat()
	if sw == nil {
		return nil
	}

	return value.NewBytes(float64(sw.Used), value.Prefix(o.Used.Prefix), o.Used.Round)
}

func (s *Swap) free(o *config.SwapOptions) any {
	sw := s.stat()
	if sw == nil {
		return nil
	}

	return value.NewBytes(float64(sw.Free), value.Prefix(o.Free.Prefix), o.Free.Round)
}

func (s *Swap) percent(o *config.SwapOptions) any {
	sw := s.stat()
	if sw == nil {
		return nil
	}

	return value.Round(sw.UsedPercent, o.Percent.Round)
}
