package providers

import (
	"fmt"
	"time"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
)

// Date date 域。
type Date struct {
	opts config.DateOptions
	now  func() time.Time
}

// NewDate 构造 date 域 Provider。
func NewDate(cfg *config.Config) Provider {
	return &Date{opts: cfg.Date, now: time.Now}
}

var dateTable = map[string]func(*Date, *config.DateOptions) any{
	"date": (*Date).date,
	"time": (*Date).clock,
}

func (d *Date) Infos() []string { return sortedInfos(dateTable) }

func (d *Date) Defaults() any {
	o := d.opts

	return &o
}

func (d *Date) Query(info string, opts any) (any, error) {
	fn, ok := dateTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain date", info)
	}
	o, _ := opts.(*config.DateOptions)
	if o == nil {
		o = &d.opts
	}

	return fn(d, o), nil
}

func (d *Date) date(o *config.DateOptions) any {
	return d.now().Format(o.Date.Format)
}

func (d *Date) clock(o *config.DateOptions) any {
	return d.now().Format(o.Time.Format)
}
