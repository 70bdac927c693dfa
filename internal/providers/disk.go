package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

// Disk disk 域（多值：按设备路径为 key）。
type Disk struct {
	opts config.DiskOptions

	partsTried  bool
	parts       []disk.PartitionStat
	usageByPath map[string]*disk.UsageStat
	labels      map[string]string
	labelsTried bool
}

// NewDisk 构造 disk 域 Provider。
func NewDisk(cfg *config.Config) Provider {
	return &Disk{opts: cfg.Disk}
}

var diskTable = map[string]func(*Disk, *config.DiskOptions) any{
	"dev":       (*Disk).dev,
	"name":      (*Disk).name,
	"mount":     (*Disk).mount,
	"partition": (*Disk).partition,
	"used":      (*Disk).used,
	"total":     (*Disk).total,
	"percent":   (*Disk).percent,
}

func (d *Disk) Infos() []string { return sortedInfos(diskTable) }

func (d *Disk) Defaults() any {
	o := d.opts

	return &o
}

func (d *Disk) Query(info string, opts any) (any, error) {
	fn, ok := diskTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain disk", info)
	}
	o, _ := opts.(*config.DiskOptions)
	if o == nil {
		o = &d.opts
	}

	return fn(d, o), nil
}

// ApplyUnknownOption 把裸 token 解释为挂载点或设备选择器。
func (d *Disk) ApplyUnknownOption(overlay map[string]any, key, value string) bool {
	if value != "" {
		return false
	}
	overlay["index"] = key

	return true
}

// ResolveIndex 把选择器换算为映射 key（设备路径）。
func (d *Disk) ResolveIndex(opts any, _ *Mapping) string {
	o, _ := opts.(*config.DiskOptions)
	if o == nil || o.Index == "" {
		return ""
	}
	for _, part := range d.partitions() {
		if part.Mountpoint == o.Index || part.Device == o.Index {
			return part.Device
		}
	}

	return o.Index
}

// partitions 返回物理分区，保持报告顺序。
func (d *Disk) partitions() []disk.PartitionStat {
	if !d.partsTried {
		d.partsTried = true
		if parts, err := disk.Partitions(false); err == nil {
			for _, part := range parts {
				if strings.HasPrefix(part.Device, "/dev/") {
					d.parts = append(d.parts, part)
				}
			}
		}
	}

	return d.parts
}

func (d *Disk) usage(mountpoint string) *disk.UsageStat {
	if d.usageByPath == nil {
		d.usageByPath = make(map[string]*disk.UsageStat)
	}
	if cached, ok := d.usageByPath[mountpoint]; ok {
		return cached
	}

	stat, err := disk.Usage(mountpoint)
	if err != nil {
		stat = nil
	}
	d.usageByPath[mountpoint] = stat

	return stat
}

// labelTable 扫描 /dev/disk/by-label 建立设备 → 卷标映射。
func (d *Disk) labelTable() map[string]string {
	if !d.labelsTried {
		d.labelsTried = true
		d.labels = make(map[string]string)
		links, _ := filepath.Glob("/dev/disk/by-label/*")
		for _, link := range links {
			target, err := filepath.EvalSymlinks(link)
			if err != nil {
				continue
			}
			d.labels[target] = filepath.Base(link)
		}
	}

	return d.labels
}

func (d *Disk) collect(fn func(part disk.PartitionStat) any) any {
	parts := d.partitions()
	if len(parts) == 0 {
		return nil
	}

	m := &Mapping{}
	for _, part := range parts {
		m.Put(part.Device, fn(part))
	}

	return m
}

func (d *Disk) dev(o *config.DiskOptions) any {
	return d.collect(func(part disk.PartitionStat) any {
		if o.ShortDev {
			return strings.TrimPrefix(part.Device, "/dev/")
		}

		return part.Device
	})
}

func (d *Disk) name(_ *config.DiskOptions) any {
	return d.collect(func(part disk.PartitionStat) any {
		if label, ok := d.labelTable()[part.Device]; ok {
			return label
		}

		return nil
	})
}

func (d *Disk) mount(_ *config.DiskOptions) any {
	return d.collect(func(part disk.PartitionStat) any {
		return part.Mountpoint
	})
}

func (d *Disk) partition(_ *config.DiskOptions) any {
	return d.collect(func(part disk.PartitionStat) any {
		return part.Fstype
	})
}

func (d *Disk) used(o *config.DiskOptions) any {
	return d.collect(func(part disk.PartitionStat) any {
		stat := d.usage(part.Mountpoint)
		if stat == nil {
			return nil
		}

		return value.NewBytes(float64(stat.Used), value.Prefix(o.Used.Prefix), o.Used.Round)
	})
}

func (d *Disk) total(o *config.DiskOptions) any {
	return d.collect(func(part disk.PartitionStat) any {
		stat := d.usage(part.Mountpoint)
		if stat == nil {
			return nil
		}

		return value.NewBytes(float64(stat.Total), value.Prefix(o.Total.Prefix), o.Total.Round)
	})
}

func (d *Disk) percent(o *config.DiskOptions) any {
	return d.collect(func(part disk.PartitionStat) any {
		stat := d.usage(part.Mountpoint)
		if stat == nil {
			return nil
		}

		return value.Round(stat.UsedPercent, o.Percent.Round)
	})
}
