package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

// batSource 电池读数来源。
//
// 不同内核驱动暴露 charge_*（µAh）或 energy_*（µWh）两套文件名，
// 在构造时探测一次，作为策略值携带，而不是派生子类型。
type batSource struct {
	dir      string
	nowFile  string
	fullFile string
	rateFile string
	energy   bool
}

func (b *batSource) read(name string) (float64, bool) {
	raw, ok := readFile(filepath.Join(b.dir, name))
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func (b *batSource) status() (string, bool) {
	return readFile(filepath.Join(b.dir, "status"))
}

// detectBattery 在 root 下寻找第一块电池并确定文件名变体。
func detectBattery(root string) *batSource {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		kind, ok := readFile(filepath.Join(dir, "type"))
		if !ok || kind != "Battery" {
			continue
		}

		src := &batSource{dir: dir}
		if _, ok := readFile(filepath.Join(dir, "charge_now")); ok {
			src.nowFile, src.fullFile, src.rateFile = "charge_now", "charge_full", "current_now"
		} else if _, ok := readFile(filepath.Join(dir, "energy_now")); ok {
			src.nowFile, src.fullFile, src.rateFile = "energy_now", "energy_full", "power_now"
			src.energy = true
		}

		return src
	}

	return nil
}

// Bat bat 域。
type Bat struct {
	opts config.BatOptions
	root string

	detectTried bool
	src         *batSource
}

// NewBat 构造 bat 域 Provider。
func NewBat(cfg *config.Config) Provider {
	return &Bat{opts: cfg.Bat, root: "/sys/class/power_supply"}
}

var batTable = map[string]func(*Bat, *config.BatOptions) any{
	"is_present":  (*Bat).isPresent,
	"is_charging": (*Bat).isCharging,
	"is_full":     (*Bat).isFull,
	"percent":     (*Bat).percent,
	"time":        (*Bat).timeLeft,
	"power":       (*Bat).power,
}

func (b *Bat) Infos() []string { return sortedInfos(batTable) }

func (b *Bat) Defaults() any {
	o := b.opts

	return &o
}

func (b *Bat) Query(info string, opts any) (any, error) {
	fn, ok := batTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain bat", info)
	}
	o, _ := opts.(*config.BatOptions)
	if o == nil {
		o = &b.opts
	}

	return fn(b, o), nil
}

func (b *Bat) source() *batSource {
	if !b.detectTried {
		b.detectTried = true
		b.src = detectBattery(b.root)
	}

	return b.src
}

func (b *Bat) isPresent(_ *config.BatOptions) any {
	return b.source() != nil
}

func (b *Bat) isCharging(_ *config.BatOptions) any {
	src := b.source()
	if src == nil {
		return nil
	}
	status, ok := src.status()
	if !ok {
		return nil
	}

	return status == "Charging"
}

func (b *Bat) isFull(_ *config.BatOptions) any {
	src := b.source()
	if src == nil {
		return nil
	}
	status, ok := src.status()
	if !ok {
		return nil
	}

	return status == "Full"
}

func (b *Bat) percent(o *config.BatOptions) any {
	src := b.source()
	if src == nil {
		return nil
	}
	if capacity, ok := src.read("capacity"); ok {
		return value.Round(capacity, o.Percent.Round)
	}
	if src.nowFile == "" {
		return nil
	}
	now, okNow := src.read(src.nowFile)
	full, okFull := src.read(src.fullFile)
	if !okNow || !okFull || full == 0 {
		return nil
	}

	return value.Round(now/full*100, o.Percent.Round)
}

// timeLeft 估算充满或耗尽所需时间。
func (b *Bat) timeLeft(_ *config.BatOptions) any {
	src := b.source()
	if src == nil || src.nowFile == "" {
		return nil
	}
	now, okNow := src.read(src.nowFile)
	full, okFull := src.read(src.fullFile)
	rate, okRate := src.read(src.rateFile)
	if !okNow || !okFull || !okRate || rate == 0 {
		return nil
	}

	remaining := now
	if status, ok := src.status(); ok && status == "Charging" {
		remaining = full - now
	}
	// charge: µAh/µA，energy: µWh/µW，单位约分后都是小时
	seconds := remaining / rate * 3600
	if seconds < 0 {
		return nil
	}

	return formatDuration(uint64(seconds))
}

// power 当前功率（瓦）。charge 变体需要乘以电压换算。
func (b *Bat) power(o *config.BatOptions) any {
	src := b.source()
	if src == nil || src.rateFile == "" {
		return nil
	}
	rate, ok := src.read(src.rateFile)
	if !ok {
		return nil
	}

	if src.energy {
		return value.Round(rate/1e6, o.Power.Round)
	}
	voltage, ok := src.read("voltage_now")
	if !ok {
		return nil
	}

	return value.Round(rate*voltage/1e12, o.Power.Round)
}
