package providers

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

// CPU cpu 域。
type CPU struct {
	opts config.CPUOptions

	infoTried  bool
	info       *cpu.InfoStat
	countTried bool
	count      int
	loadTried  bool
	load       *load.AvgStat
}

// NewCPU 构造 cpu 域 Provider。
func NewCPU(cfg *config.Config) Provider {
	return &CPU{opts: cfg.CPU}
}

var cpuTable = map[string]func(*CPU, *config.CPUOptions) any{
	"cores":     (*CPU).cores,
	"cpu":       (*CPU).model,
	"load_avg":  (*CPU).loadAvg,
	"cpu_usage": (*CPU).cpuUsage,
	"fan":       (*CPU).fan,
	"temp":      (*CPU).temp,
	"uptime":    (*CPU).uptime,
}

func (c *CPU) Infos() []string { return sortedInfos(cpuTable) }

func (c *CPU) Defaults() any {
	o := c.opts

	return &o
}

func (c *CPU) Query(info string, opts any) (any, error) {
	fn, ok := cpuTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain cpu", info)
	}
	o, _ := opts.(*config.CPUOptions)
	if o == nil {
		o = &c.opts
	}

	return fn(c, o), nil
}

func (c *CPU) snapshot() *cpu.InfoStat {
	if !c.infoTried {
		c.infoTried = true
		if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
			c.info = &infos[0]
		}
	}

	return c.info
}

func (c *CPU) logicalCount() int {
	if !c.countTried {
		c.countTried = true
		if n, err := cpu.Counts(true); err == nil {
			c.count = n
		}
	}

	return c.count
}

func (c *CPU) loadSnapshot() *load.AvgStat {
	if !c.loadTried {
		c.loadTried = true
		if avg, err := load.Avg(); err == nil {
			c.load = avg
		}
	}

	return c.load
}

func (c *CPU) cores(_ *config.CPUOptions) any {
	if n := c.logicalCount(); n > 0 {
		return n
	}

	return nil
}

func (c *CPU) model(_ *config.CPUOptions) any {
	info := c.snapshot()
	if info == nil {
		return nil
	}

	name := strings.TrimSpace(info.ModelName)
	if n := c.logicalCount(); n > 0 {
		name = fmt.Sprintf("%s (%d)", name, n)
	}
	if info.Mhz > 0 {
		name = fmt.Sprintf("%s @ %sGHz", name, strconv.FormatFloat(info.Mhz/1000, 'f', 1, 64))
	}

	return name
}

func (c *CPU) loadAvg(o *config.CPUOptions) any {
	avg := c.loadSnapshot()
	if avg == nil {
		return nil
	}
	if o.LoadShort {
		return formatFloat(avg.Load1)
	}

	return strings.Join([]string{
		formatFloat(avg.Load1),
		formatFloat(avg.Load5),
		formatFloat(avg.Load15),
	}, " ")
}

func (c *CPU) cpuUsage(o *config.CPUOptions) any {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return nil
	}

	return value.Round(percents[0], o.CPUUsage.Round)
}

// fan 读取第一个有转速读数的 hwmon 风扇。
func (c *CPU) fan(_ *config.CPUOptions) any {
	paths, _ := filepath.Glob("/sys/class/hwmon/hwmon*/fan1_input")
	for _, path := range paths {
		raw, ok := readFile(path)
		if !ok {
			continue
		}
		if rpm, err := strconv.Atoi(raw); err == nil && rpm > 0 {
			return rpm
		}
	}

	return nil
}

// temp 读取 hwmon 温度（毫摄氏度），优先 CPU 传感器。
func (c *CPU) temp(o *config.CPUOptions) any {
	dirs, _ := filepath.Glob("/sys/class/hwmon/hwmon*")
	chosen := ""
	for _, dir := range dirs {
		probe := filepath.Join(dir, "temp1_input")
		if _, ok := readFile(probe); !ok {
			continue
		}
		name, _ := readFile(filepath.Join(dir, "name"))
		if name == "coretemp" || name == "k10temp" || name == "zenpower" || name == "cpu_thermal" {
			chosen = probe

			break
		}
		if chosen == "" {
			chosen = probe
		}
	}
	if chosen == "" {
		return nil
	}
	raw, ok := readFile(chosen)
	if !ok {
		return nil
	}
	milli, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return value.Round(milli/1000, o.Temp.Round)
}

func (c *CPU) uptime(_ *config.CPUOptions) any {
	seconds, err := host.Uptime()
	if err != nil {
		return nil
	}

	return formatDuration(seconds)
}

// formatDuration 把秒数渲染为 "1d 2h 3m 4s"，省略前导零单位。
func formatDuration(seconds uint64) string {
	units := []struct {
		label  string
		length uint64
	}{
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}

	var parts []string
	for _, u := range units {
		n := seconds / u.length
		seconds %= u.length
		if n == 0 && len(parts) == 0 && u.label != "s" {
			continue
		}
		parts = append(parts, strconv.FormatUint(n, 10)+u.label)
	}

	return strings.Join(parts, " ")
}

func formatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', 2, 64)
}
