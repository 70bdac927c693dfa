// Package config 提供按域划分的默认选项与分层加载。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .sysline.yaml / ~/.sysline.yaml / /etc/sysline/config.yaml
//  3. 环境变量 - SYSLINE_ 前缀，如 SYSLINE_MEM_USED_PREFIX
//  4. CLI flags - 配置 key 的 "." 替换为 "-"，如 --mem-used-prefix
//
// 配置 key 由 json tag 定义；每个域的选项结构体同时充当
// 查询时一次性覆盖（option overlay）的载体。
package config

// ValueOptions 数量型字段的渲染选项。
type ValueOptions struct {
	Prefix string `json:"prefix" desc:"单位前缀 (B/KiB/MiB/GiB/TiB/auto)"`
	Round  int    `json:"round"  desc:"保留小数位数"`
}

// RoundOptions 仅控制舍入的字段选项。
type RoundOptions struct {
	Round int `json:"round" desc:"保留小数位数"`
}

// FormatOptions 时间类字段的布局选项。
type FormatOptions struct {
	Format string `json:"format" desc:"Go 时间布局"`
}

// CPUOptions cpu 域选项。
type CPUOptions struct {
	LoadShort bool         `json:"load_short" desc:"负载只显示 1 分钟值"`
	CPUUsage  RoundOptions `json:"cpu_usage"  desc:"cpu_usage 选项"`
	Temp      RoundOptions `json:"temp"       desc:"temp 选项"`
}

// MemOptions mem 域选项。
type MemOptions struct {
	Used    ValueOptions `json:"used"    desc:"used 选项"`
	Free    ValueOptions `json:"free"    desc:"free 选项"`
	Percent RoundOptions `json:"percent" desc:"percent 选项"`
}

// SwapOptions swap 域选项。
type SwapOptions struct {
	Used    ValueOptions `json:"used"    desc:"used 选项"`
	Free    ValueOptions `json:"free"    desc:"free 选项"`
	Percent RoundOptions `json:"percent" desc:"percent 选项"`
}

// DiskOptions disk 域选项。
//
// Index 选择多值结果中的条目（挂载点或设备路径），
// 模板中可直接写裸 token，如 {disk[/].used}。
type DiskOptions struct {
	ShortDev bool         `json:"short_dev" desc:"设备名去掉 /dev/ 前缀"`
	Index    string       `json:"index"     desc:"挂载点或设备路径选择器"`
	Used     ValueOptions `json:"used"      desc:"used 选项"`
	Total    ValueOptions `json:"total"     desc:"total 选项"`
	Percent  RoundOptions `json:"percent"   desc:"percent 选项"`
}

// BatOptions bat 域选项。
type BatOptions struct {
	Percent RoundOptions `json:"percent" desc:"percent 选项"`
	Power   RoundOptions `json:"power"   desc:"power 选项"`
}

// NetOptions net 域选项。
type NetOptions struct {
	Download ValueOptions `json:"download" desc:"download 选项"`
	Upload   ValueOptions `json:"upload"   desc:"upload 选项"`
}

// DateOptions date 域选项。
type DateOptions struct {
	Date FormatOptions `json:"date" desc:"date 选项"`
	Time FormatOptions `json:"time" desc:"time 选项"`
}

// MiscOptions misc 域选项。
type MiscOptions struct {
	Vol RoundOptions `json:"vol" desc:"vol 选项"`
	Scr RoundOptions `json:"scr" desc:"scr 选项"`
}

// WMOptions wm 域选项（当前无可配置项）。
type WMOptions struct{}

// Config 全部域的默认选项。
type Config struct {
	CPU   CPUOptions  `json:"cpu"   desc:"cpu 域"`
	Mem   MemOptions  `json:"mem"   desc:"mem 域"`
	Swap  SwapOptions `json:"swap"  desc:"swap 域"`
	Disk  DiskOptions `json:"disk"  desc:"disk 域"`
	Bat   BatOptions  `json:"bat"   desc:"bat 域"`
	Net   NetOptions  `json:"net"   desc:"net 域"`
	Date  DateOptions `json:"date"  desc:"date 域"`
	Misc  MiscOptions `json:"misc"  desc:"misc 域"`
	WM    WMOptions   `json:"wm"    desc:"wm 域"`
	Debug bool        `json:"debug" desc:"输出调试日志"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		CPU: CPUOptions{
			CPUUsage: RoundOptions{Round: 2},
			Temp:     RoundOptions{Round: 1},
		},
		Mem: MemOptions{
			Used:    ValueOptions{Prefix: "MiB", Round: 0},
			Free:    ValueOptions{Prefix: "MiB", Round: 0},
			Percent: RoundOptions{Round: 2},
		},
		Swap: SwapOptions{
			Used:    ValueOptions{Prefix: "MiB", Round: 0},
			Free:    ValueOptions{Prefix: "MiB", Round: 0},
			Percent: RoundOptions{Round: 2},
		},
		Disk: DiskOptions{
			Used:    ValueOptions{Prefix: "GiB", Round: 2},
			Total:   ValueOptions{Prefix: "GiB", Round: 2},
			Percent: RoundOptions{Round: 2},
		},
		Bat: BatOptions{
			Percent: RoundOptions{Round: 2},
			Power:   RoundOptions{Round: 2},
		},
		Net: NetOptions{
			Download: ValueOptions{Prefix: "auto", Round: 2},
			Upload:   ValueOptions{Prefix: "auto", Round: 2},
		},
		Date: DateOptions{
			Date: FormatOptions{Format: "Mon, 02 Jan"},
			Time: FormatOptions{Format: "15:04"},
		},
		Misc: MiscOptions{
			Vol: RoundOptions{Round: 0},
			Scr: RoundOptions{Round: 0},
		},
	}
}
