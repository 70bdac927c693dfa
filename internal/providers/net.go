package providers

import (
	"fmt"
	stdnet "net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

// sampleWindow 吞吐采样的墙钟上限；窗口内无字节变化按 0 报告。
const sampleWindow = 2 * time.Second

// samplePoll 两次读数之间的间隔。
const samplePoll = 100 * time.Millisecond

var ssidPattern = regexp.MustCompile(`(?m)^\s*SSID:\s*(.+)$`)

// Net net 域。
type Net struct {
	opts config.NetOptions

	devTried bool
	device   string

	window time.Duration
	poll   time.Duration
}

// NewNet 构造 net 域 Provider。
func NewNet(cfg *config.Config) Provider {
	return &Net{opts: cfg.Net, window: sampleWindow, poll: samplePoll}
}

var netTable = map[string]func(*Net, *config.NetOptions) any{
	"dev":      (*Net).dev,
	"ssid":     (*Net).ssid,
	"local_ip": (*Net).localIP,
	"download": (*Net).download,
	"upload":   (*Net).upload,
}

func (n *Net) Infos() []string { return sortedInfos(netTable) }

func (n *Net) Defaults() any {
	o := n.opts

	return &o
}

func (n *Net) Query(info string, opts any) (any, error) {
	fn, ok := netTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain net", info)
	}
	o, _ := opts.(*config.NetOptions)
	if o == nil {
		o = &n.opts
	}

	return fn(n, o), nil
}

// activeDevice 返回第一个处于 up 状态的非回环网卡。
func (n *Net) activeDevice() string {
	if n.devTried {
		return n.device
	}
	n.devTried = true

	entries, err := os.ReadDir("/sys/class/net")
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == "lo" {
			continue
		}
		state, ok := readFile(filepath.Join("/sys/class/net", name, "operstate"))
		if ok && state == "up" {
			n.device = name

			break
		}
	}

	return n.device
}

func (n *Net) dev(_ *config.NetOptions) any {
	if dev := n.activeDevice(); dev != "" {
		return dev
	}

	return nil
}

// ssid 仅对无线网卡有值，经 iw 抓取。
func (n *Net) ssid(_ *config.NetOptions) any {
	dev := n.activeDevice()
	if dev == "" {
		return nil
	}
	wireless, ok := readFile("/proc/net/wireless")
	if !ok || !strings.Contains(wireless, dev) {
		return nil
	}
	out, ok := runCommand("iw", "dev", dev, "link")
	if !ok {
		return nil
	}
	match := ssidPattern.FindStringSubmatch(out)
	if match == nil {
		return nil
	}

	return strings.TrimSpace(match[1])
}

func (n *Net) localIP(_ *config.NetOptions) any {
	dev := n.activeDevice()
	if dev == "" {
		return nil
	}
	iface, err := stdnet.InterfaceByName(dev)
	if err != nil {
		return nil
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*stdnet.IPNet); ok && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}

	return nil
}

func (n *Net) download(o *config.NetOptions) any {
	dev := n.activeDevice()
	if dev == "" {
		return nil
	}
	rate := sampleRate(func() (uint64, bool) {
		return deviceBytes(dev, false)
	}, n.window, n.poll)

	return value.NewRate(rate, value.Prefix(o.Download.Prefix), o.Download.Round)
}

func (n *Net) upload(o *config.NetOptions) any {
	dev := n.activeDevice()
	if dev == "" {
		return nil
	}
	rate := sampleRate(func() (uint64, bool) {
		return deviceBytes(dev, true)
	}, n.window, n.poll)

	return value.NewRate(rate, value.Prefix(o.Upload.Prefix), o.Upload.Round)
}

// deviceBytes 读取网卡累计收发字节数。
func deviceBytes(dev string, sent bool) (uint64, bool) {
	counters, err := gnet.IOCounters(true)
	if err != nil {
		return 0, false
	}
	for _, counter := range counters {
		if counter.Name != dev {
			continue
		}
		if sent {
			return counter.BytesSent, true
		}

		return counter.BytesRecv, true
	}

	return 0, false
}

// sampleRate 对计数器做有界轮询：首次观察到变化即按
// 变化量/耗时换算速率；窗口耗尽无变化返回 0。
func sampleRate(read func() (uint64, bool), window, poll time.Duration) float64 {
	base, ok := read()
	if !ok {
		return 0
	}

	start := time.Now()
	for time.Since(start) < window {
		time.Sleep(poll)
		cur, ok := read()
		if !ok {
			return 0
		}
		if cur > base {
			return float64(cur-base) / time.Since(start).Seconds()
		}
	}

	return 0
}
