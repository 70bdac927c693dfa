package providers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
)

var (
	currentDesktopPattern = regexp.MustCompile(`_NET_CURRENT_DESKTOP\(CARDINAL\) = (\d+)`)
	desktopNamesPattern   = regexp.MustCompile(`_NET_DESKTOP_NAMES\(UTF8_STRING\) = (.+)`)
	wmCheckPattern        = regexp.MustCompile(`_NET_SUPPORTING_WM_CHECK\(WINDOW\): window id # (0x[0-9a-fA-F]+)`)
	activeWindowPattern   = regexp.MustCompile(`_NET_ACTIVE_WINDOW\(WINDOW\): window id # (0x[0-9a-fA-F]+)`)
	wmNamePattern         = regexp.MustCompile(`_NET_WM_NAME\(UTF8_STRING\) = "(.*)"`)
	wmClassPattern        = regexp.MustCompile(`WM_CLASS\(STRING\) = "[^"]*", "([^"]*)"`)
)

// WM wm 域：经 xprop 抓取 EWMH 属性。
type WM struct {
	opts config.WMOptions

	rootTried bool
	rootProps string
}

// NewWM 构造 wm 域 Provider。
func NewWM(cfg *config.Config) Provider {
	return &WM{opts: cfg.WM}
}

var wmTable = map[string]func(*WM, *config.WMOptions) any{
	"name":          (*WM).name,
	"desktop_index": (*WM).desktopIndex,
	"desktop_name":  (*WM).desktopName,
	"app_name":      (*WM).appName,
	"window_name":   (*WM).windowName,
}

func (w *WM) Infos() []string { return sortedInfos(wmTable) }

func (w *WM) Defaults() any {
	o := w.opts

	return &o
}

func (w *WM) Query(info string, opts any) (any, error) {
	fn, ok := wmTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain wm", info)
	}
	o, _ := opts.(*config.WMOptions)
	if o == nil {
		o = &w.opts
	}

	return fn(w, o), nil
}

func (w *WM) root() string {
	if !w.rootTried {
		w.rootTried = true
		if out, ok := runCommand("xprop", "-root"); ok {
			w.rootProps = out
		}
	}

	return w.rootProps
}

func (w *WM) windowProps(pattern *regexp.Regexp) string {
	match := pattern.FindStringSubmatch(w.root())
	if match == nil {
		return ""
	}
	out, ok := runCommand("xprop", "-id", match[1])
	if !ok {
		return ""
	}

	return out
}

func (w *WM) name(_ *config.WMOptions) any {
	props := w.windowProps(wmCheckPattern)
	if match := wmNamePattern.FindStringSubmatch(props); match != nil {
		return match[1]
	}

	return nil
}

func (w *WM) desktopIndex(_ *config.WMOptions) any {
	match := currentDesktopPattern.FindStringSubmatch(w.root())
	if match == nil {
		return nil
	}
	index, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}

	return index
}

func (w *WM) desktopName(o *config.WMOptions) any {
	index, ok := w.desktopIndex(o).(int)
	if !ok {
		return nil
	}
	match := desktopNamesPattern.FindStringSubmatch(w.root())
	if match == nil {
		return nil
	}
	names := parseDesktopNames(match[1])
	if index < 0 || index >= len(names) {
		return nil
	}

	return names[index]
}

func (w *WM) appName(_ *config.WMOptions) any {
	props := w.windowProps(activeWindowPattern)
	if match := wmClassPattern.FindStringSubmatch(props); match != nil {
		return match[1]
	}

	return nil
}

func (w *WM) windowName(_ *config.WMOptions) any {
	props := w.windowProps(activeWindowPattern)
	if match := wmNamePattern.FindStringSubmatch(props); match != nil {
		return match[1]
	}

	return nil
}

// parseDesktopNames 解析 xprop 的名字列表：`"web", "code", "misc"`。
func parseDesktopNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `"`)
		if part != "" {
			names = append(names, part)
		}
	}

	return names
}
