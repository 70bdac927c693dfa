package providers

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

var volPattern = regexp.MustCompile(`\[(\d+)%\]`)

// Misc misc 域：音量与屏幕亮度。
type Misc struct {
	opts config.MiscOptions
}

// NewMisc 构造 misc 域 Provider。
func NewMisc(cfg *config.Config) Provider {
	return &Misc{opts: cfg.Misc}
}

var miscTable = map[string]func(*Misc, *config.MiscOptions) any{
	"vol": (*Misc).vol,
	"scr": (*Misc).scr,
}

func (m *Misc) Infos() []string { return sortedInfos(miscTable) }

func (m *Misc) Defaults() any {
	o := m.opts

	return &o
}

func (m *Misc) Query(info string, opts any) (any, error) {
	fn, ok := miscTable[info]
	if !ok {
		return nil, fmt.Errorf("providers: info %q not in domain misc", info)
	}
	o, _ := opts.(*config.MiscOptions)
	if o == nil {
		o = &m.opts
	}

	return fn(m, o), nil
}

// vol 主音量百分比，依次尝试 amixer 与 pamixer。
func (m *Misc) vol(o *config.MiscOptions) any {
	if out, ok := runCommand("amixer", "get", "Master"); ok {
		if match := volPattern.FindStringSubmatch(out); match != nil {
			n, _ := strconv.ParseFloat(match[1], 64)

			return value.Round(n, o.Vol.Round)
		}
	}
	if out, ok := runCommand("pamixer", "--get-volume"); ok {
		if n, err := strconv.ParseFloat(out, 64); err == nil {
			return value.Round(n, o.Vol.Round)
		}
	}

	return nil
}

// scr 背光亮度百分比。
func (m *Misc) scr(o *config.MiscOptions) any {
	dirs, _ := filepath.Glob("/sys/class/backlight/*")
	for _, dir := range dirs {
		rawCur, okCur := readFile(filepath.Join(dir, "brightness"))
		rawMax, okMax := readFile(filepath.Join(dir, "max_brightness"))
		if !okCur || !okMax {
			continue
		}
		cur, errCur := strconv.ParseFloat(rawCur, 64)
		max, errMax := strconv.ParseFloat(rawMax, 64)
		if errCur != nil || errMax != nil || max == 0 {
			continue
		}

		return value.Round(cur/max*100, o.Scr.Round)
	}

	return nil
}
