// Package command 提供 sysline 命令行入口。
package command

import (
	"github.com/urfave/cli/v3"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/internal/version"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// New 构造根命令。
//
// 位置参数为一个或多个模板字符串；--all 时位置参数改为域名。
// 各域默认选项的 flags 由配置结构体自动生成（见 config.Flags）。
func New() *cli.Command {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "all",
			Usage: "输出指定域（或全部域）的所有字段",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "--all 时以 JSON 输出",
		},
	}
	flags = append(flags, config.Flags()...)

	return &cli.Command{
		Name:      "sysline",
		Usage:     "状态栏文本生成器",
		Version:   version.GetVersion(),
		ArgsUsage: "FORMAT [FORMAT...]",
		Flags:     flags,
		Action:    action,
	}
}
