package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/internal/providers"
	"github.com/Julian-Heng/sys-line-sub000/internal/query"
	"github.com/Julian-Heng/sys-line-sub000/pkg/format"
)

func action(_ context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := config.Load(cmd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("sysline: %v", err), 1)
	}
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	factories, err := providers.Factories()
	if err != nil {
		// 无法为当前主机初始化 Provider 集合
		return cli.Exit(fmt.Sprintf("sysline: %v", err), 2)
	}
	dispatcher := query.NewDispatcher(cfg, factories)

	if cmd.Bool("all") {
		return dumpAll(cmd, dispatcher)
	}

	templates := cmd.Args().Slice()
	if len(templates) == 0 {
		return cli.Exit("sysline: no format string given, see --help", 1)
	}

	// 多个模板共享同一个分发器，Provider 只构造一次
	for _, template := range templates {
		line, err := format.NewTree(template, dispatcher).Render()
		if err != nil {
			return cli.Exit(fmt.Sprintf("sysline: %v", err), 1)
		}
		fmt.Fprintln(cmd.Writer, line)
	}

	return nil
}

// dumpAll 输出各域全部字段，供调试与发现可用的 domain.info。
func dumpAll(cmd *cli.Command, dispatcher *query.Dispatcher) error {
	domains := cmd.Args().Slice()
	if len(domains) == 0 {
		domains = dispatcher.Domains()
	}

	if cmd.Bool("json") {
		return dumpJSON(cmd, dispatcher, domains)
	}

	for _, domain := range domains {
		infos, err := dispatcher.Infos(domain)
		if err != nil {
			return cli.Exit(fmt.Sprintf("sysline: %v", err), 1)
		}
		for _, info := range infos {
			result, err := dispatcher.Query(domain, info, nil)
			if err != nil {
				return cli.Exit(fmt.Sprintf("sysline: %v", err), 1)
			}
			fmt.Fprintf(cmd.Writer, "%s.%s: %s\n", domain, info, plainValue(result))
		}
	}

	return nil
}

func dumpJSON(cmd *cli.Command, dispatcher *query.Dispatcher, domains []string) error {
	out := make(map[string]map[string]any, len(domains))
	for _, domain := range domains {
		infos, err := dispatcher.Infos(domain)
		if err != nil {
			return cli.Exit(fmt.Sprintf("sysline: %v", err), 1)
		}
		fields := make(map[string]any, len(infos))
		for _, info := range infos {
			result, err := dispatcher.Query(domain, info, nil)
			if err != nil {
				return cli.Exit(fmt.Sprintf("sysline: %v", err), 1)
			}
			fields[info] = jsonValue(result)
		}
		out[domain] = fields
	}

	encoder := json.NewEncoder(cmd.Writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(out)
}

// plainValue 文本输出形式；缺失字段显示为空。
func plainValue(v any) string {
	if v == nil {
		return ""
	}

	return format.Stringify(v)
}

// jsonValue JSON 输出形式；原生标量保留类型，其余走字符串渲染。
func jsonValue(v any) any {
	switch v.(type) {
	case nil, bool, int, int64, uint64, float64, string:
		return v
	default:
		return format.Stringify(v)
	}
}
