package config

import (
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"
)

// Flags 根据配置结构体的叶子 key 生成 CLI flags。
//
// 映射示例 (json tag → CLI flags)：
//   - mem.used.prefix → --mem-used-prefix
//   - cpu.load_short → --cpu-load_short
//   - debug → --debug
func Flags() []cli.Flag {
	defaults := DefaultConfig()
	defaultMap := StructToMap(defaults)

	var flags []cli.Flag
	for _, key := range Keys(defaults) {
		field, ok := FieldAt(defaults, key)
		if !ok {
			continue
		}

		name := FlagName(key)
		usage := describe(field, key)
		current, _ := valueAt(defaultMap, key)

		switch field.Type.Kind() {
		case reflect.Bool:
			v, _ := current.(bool)
			flags = append(flags, &cli.BoolFlag{Name: name, Value: v, Usage: usage})
		case reflect.Int:
			v, _ := current.(int)
			flags = append(flags, &cli.IntFlag{Name: name, Value: v, Usage: usage})
		default:
			v, _ := current.(string)
			flags = append(flags, &cli.StringFlag{Name: name, Value: v, Usage: usage})
		}
	}

	return flags
}

// applyFlags 将用户显式设置的 CLI flags 写入配置 map（最高优先级）。
func applyFlags(cmd *cli.Command, configMap map[string]any, defaults Config) {
	for _, key := range Keys(defaults) {
		name := FlagName(key)
		if !cmd.IsSet(name) {
			continue
		}

		field, ok := FieldAt(defaults, key)
		if !ok {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Bool:
			SetByPath(configMap, key, cmd.Bool(name))
		case reflect.Int:
			SetByPath(configMap, key, cmd.Int(name))
		default:
			SetByPath(configMap, key, cmd.String(name))
		}
	}
}

func valueAt(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := any(m)
	for _, part := range parts {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = asMap[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
