package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
	"github.com/Julian-Heng/sys-line-sub000/internal/providers"
	"github.com/Julian-Heng/sys-line-sub000/pkg/value"
)

// buildOverlay 根据选项字符串构造一次性选项结构体。
//
// 流程：复制域默认选项为嵌套 map → 逐条应用 "key" / "key=value"
// 赋值 → 解码为全新的类型化结构体。默认选项全程不被触碰。
//
// key 的查找顺序：
//  1. 域的平铺字段（如 disk 的 short_dev）
//  2. info 限定字段（info.key，如 used 查询下的 prefix → used.prefix）
//  3. Provider 的未知选项兜底（多值域把裸 token 当作选择器）
//
// 布尔字段允许省略 "=value" 作为 key=true 简写；
// 名为 prefix 的 key 的取值必须是合法单位前缀。
func buildOverlay(p providers.Provider, info, optionString string) (any, error) {
	defaults := p.Defaults()
	overlay := config.StructToMap(defaults)

	for _, assign := range strings.Split(optionString, ",") {
		assign = strings.TrimSpace(assign)
		if assign == "" {
			continue
		}

		key, val, hasValue := strings.Cut(assign, "=")
		path, field, found := resolveOptionKey(defaults, info, key)
		if !found {
			if hook, ok := p.(providers.OptionHook); ok && hook.ApplyUnknownOption(overlay, key, val) {
				continue
			}

			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, key)
		}

		if field.Type.Kind() == reflect.Bool && !hasValue {
			val, hasValue = "true", true
		}
		if !hasValue {
			return nil, fmt.Errorf("query: option %q requires a value", key)
		}
		if leafName(path) == "prefix" && !value.ValidPrefix(val) {
			return nil, fmt.Errorf("%w: %q", ErrBadPrefix, val)
		}

		config.SetByPath(overlay, path, val)
	}

	fresh := p.Defaults()
	if err := config.Decode(overlay, fresh); err != nil {
		return nil, fmt.Errorf("query: decode option overlay: %w", err)
	}

	return fresh, nil
}

// resolveOptionKey 把选项 key 解析为选项结构体内的叶子路径。
func resolveOptionKey(defaults any, info, key string) (string, reflect.StructField, bool) {
	if field, ok := config.FieldAt(defaults, key); ok && !isStructKind(field) {
		return key, field, true
	}

	scoped := info + "." + key
	if field, ok := config.FieldAt(defaults, scoped); ok && !isStructKind(field) {
		return scoped, field, true
	}

	return "", reflect.StructField{}, false
}

func isStructKind(field reflect.StructField) bool {
	typ := field.Type
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct
}

func leafName(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}

	return path
}
