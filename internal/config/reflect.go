package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

func tagName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return ""
	}
	parts := strings.Split(tag, ",")
	if len(parts) == 0 || parts[0] == "" || parts[0] == "-" {
		return ""
	}

	return parts[0]
}

func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct
}

// StructToMap 按 json tag 将配置结构体展开为嵌套 map。
func StructToMap(cfg any) map[string]any {
	val := reflect.ValueOf(cfg)

	return structValueToMap(val, val.Type())
}

func structValueToMap(val reflect.Value, typ reflect.Type) map[string]any {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return map[string]any{}
		}
		val = val.Elem()
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return map[string]any{}
	}

	out := make(map[string]any)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := tagName(field)
		if key == "" {
			continue
		}

		if isStructType(field.Type) {
			out[key] = structValueToMap(val.Field(i), field.Type)

			continue
		}
		out[key] = val.Field(i).Interface()
	}

	return out
}

// MergeMaps 将 src 递归合并进 dst，src 优先。
func MergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if valueMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				MergeMaps(dstMap, valueMap)

				continue
			}
		}

		dst[key] = value
	}
}

// SetByPath 按 "a.b.c" 形式的路径写入嵌套 map。
func SetByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value

			return
		}

		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}

// Decode 将嵌套 map 解析回配置结构体。
//
// 弱类型输入：字符串 "true"/"2" 可写入 bool/int 字段，
// 这让环境变量与模板选项共用同一条解码路径。
func Decode(data map[string]any, out any) error {
	conf := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}

// Keys 返回配置结构体的全部叶子 key 路径，如 mem.used.prefix。
func Keys(cfg any) []string {
	var keys []string
	collectKeys(reflect.TypeOf(cfg), "", &keys)

	return keys
}

func collectKeys(typ reflect.Type, prefix string, keys *[]string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := tagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			collectKeys(field.Type, fullKey, keys)

			continue
		}

		*keys = append(*keys, fullKey)
	}
}

// FieldAt 按 key 路径定位结构体字段，用于类型与 desc 查询。
func FieldAt(cfg any, path string) (reflect.StructField, bool) {
	typ := reflect.TypeOf(cfg)
	parts := strings.Split(path, ".")
	var field reflect.StructField
	for _, part := range parts {
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}

		found := false
		for i := range typ.NumField() {
			if tagName(typ.Field(i)) == part {
				field = typ.Field(i)
				typ = field.Type
				found = true

				break
			}
		}
		if !found {
			return reflect.StructField{}, false
		}
	}

	return field, true
}

// EnvKey 将配置 key 转为带前缀的环境变量名。
//
// 示例 (前缀 "SYSLINE_")：
//   - mem.used.prefix → SYSLINE_MEM_USED_PREFIX
//   - cpu.load_short → SYSLINE_CPU_LOAD_SHORT
func EnvKey(prefix, key string) string {
	return prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// FlagName 将配置 key 转为 CLI flag 名，仅替换 "." 为 "-"。
func FlagName(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

func describe(field reflect.StructField, key string) string {
	if desc := field.Tag.Get("desc"); desc != "" {
		return desc
	}

	return fmt.Sprintf("设置 %s", key)
}
