package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"
)

// EnvPrefix 环境变量前缀。
const EnvPrefix = "SYSLINE_"

// DefaultPaths 返回配置文件的搜索顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.sysline.yaml - 当前目录
//  2. ~/.sysline.yaml - 用户主目录
//  3. /etc/sysline/config.yaml - 系统级配置
func DefaultPaths() []string {
	paths := []string{".sysline.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".sysline.yaml"))
	}

	return append(paths, "/etc/sysline/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - [DefaultConfig]
//  2. 配置文件 - [DefaultPaths]
//  3. 环境变量 - [EnvPrefix] + 大写 key
//  4. CLI flags - 仅当用户明确指定时
func Load(cmd *cli.Command) (*Config, error) {
	defaults := DefaultConfig()
	configMap := StructToMap(defaults)

	// 按顺序搜索配置文件，找到第一个即停止
	for _, path := range DefaultPaths() {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		fileMap, err := parseYAML(content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		MergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path)

		break
	}

	for _, key := range Keys(defaults) {
		envKey := EnvKey(EnvPrefix, key)
		if val := os.Getenv(envKey); val != "" {
			SetByPath(configMap, key, val)
			slog.Debug("Loaded env binding", "env", envKey, "key", key)
		}
	}

	if cmd != nil {
		applyFlags(cmd, configMap, defaults)
	}

	var cfg Config
	if err := Decode(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func parseYAML(content []byte) (map[string]any, error) {
	var raw any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	normalized := normalizeMapKeys(raw)
	if normalized == nil {
		return map[string]any{}, nil
	}
	configMap, ok := normalized.(map[string]any)
	if !ok {
		return nil, errors.New("config root must be object")
	}

	return configMap, nil
}

func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalizeMapKeys(value)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeMapKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}

		return typed
	default:
		return val
	}
}
