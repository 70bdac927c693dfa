package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/Julian-Heng/sys-line-sub000/internal/config"
)

func TestKeys(t *testing.T) {
	keys := config.Keys(config.DefaultConfig())

	assert.Contains(t, keys, "mem.used.prefix")
	assert.Contains(t, keys, "mem.percent.round")
	assert.Contains(t, keys, "cpu.load_short")
	assert.Contains(t, keys, "disk.index")
	assert.Contains(t, keys, "date.time.format")
	assert.Contains(t, keys, "debug")
	assert.NotContains(t, keys, "wm")
}

func TestFieldAt(t *testing.T) {
	cfg := config.DefaultConfig()

	field, ok := config.FieldAt(cfg, "mem.used.prefix")
	require.True(t, ok)
	assert.Equal(t, "string", field.Type.Kind().String())

	field, ok = config.FieldAt(cfg, "cpu.load_short")
	require.True(t, ok)
	assert.Equal(t, "bool", field.Type.Kind().String())

	_, ok = config.FieldAt(cfg, "mem.nope")
	assert.False(t, ok)
}

func TestEnvKeyAndFlagName(t *testing.T) {
	assert.Equal(t, "SYSLINE_MEM_USED_PREFIX", config.EnvKey(config.EnvPrefix, "mem.used.prefix"))
	assert.Equal(t, "SYSLINE_CPU_LOAD_SHORT", config.EnvKey(config.EnvPrefix, "cpu.load_short"))
	assert.Equal(t, "mem-used-prefix", config.FlagName("mem.used.prefix"))
	assert.Equal(t, "cpu-load_short", config.FlagName("cpu.load_short"))
}

func TestStructToMapDecodeRoundTrip(t *testing.T) {
	defaults := config.DefaultConfig()
	configMap := config.StructToMap(defaults)

	config.SetByPath(configMap, "mem.used.prefix", "GiB")
	config.SetByPath(configMap, "mem.used.round", "3") // 弱类型：字符串写入 int
	config.SetByPath(configMap, "cpu.load_short", "true")

	var cfg config.Config
	require.NoError(t, config.Decode(configMap, &cfg))

	assert.Equal(t, "GiB", cfg.Mem.Used.Prefix)
	assert.Equal(t, 3, cfg.Mem.Used.Round)
	assert.True(t, cfg.CPU.LoadShort)
	// 其余字段保持默认
	assert.Equal(t, "MiB", cfg.Mem.Free.Prefix)
	assert.Equal(t, defaults.Disk, cfg.Disk)
}

func TestFlags(t *testing.T) {
	flags := config.Flags()

	byName := make(map[string]cli.Flag, len(flags))
	for _, f := range flags {
		byName[f.Names()[0]] = f
	}

	prefix, ok := byName["mem-used-prefix"].(*cli.StringFlag)
	require.True(t, ok, "mem-used-prefix should be a string flag")
	assert.Equal(t, "MiB", prefix.Value)

	round, ok := byName["disk-used-round"].(*cli.IntFlag)
	require.True(t, ok, "disk-used-round should be an int flag")
	assert.Equal(t, 2, round.Value)

	_, ok = byName["cpu-load_short"].(*cli.BoolFlag)
	assert.True(t, ok, "cpu-load_short should be a bool flag")
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), *cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	content := "mem:\n  used:\n    prefix: GiB\n    round: 1\ndebug: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sysline.yaml"), []byte(content), 0o644))
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	// 环境变量覆盖配置文件
	t.Setenv("SYSLINE_MEM_USED_ROUND", "4")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "GiB", cfg.Mem.Used.Prefix)
	assert.Equal(t, 4, cfg.Mem.Used.Round)
	assert.True(t, cfg.Debug)
	// 未覆盖的字段保持默认
	assert.Equal(t, "MiB", cfg.Swap.Used.Prefix)
}
