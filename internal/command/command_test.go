package command_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/Julian-Heng/sys-line-sub000/internal/command"
)

func flagNames(cmd *cli.Command) map[string]bool {
	names := make(map[string]bool)
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			names[name] = true
		}
	}

	return names
}

func TestNew_Flags(t *testing.T) {
	cmd := command.New()

	assert.Equal(t, "sysline", cmd.Name)

	names := flagNames(cmd)
	// 固定 flags
	assert.True(t, names["all"])
	assert.True(t, names["json"])
	// 由配置结构体生成的域 flags
	assert.True(t, names["mem-used-prefix"])
	assert.True(t, names["disk-used-round"])
	assert.True(t, names["cpu-load_short"])
	assert.True(t, names["debug"])
}

func TestRun_LiteralTemplate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := command.New()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), []string{"sysline", "status ok"})
	require.NoError(t, err)
	assert.Equal(t, "status ok\n", out.String())
}

func TestRun_DateTemplate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := command.New()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), []string{"sysline", "[{date.time}]"})
	require.NoError(t, err)
	assert.Regexp(t, `^\[\d{2}:\d{2}\]\n$`, out.String())
}

func TestRun_AllDate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := command.New()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), []string{"sysline", "--all", "date"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "date.date: ")
	assert.Contains(t, out.String(), "date.time: ")
}
