package providers

import (
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// runCommand 同步执行外部命令并返回修剪后的标准输出。
//
// 命令不存在或退出失败都按数据缺失处理（ok=false），只记录调试日志。
func runCommand(name string, args ...string) (string, bool) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		slog.Debug("Command failed", "cmd", name, "args", args, "error", err)

		return "", false
	}

	return strings.TrimSpace(string(out)), true
}

// readFile 读取文件并修剪空白；缺失返回 ok=false。
func readFile(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	return strings.TrimSpace(string(content)), true
}
