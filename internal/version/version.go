// Package version 提供构建版本信息。
package version

// Version 构建时通过 -ldflags 注入：
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.3"
var Version = "dev"

// GetVersion 返回当前版本号。
func GetVersion() string {
	return Version
}
