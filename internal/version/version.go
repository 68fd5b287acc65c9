/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// 以下变量在构建时通过 -ldflags -X 注入。
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetAbout 返回 about 命令展示的构建信息。
func GetAbout() string {
	var b strings.Builder
	b.WriteString("POI2GEO - 高德 POI 面数据转换工具\n")
	fmt.Fprintf(&b, "  Version:   %s\n", Version)
	fmt.Fprintf(&b, "  Commit:    %s\n", Commit)
	fmt.Fprintf(&b, "  BuildDate: %s\n", BuildDate)
	fmt.Fprintf(&b, "  Go:        %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	b.WriteString("  Author:    TheMachine <592858548@qq.com>")
	return b.String()
}
