//go:build windows

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package pathx

import (
	"strings"

	"golang.org/x/sys/windows"
)

// longPathName 将 8.3 短路径展开为长路径，并把盘符规范为大写。失败时返回原路径。
func longPathName(p string) string {
	ptr, err := windows.UTF16PtrFromString(p)
	if err != nil {
		return p
	}
	buf := make([]uint16, windows.MAX_PATH)
	n, err := windows.GetLongPathName(ptr, &buf[0], uint32(len(buf)))
	if err == nil && n > uint32(len(buf)) {
		buf = make([]uint16, n)
		n, err = windows.GetLongPathName(ptr, &buf[0], uint32(len(buf)))
	}
	if err == nil && n > 0 {
		p = windows.UTF16ToString(buf[:n])
	}
	if len(p) >= 2 && p[1] == ':' {
		p = strings.ToUpper(p[:1]) + p[1:]
	}
	return p
}
