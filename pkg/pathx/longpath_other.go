//go:build !windows

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package pathx

func longPathName(p string) string { return p }
