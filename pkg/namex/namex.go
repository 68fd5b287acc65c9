/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package namex

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// reserved 是 Windows 保留设备名，不能直接作为文件主名。
var reserved = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// DefaultMaxNameLength 按 rune 计的最大长度（0 表示不截断）。
const DefaultMaxNameLength = 64

// Fallback 是清理后为空时使用的名称。
const Fallback = "unnamed"

// normalizeAndFold 执行 NFKC 归一化，仅保留字母、数字、下划线与连字符，
// 连续的其它字符合并为单个下划线，并去掉首尾下划线。
// 中文等非 ASCII 字母会被保留，POI 名称大多如此。
func normalizeAndFold(s string) string {
	s = norm.NFKC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	prevUnderscore := false
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevUnderscore = r == '_'
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// truncateRunes 按 rune 计数截断。
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// Sanitize 把 POI 名称、模板渲染结果等转换为安全的文件主名（不含扩展名）。
// used 非 nil 时保证唯一：冲突名追加 _1、_2……，比较忽略大小写。
func Sanitize(name string, used map[string]struct{}) string {
	out := normalizeAndFold(strings.TrimSpace(name))
	if DefaultMaxNameLength > 0 {
		out = strings.TrimRight(truncateRunes(out, DefaultMaxNameLength), "_")
	}
	if out == "" {
		out = Fallback
	}
	if _, bad := reserved[strings.ToLower(out)]; bad {
		out = "_" + out
	}
	if used == nil {
		return out
	}
	cand := out
	for i := 1; ; i++ {
		key := strings.ToLower(cand)
		if _, exists := used[key]; !exists {
			used[key] = struct{}{}
			return cand
		}
		cand = fmt.Sprintf("%s_%d", out, i)
	}
}
