/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package pathx

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrEmptyPath 表示传入了空路径。
var ErrEmptyPath = errors.New("路径不能为空")

// Resolve 绝对化并清理路径，存在时跟随符号链接，Windows 下展开 8.3 短路径。
func Resolve(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrEmptyPath
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	} else {
		p = filepath.Clean(p)
	}
	if _, err := os.Lstat(p); err == nil {
		if real, rerr := filepath.EvalSymlinks(p); rerr == nil {
			p = real
		}
		p = longPathName(p)
	}
	return p, nil
}

// Exists 判断路径是否存在。不存在返回 (false, nil)。
func Exists(path string) (bool, error) {
	if path == "" {
		return false, ErrEmptyPath
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("检查路径时出错: %w", err)
}

// IsDir 判断路径是否为目录；不存在时返回 (false, nil)。
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("检查目录时出错: %w", err)
	}
	return info.IsDir(), nil
}

// Stem 返回最后一个路径元素去掉末尾扩展名后的部分。
//   - a.tar.gz -> a.tar
//   - .env 保持不变
func Stem(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrEmptyPath
	}
	base := filepath.Base(p)
	if base == "." || base == string(os.PathSeparator) {
		return "", fmt.Errorf("路径 '%s' 无有效基础名称", p)
	}
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base, nil
	}
	return base[:len(base)-len(ext)], nil
}

// EnsureExt 在路径不以 ext 结尾（忽略大小写）时追加 ext。
func EnsureExt(p, ext string) string {
	if strings.HasSuffix(strings.ToLower(p), strings.ToLower(ext)) {
		return p
	}
	return p + ext
}

// EnsureParent 创建 p 的父目录。
func EnsureParent(p string) error {
	dir := filepath.Dir(p)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
	}
	return nil
}

// Dirx 规范化路径；已存在的目录返回自身，带扩展名的路径视为文件并返回父目录，其余视为目录。
func Dirx(p string) (string, error) {
	norm, err := Resolve(p)
	if err != nil {
		return "", err
	}
	isDir, err := IsDir(norm)
	if err != nil {
		return "", err
	}
	if isDir {
		return norm, nil
	}
	if filepath.Ext(norm) != "" {
		return filepath.Dir(norm), nil
	}
	return norm, nil
}

// ReadFile 读取文件内容并返回其 SHA-256 十六进制摘要。
func ReadFile(path string) ([]byte, string, error) {
	norm, err := Resolve(path)
	if err != nil {
		return nil, "", err
	}
	content, err := os.ReadFile(norm)
	if err != nil {
		return nil, "", fmt.Errorf("无法读取文件 %s: %w", norm, err)
	}
	sum := sha256.Sum256(content)
	return content, hex.EncodeToString(sum[:]), nil
}

// WalkDir 遍历目录，按深度与扩展名过滤。
// maxDepth: -1 不限制；0 仅 root 下的文件；1 再加一层子目录，依此类推。
func WalkDir(root string, maxDepth int, sortResult bool, extensions []string) ([]string, error) {
	nRoot, err := Resolve(root)
	if err != nil {
		return nil, err
	}
	ok, err := IsDir(nRoot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("根路径不是目录: %s", nRoot)
	}
	allowed := extSet(extensions)

	type node struct {
		path  string
		depth int
	}
	stack := []node{{path: nRoot}}
	var files []string
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries, err := os.ReadDir(cur.path)
		if err != nil {
			return nil, fmt.Errorf("读取目录失败 %s: %w", cur.path, err)
		}
		for _, entry := range entries {
			full := filepath.Join(cur.path, entry.Name())
			if entry.IsDir() {
				if maxDepth < 0 || cur.depth < maxDepth {
					stack = append(stack, node{path: full, depth: cur.depth + 1})
				}
				continue
			}
			if matchExt(entry.Name(), allowed) {
				files = append(files, full)
			}
		}
	}
	if sortResult {
		stablePathSort(files)
	}
	return files, nil
}

// CollectFiles 从文件或目录混合输入中收集匹配扩展名的文件，结果去重。
// 不存在的输入被忽略；目录按 WalkDir 规则递归。
func CollectFiles(inputs []string, maxDepth int, extensions []string, sortResult bool) ([]string, error) {
	allowed := extSet(extensions)
	seen := make(map[string]struct{})
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		resolved, err := Resolve(in)
		if err != nil {
			return nil, fmt.Errorf("解析路径失败 '%s': %w", in, err)
		}
		exists, err := Exists(resolved)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		isDir, err := IsDir(resolved)
		if err != nil {
			return nil, err
		}
		if isDir {
			files, err := WalkDir(resolved, maxDepth, false, extensions)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				seen[f] = struct{}{}
			}
			continue
		}
		if matchExt(resolved, allowed) {
			seen[resolved] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	if sortResult {
		stablePathSort(out)
	}
	return out, nil
}

// extSet 归一化扩展名（小写、带点）；空集合表示不过滤。
func extSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = struct{}{}
	}
	return set
}

func matchExt(name string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// stablePathSort 主键为小写路径，次键为原值，保证跨平台顺序稳定。
func stablePathSort(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		ai, aj := strings.ToLower(paths[i]), strings.ToLower(paths[j])
		if ai == aj {
			return paths[i] < paths[j]
		}
		return ai < aj
	})
}
