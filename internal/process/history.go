/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package process

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"poi2geo/pkg/logger"
)

// History 记录已成功导出的 payload 文件摘要，避免重复导出同一份抓包。
// 一行一个 SHA-256；path 为空时仅在内存中生效。
type History struct {
	path string
	seen map[string]struct{}
	mu   sync.RWMutex
}

// NewHistory 创建 History 并加载已有记录；记录文件不存在视为空历史。
func NewHistory(path string) (*History, error) {
	h := &History{path: path, seen: make(map[string]struct{})}
	if path == "" {
		return h, nil
	}
	if err := h.load(); err != nil {
		return nil, err
	}
	logger.Log().Debug("处理历史加载完成", "file", path, "count", len(h.seen))
	return h, nil
}

// Seen 报告摘要是否已被记录。
func (h *History) Seen(hash string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.seen[hash]
	return ok
}

// Len 返回已记录的摘要数量。
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.seen)
}

// Record 追加新摘要；已存在或为空的摘要被忽略。导出成功后才调用。
func (h *History) Record(hashes ...string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fresh := make([]string, 0, len(hashes))
	for _, hash := range hashes {
		if hash == "" {
			continue
		}
		if _, ok := h.seen[hash]; ok {
			continue
		}
		h.seen[hash] = struct{}{}
		fresh = append(fresh, hash)
	}
	if len(fresh) == 0 || h.path == "" {
		return nil
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("无法打开 %s 进行写入: %w", h.path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(fresh, "\n") + "\n"); err != nil {
		return fmt.Errorf("无法写入 %s: %w", h.path, err)
	}
	logger.Log().Debug("记录新摘要", "count", len(fresh))
	return nil
}

func (h *History) load() error {
	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("无法打开 %s: %w", h.path, err)
	}
	defer file.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.seen[line] = struct{}{}
		}
	}
	return scanner.Err()
}
