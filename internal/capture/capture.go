/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"poi2geo/internal/place"
	"poi2geo/pkg/logger"
)

// detailPath 是网页端 POI 详情接口路径片段，只有该接口的响应会被当作 payload。
const detailPath = "detail/get/detail"

// ErrEmptyInput 表示输入中没有任何可用 payload。
var ErrEmptyInput = errors.New("no payload found in input")

// Payload 是一份待组装的原始响应。
type Payload struct {
	Source     string          // 来源（文件路径，或 文件路径#序号）
	FallbackID string          // 响应缺少 poiid 时使用的标识
	Body       json.RawMessage // 原始响应 JSON
}

// cacheEntry 是浏览器钩子缓存的一条响应记录。
type cacheEntry struct {
	URL  string `json:"url"`
	Body string `json:"body"`
	TS   int64  `json:"ts"`
}

// Load 从文件内容中提取 payload，支持三种形态：
//   - 单个响应对象；
//   - 响应对象数组；
//   - 浏览器响应缓存数组（元素含 url/body/ts），仅保留详情接口，按 id 取 ts 最新的一条。
//
// stem 作为对象/数组形态的后备标识。
func Load(content []byte, source, stem string) ([]Payload, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, ErrEmptyInput
	}
	switch trimmed[0] {
	case '{':
		return []Payload{{Source: source, FallbackID: stem, Body: json.RawMessage(trimmed)}}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("解析 JSON 数组失败: %w", err)
		}
		if isCacheDump(items) {
			return fromCache(items, source)
		}
		out := make([]Payload, 0, len(items))
		for i, item := range items {
			out = append(out, Payload{Source: fmt.Sprintf("%s#%d", source, i), FallbackID: stem, Body: item})
		}
		if len(out) == 0 {
			return nil, ErrEmptyInput
		}
		return out, nil
	default:
		return nil, fmt.Errorf("无法识别的 payload 格式: %s", source)
	}
}

// isCacheDump 以首个元素是否带 url 与 body 字段判断是否为响应缓存。
func isCacheDump(items []json.RawMessage) bool {
	if len(items) == 0 {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &probe); err != nil {
		return false
	}
	_, hasURL := probe["url"]
	_, hasBody := probe["body"]
	_, hasStatus := probe["status"]
	return hasURL && hasBody && !hasStatus
}

func fromCache(items []json.RawMessage, source string) ([]Payload, error) {
	latest := make(map[string]cacheEntry)
	for i, raw := range items {
		var e cacheEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			logger.Log().Debug("跳过无法解析的缓存记录", "source", source, "index", i, "error", err)
			continue
		}
		id, ok := detailID(e.URL)
		if !ok || strings.TrimSpace(e.Body) == "" {
			continue
		}
		if prev, seen := latest[id]; !seen || e.TS >= prev.TS {
			latest[id] = e
		}
	}
	if len(latest) == 0 {
		return nil, ErrEmptyInput
	}
	ids := make([]string, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return latest[ids[i]].TS < latest[ids[j]].TS })

	out := make([]Payload, 0, len(ids))
	for _, id := range ids {
		out = append(out, Payload{
			Source:     fmt.Sprintf("%s#%s", source, id),
			FallbackID: id,
			Body:       json.RawMessage(latest[id].Body),
		})
	}
	return out, nil
}

// detailID 从详情接口 URL 中取出 id 查询参数。
func detailID(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.Contains(u.Path, detailPath) {
		return "", false
	}
	id := strings.TrimSpace(u.Query().Get("id"))
	return id, id != ""
}

// Failure 记录单个 payload 组装失败的原因。
type Failure struct {
	Source string
	Err    error
}

// Collect 逐个组装 payload 并放入捕捉集合。单个失败不影响其它 payload。
func Collect(payloads []Payload, batch *place.Batch) []Failure {
	var failures []Failure
	for _, pl := range payloads {
		p, err := place.Assemble(pl.Body, pl.FallbackID)
		if err != nil {
			failures = append(failures, Failure{Source: pl.Source, Err: err})
			continue
		}
		if !batch.Put(p) {
			logger.Log().Debug("重复 POI，使用最新记录", "poiid", p.PoiID, "source", pl.Source)
		}
	}
	return failures
}
