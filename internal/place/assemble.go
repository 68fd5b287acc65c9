/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package place

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"poi2geo/internal/domain"

	"github.com/paulmach/orb"
)

// StatusOK 是上游响应成功时 status 字段的字面值。
const StatusOK = "1"

// ErrUpstreamFailure 表示上游响应的 status 不是成功标记。
var ErrUpstreamFailure = errors.New("unsuccessful upstream response")

// Assemble 解析原始响应文本并组装 PlaceDetail。
// fallbackID 仅在响应中没有 poiid 时使用。
func Assemble(payload []byte, fallbackID string) (*PlaceDetail, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("解析响应 JSON 失败: %w", err)
	}
	return AssembleMap(root, fallbackID)
}

// AssembleMap 从已解码的响应组装 PlaceDetail：
//  1. status 不等于 StatusOK 时返回 ErrUpstreamFailure；
//  2. data.base 提供标识与地址字段，data.spec.mining_shape 提供几何，缺失的子对象按空对象处理；
//  3. shape 解析后逐点做 GCJ-02 → WGS-84 纠正；
//  4. center 可解析时同样纠正后作为代表点，否则取纠正后的首点；
//  5. level 解析失败或缺失记为 0，不影响整体组装。
func AssembleMap(payload map[string]any, fallbackID string) (*PlaceDetail, error) {
	if status := asString(payload["status"]); status != StatusOK {
		return nil, fmt.Errorf("%w: status=%q", ErrUpstreamFailure, status)
	}
	data := asMap(payload["data"])
	base := asMap(data["base"])
	spec := asMap(data["spec"])
	rawShape := asMap(spec["mining_shape"])

	p := &PlaceDetail{
		PoiID:      firstNonEmpty(asString(base["poiid"]), fallbackID),
		Name:       asString(base["name"]),
		Classify:   asString(base["classify"]),
		Address:    asString(base["address"]),
		Telephone:  asString(base["telephone"]),
		CityName:   asString(base["city_name"]),
		CityAdcode: asString(base["city_adcode"]),
		Code:       asString(base["code"]),
		Tag:        firstNonEmpty(asString(base["tag"]), asString(base["new_keytype"])),
		Shape:      buildShape(rawShape),
		Metadata: map[string]any{
			"classify": base["classify"],
			"title":    base["title"],
			"business": base["business"],
		},
		Raw: data,
	}

	if pt, ok := basePoint(base); ok {
		p.Longitude, p.Latitude = pt[0], pt[1]
	} else if p.Shape != nil {
		p.Longitude, p.Latitude = p.Shape.Center[0], p.Shape.Center[1]
	}
	return p, nil
}

// buildShape 无可用环时返回 nil。
func buildShape(raw map[string]any) *MiningShape {
	gcjRings := domain.ParseShapeRings(asString(raw["shape"]))
	if len(gcjRings) == 0 {
		return nil
	}
	rings := domain.ConvertRings(gcjRings)

	center := rings[0][0]
	if text, ok := raw["center"].(string); ok {
		if pt, ok := domain.ParsePoint(text); ok {
			center = domain.ConvertPoint(pt)
		}
	}
	return &MiningShape{
		Rings:  rings,
		Level:  asInt(raw["level"]),
		Center: center,
		Raw:    raw,
	}
}

// basePoint 读取 base.x / base.y（GCJ-02）并纠正。
func basePoint(base map[string]any) (orb.Point, bool) {
	x, errX := strconv.ParseFloat(strings.TrimSpace(asString(base["x"])), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(asString(base["y"])), 64)
	if errX != nil || errY != nil {
		return orb.Point{}, false
	}
	return domain.ConvertPoint(orb.Point{x, y}), true
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// asInt 接受整数、数字字符串；JSON 小数截断取整；其余一律为 0。
func asInt(v any) int {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return truncate(f)
		}
	case float64:
		return truncate(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
