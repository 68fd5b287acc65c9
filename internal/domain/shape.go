/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// 形状串（shape string）格式:
//
//	lon,lat;lon,lat;...@lon,lat;lon,lat;...
//
// "@" 分隔环，";" 分隔顶点，顶点内部以 "," 分隔经度与纬度。
const (
	ringSep   = "@"
	vertexSep = ";"
	coordSep  = ","
)

// DefaultPrecision 形状串输出的默认小数位数。
const DefaultPrecision = 6

// ParseShapeRings 将形状串解析为环列表。
// 解析原则（上游编码偶有噪声，因此宽松处理）：
//  1. 空白环段、空白顶点段直接跳过；
//  2. 不能拆成恰好两个数值字段的顶点静默丢弃；
//  3. 非空环若首尾不同，则追加首点闭合；
//  4. 丢弃顶点后为空的环不出现在结果中。
//
// 空串或全空白输入返回空切片（非 nil）。
func ParseShapeRings(text string) []orb.Ring {
	rings := make([]orb.Ring, 0, 1)
	if strings.TrimSpace(text) == "" {
		return rings
	}
	for _, rawRing := range strings.Split(text, ringSep) {
		ring := parseRing(rawRing)
		if len(ring) == 0 {
			continue
		}
		rings = append(rings, closeRing(ring))
	}
	return rings
}

// ParseShape 只取第一个环，供只关心单环的调用方使用。无环时返回空环。
func ParseShape(text string) orb.Ring {
	rings := ParseShapeRings(text)
	if len(rings) == 0 {
		return orb.Ring{}
	}
	return rings[0]
}

func parseRing(raw string) orb.Ring {
	var ring orb.Ring
	for _, pair := range strings.Split(raw, vertexSep) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		pt, ok := ParsePoint(pair)
		if !ok {
			continue
		}
		ring = append(ring, pt)
	}
	return ring
}

// ParsePoint 解析 "lon,lat" 形式的单点，字段数不为 2 或无法解析为数字时返回 false。
func ParsePoint(s string) (orb.Point, bool) {
	parts := strings.Split(s, coordSep)
	if len(parts) != 2 {
		return orb.Point{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, false
	}
	return orb.Point{lon, lat}, true
}

// FormatShape 将环列表序列化为形状串。
//   - precision: 小数位数，小于 0 时按 0 处理；
//   - closeRings: true 时补齐未闭合的环，false 时去掉已闭合环末尾的重复首点。
//
// 空环不输出。
func FormatShape(rings []orb.Ring, precision int, closeRings bool) string {
	parts := make([]string, 0, len(rings))
	for _, ring := range rings {
		if text := FormatRing(ring, precision, closeRings); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ringSep)
}

// FormatRing 序列化单个环，规则同 FormatShape。
func FormatRing(ring orb.Ring, precision int, closeRing bool) string {
	if len(ring) == 0 {
		return ""
	}
	if precision < 0 {
		precision = 0
	}
	pts := ring
	// orb 的 Ring.Closed 要求至少 4 个点，这里只比较首尾
	closed := ring[0] == ring[len(ring)-1]
	switch {
	case closeRing && !closed:
		pts = append(append(orb.Ring{}, ring...), ring[0])
	case !closeRing && closed && len(ring) > 1:
		pts = ring[:len(ring)-1]
	}

	var builder strings.Builder
	// 每个点约两个坐标加分隔符
	builder.Grow(len(pts) * (precision*2 + 10))
	for i, p := range pts {
		if i > 0 {
			builder.WriteString(vertexSep)
		}
		builder.WriteString(strconv.FormatFloat(p[0], 'f', precision, 64))
		builder.WriteString(coordSep)
		builder.WriteString(strconv.FormatFloat(p[1], 'f', precision, 64))
	}
	return builder.String()
}

// closeRing 首尾不同则补首点。
func closeRing(ring orb.Ring) orb.Ring {
	n := len(ring)
	if n == 0 {
		return ring
	}
	if ring[0] != ring[n-1] {
		return append(ring, ring[0])
	}
	return ring
}
