/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// DefaultPadding 预览画布四周留白（像素）。
const DefaultPadding = 10.0

// minSpan 外包框跨度下限，避免单点或退化线段导致除零。
const minSpan = 1e-6

// FlattenRings 把所有环的点按顺序展开成一个点序列。
func FlattenRings(rings []orb.Ring) []orb.Point {
	n := 0
	for _, r := range rings {
		n += len(r)
	}
	out := make([]orb.Point, 0, n)
	for _, r := range rings {
		out = append(out, r...)
	}
	return out
}

// Bounds 计算点序列的外包框，空输入返回 false。
func Bounds(points []orb.Point) (orb.Bound, bool) {
	if len(points) == 0 {
		return orb.Bound{}, false
	}
	return orb.MultiPoint(points).Bound(), true
}

// NormalizeToView 将地理坐标映射到 width×height 的像素画布：
//   - 横纵使用同一缩放比例（取两者较小值），保持长宽比；
//   - 跨度为 0 时按 minSpan 计算；
//   - Y 轴翻转，纬度向上而像素行向下。
//
// 空输入返回 nil，调用方应视为“无可绘制内容”。
func NormalizeToView(points []orb.Point, width, height, padding float64) []orb.Point {
	bound, ok := Bounds(points)
	if !ok {
		return nil
	}
	spanX := math.Max(bound.Max[0]-bound.Min[0], minSpan)
	spanY := math.Max(bound.Max[1]-bound.Min[1], minSpan)
	scale := math.Min((width-2*padding)/spanX, (height-2*padding)/spanY)

	out := make([]orb.Point, len(points))
	for i, p := range points {
		x := padding + (p[0]-bound.Min[0])*scale
		y := height - (padding + (p[1]-bound.Min[1])*scale)
		out[i] = orb.Point{x, y}
	}
	return out
}

// NormalizeRingsToView 与 NormalizeToView 相同，但保留环结构，
// 所有环共用同一外包框和缩放比例。
func NormalizeRingsToView(rings []orb.Ring, width, height, padding float64) []orb.Ring {
	flat := NormalizeToView(FlattenRings(rings), width, height, padding)
	if flat == nil {
		return nil
	}
	out := make([]orb.Ring, 0, len(rings))
	offset := 0
	for _, r := range rings {
		out = append(out, orb.Ring(flat[offset:offset+len(r)]))
		offset += len(r)
	}
	return out
}

// OrientRings 返回按 Shapefile 约定定向的环副本：首环（外环）顺时针，其余（洞）逆时针。
// 少于 4 个点的环面积无意义，保持原样。
func OrientRings(rings []orb.Ring) []orb.Ring {
	out := make([]orb.Ring, len(rings))
	for i, ring := range rings {
		r := ring.Clone()
		if len(r) >= 4 {
			want := orb.CCW
			if i == 0 {
				want = orb.CW
			}
			if r.Orientation() != want {
				r.Reverse()
			}
		}
		out[i] = r
	}
	return out
}
