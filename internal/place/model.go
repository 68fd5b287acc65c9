/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package place

import (
	"github.com/paulmach/orb"
)

// MiningShape 是挂在 POI 上的面几何，坐标已纠正为 WGS-84。
// 解析完成后不再修改。
type MiningShape struct {
	Rings  []orb.Ring     // 一个外环 + 零个或多个内环
	Level  int            // 细节级别，缺失或非法时为 0
	Center orb.Point      // 代表点
	Raw    map[string]any // 原始 mining_shape 片段，仅用于诊断回显
}

// PlaceDetail 表示一个 POI 记录。
type PlaceDetail struct {
	PoiID      string
	Name       string
	Classify   string
	Longitude  float64
	Latitude   float64
	Address    string
	Telephone  string
	CityName   string
	CityAdcode string
	Code       string
	Tag        string
	Shape      *MiningShape
	Metadata   map[string]any
	Raw        map[string]any
}

// HasGeometry 是判断“有无可导出几何”的唯一依据，导出方不得自行判断空值。
func (p *PlaceDetail) HasGeometry() bool {
	return p != nil && p.Shape != nil && len(p.Shape.Rings) > 0
}

// Properties 返回导出时附加的字符串属性。
func (p *PlaceDetail) Properties() map[string]string {
	return map[string]string{
		"name":      p.Name,
		"address":   p.Address,
		"telephone": p.Telephone,
		"poiid":     p.PoiID,
		"tag":       p.Tag,
		"city":      p.CityName,
	}
}
