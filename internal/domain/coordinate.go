/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// CoordinateSystem 描述导出文件携带的坐标系信息。
type CoordinateSystem struct {
	Name string // 坐标系名称
	EPSG int    // EPSG 代码
	WKT  string // ESRI Well Known Text，写入 .prj
}

// WGS84 是所有导出结果使用的坐标系；GCJ-02 坐标只在解析阶段短暂存在。
var WGS84 = CoordinateSystem{
	Name: "WGS 84",
	EPSG: 4326,
	WKT: `GEOGCS["WGS 84",` +
		`DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],` +
		`PRIMEM["Greenwich",0],` +
		`UNIT["degree",0.0174532925199433]]`,
}

// GCJ-02 偏移参数（克拉索夫斯基椭球）。数值必须原样保留。
const (
	Krasovsky = 6378245.0
	EE        = 0.00669342162296594323
)

// 中国大陆外包框；框外 GCJ-02 与 WGS-84 视为同一坐标。
const (
	chinaMinLon = 72.004
	chinaMaxLon = 137.8347
	chinaMinLat = 0.8293
	chinaMaxLat = 55.8271
)

// OutOfChina 判断点是否落在中国大陆外包框之外（边界视为框内）。
func OutOfChina(lon, lat float64) bool {
	return !(lon >= chinaMinLon && lon <= chinaMaxLon && lat >= chinaMinLat && lat <= chinaMaxLat)
}

func transformLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

func transformLon(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}

// GCJ02ToWGS84 将 GCJ-02 坐标纠正为 WGS-84。框外输入原样返回。
// 先按 GCJ-02 正向偏移得到 (mgLon, mgLat)，再从原点减去该偏移。
func GCJ02ToWGS84(lon, lat float64) (float64, float64) {
	if OutOfChina(lon, lat) {
		return lon, lat
	}
	dLat := transformLat(lon-105.0, lat-35.0)
	dLon := transformLon(lon-105.0, lat-35.0)
	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - EE*magic*magic
	sqrtMagic := math.Sqrt(magic)
	dLat = (dLat * 180.0) / ((Krasovsky * (1 - EE)) / (magic * sqrtMagic) * math.Pi)
	dLon = (dLon * 180.0) / (Krasovsky / sqrtMagic * math.Cos(radLat) * math.Pi)
	mgLat := lat + dLat
	mgLon := lon + dLon
	return lon - (mgLon - lon), lat - (mgLat - lat)
}

// ConvertPoint 对单点执行 GCJ02ToWGS84。
func ConvertPoint(p orb.Point) orb.Point {
	lon, lat := GCJ02ToWGS84(p[0], p[1])
	return orb.Point{lon, lat}
}

// ConvertRing 逐点纠正，返回新环，点数与顺序不变。
func ConvertRing(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[i] = ConvertPoint(p)
	}
	return out
}

// ConvertRings 逐环纠正。
func ConvertRings(rings []orb.Ring) []orb.Ring {
	out := make([]orb.Ring, len(rings))
	for i, ring := range rings {
		out[i] = ConvertRing(ring)
	}
	return out
}
