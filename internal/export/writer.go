/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"errors"

	"poi2geo/internal/place"
)

var (
	// ErrMissingGeometry 表示单条导出的 POI 缺少多边形。
	ErrMissingGeometry = errors.New("当前POI缺少多边形坐标，无法导出")
	// ErrNothingToExport 表示批量导出中所有 POI 都缺少多边形。
	ErrNothingToExport = errors.New("选定的POI均缺少可用多边形，无法导出")
)

// Writer 是一种输出格式的写出器。
//   - Export 写出单个 POI，缺少几何时返回 ErrMissingGeometry；
//   - ExportBatch 写出多个 POI，缺少几何的记入 skipped 并继续，全部缺少时返回 ErrNothingToExport。
//
// 两者都返回实际写出的路径（可能补全了扩展名）。
type Writer interface {
	Export(p *place.PlaceDetail, path string) (string, error)
	ExportBatch(places []*place.PlaceDetail, path string) (string, []string, error)
}

// partition 按 HasGeometry 把记录分为可写出与跳过两部分，nil 记录直接忽略。
func partition(places []*place.PlaceDetail) ([]*place.PlaceDetail, []string) {
	valid := make([]*place.PlaceDetail, 0, len(places))
	var skipped []string
	for _, p := range places {
		if p == nil {
			continue
		}
		if !p.HasGeometry() {
			skipped = append(skipped, p.PoiID)
			continue
		}
		valid = append(valid, p)
	}
	return valid, skipped
}
