/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"

	"poi2geo/internal/domain"
	"poi2geo/internal/place"
	"poi2geo/pkg/pathx"
)

// GeoJSONWriter 写出 UTF-8、缩进两格的 FeatureCollection。
type GeoJSONWriter struct{}

// Export 写出只含一个要素的 FeatureCollection。
func (GeoJSONWriter) Export(p *place.PlaceDetail, path string) (string, error) {
	if !p.HasGeometry() {
		return "", fmt.Errorf("%w: %s", ErrMissingGeometry, poiLabel(p))
	}
	fc := domain.ToFeatureCollection(placeFeature(p))
	if err := writeJSON(path, fc); err != nil {
		return "", err
	}
	return path, nil
}

// ExportBatch 把所有带几何的 POI 写入同一个 FeatureCollection。
func (GeoJSONWriter) ExportBatch(places []*place.PlaceDetail, path string) (string, []string, error) {
	valid, skipped := partition(places)
	if len(valid) == 0 {
		return "", skipped, ErrNothingToExport
	}
	features := make([]*geojson.Feature, 0, len(valid))
	for _, p := range valid {
		features = append(features, placeFeature(p))
	}
	if err := writeJSON(path, domain.ToFeatureCollection(features...)); err != nil {
		return "", skipped, err
	}
	return path, skipped, nil
}

func placeFeature(p *place.PlaceDetail) *geojson.Feature {
	f := domain.ToPolygonFeature(p.Shape.Rings, p.Properties())
	if p.PoiID != "" {
		f.ID = p.PoiID
	}
	return f
}

func writeJSON(path string, fc *geojson.FeatureCollection) error {
	if err := pathx.EnsureParent(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建文件 %s 失败: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("写入 GeoJSON 失败: %w", err)
	}
	return f.Close()
}

// poiLabel 返回日志与错误信息中标识 POI 的文本。
func poiLabel(p *place.PlaceDetail) string {
	if p == nil {
		return "<nil>"
	}
	if p.Name != "" {
		return fmt.Sprintf("%s(%s)", p.Name, p.PoiID)
	}
	return p.PoiID
}
