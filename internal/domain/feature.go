/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrUnsupportedGeometry 表示几何类型既不是 Polygon 也不是 MultiPolygon。
var ErrUnsupportedGeometry = errors.New("only Polygon or MultiPolygon geometries are supported")

// ToFeature 用单个外环构建 Polygon 要素，属性原样附加。
func ToFeature(ring orb.Ring, props map[string]string) *geojson.Feature {
	return ToPolygonFeature([]orb.Ring{ring}, props)
}

// ToPolygonFeature 用多个环构建 Polygon 要素：首环为外环，其余为洞。
func ToPolygonFeature(rings []orb.Ring, props map[string]string) *geojson.Feature {
	poly := make(orb.Polygon, len(rings))
	copy(poly, rings)
	f := geojson.NewFeature(poly)
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

// ToFeatureCollection 将要素包装为 FeatureCollection。
func ToFeatureCollection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

// FromFeature 从要素中取出环列表。
// Polygon 直接返回其环；MultiPolygon 将各多边形的环按顺序展开；其它类型返回 ErrUnsupportedGeometry。
func FromFeature(f *geojson.Feature) ([]orb.Ring, error) {
	if f == nil || f.Geometry == nil {
		return nil, fmt.Errorf("%w: got empty geometry", ErrUnsupportedGeometry)
	}
	switch geom := f.Geometry.(type) {
	case orb.Polygon:
		rings := make([]orb.Ring, len(geom))
		copy(rings, geom)
		return rings, nil
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, poly := range geom {
			rings = append(rings, poly...)
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedGeometry, geom.GeoJSONType())
	}
}

// FeatureToShape 将要素几何转为形状串。
func FeatureToShape(f *geojson.Feature, precision int, closeRings bool) (string, error) {
	rings, err := FromFeature(f)
	if err != nil {
		return "", err
	}
	return FormatShape(rings, precision, closeRings), nil
}

// ReadFeatureCollection 解析 GeoJSON 文本。顶层为单个 Feature 时包装为只含一个要素的集合。
func ReadFeatureCollection(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("invalid FeatureCollection: %w", err)
		}
		return fc, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("invalid Feature: %w", err)
		}
		return ToFeatureCollection(f), nil
	default:
		return nil, fmt.Errorf("unexpected GeoJSON type %q", head.Type)
	}
}
