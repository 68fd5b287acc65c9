/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"

	"poi2geo/internal/capture"
	"poi2geo/internal/place"
	"poi2geo/pkg/charset"
	"poi2geo/pkg/logger"
	"poi2geo/pkg/pathx"
)

// loadPlaces 读取一个抓包文件并组装其中全部 POI，按出现顺序返回。
// 部分 payload 失败时只记录日志；全部失败时返回第一个错误。
func loadPlaces(path string) ([]*place.PlaceDetail, error) {
	content, _, err := pathx.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, _, err := charset.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("文件解码失败: %w", err)
	}
	stem, _ := pathx.Stem(path)
	payloads, err := capture.Load([]byte(text), path, stem)
	if err != nil {
		return nil, err
	}
	batch := place.NewBatch()
	failures := capture.Collect(payloads, batch)
	for _, f := range failures {
		logger.Log().Warn("payload 组装失败", "source", f.Source, "error", f.Err)
	}
	if batch.Len() == 0 && len(failures) > 0 {
		return nil, failures[0].Err
	}
	return batch.Snapshot(), nil
}

// selectPlace 按 poiid 选择 POI；poiid 为空时选第一个带几何的 POI，都没有则选第一个。
func selectPlace(places []*place.PlaceDetail, poiid string) (*place.PlaceDetail, error) {
	if len(places) == 0 {
		return nil, fmt.Errorf("文件中没有 POI")
	}
	if poiid != "" {
		for _, p := range places {
			if p.PoiID == poiid {
				return p, nil
			}
		}
		return nil, fmt.Errorf("未找到 poiid=%s", poiid)
	}
	for _, p := range places {
		if p.HasGeometry() {
			return p, nil
		}
	}
	return places[0], nil
}
