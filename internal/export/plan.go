/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"poi2geo/internal/place"
	"poi2geo/internal/util"
	"poi2geo/pkg/logger"
	"poi2geo/pkg/namex"
	"poi2geo/pkg/pathx"
)

const defaultMergeName = "poi_batch"

// ExportPlan 定义了单个导出任务的源和目标。
type ExportPlan struct {
	Places     []*place.PlaceDetail
	Format     exportFormat
	OutputPath string
	Merge      bool // true 时走 ExportBatch
}

// source 返回用于日志展示的来源属性。
func (p ExportPlan) source() slog.Attr {
	if p.Merge {
		return slog.Int("places", len(p.Places))
	}
	if len(p.Places) == 1 && p.Places[0] != nil {
		return slog.String("poi", poiLabel(p.Places[0]))
	}
	return slog.Attr{}
}

// Result 汇总一次导出的结果。
type Result struct {
	Plans     int
	Written   []string // 实际写出的文件
	Skipped   []string // 因缺少多边形被跳过的 poiid（去重、排序）
	Unchanged int      // 目标已存在且未启用覆盖
	Failed    int
}

// generatePlans 根据模式（合并/分散）为每种输出格式生成导出计划。
func (e *Exporter) generatePlans(places []*place.PlaceDetail) []ExportPlan {
	type item struct {
		places []*place.PlaceDetail
		ctx    nameContext
	}
	now := time.Now()
	var items []item
	if e.Config.Merge {
		items = append(items, item{places: places, ctx: nameContext{Name: defaultMergeName, Index: 1, Count: 1, Now: now}})
	} else {
		for i, p := range places {
			items = append(items, item{
				places: []*place.PlaceDetail{p},
				ctx:    nameContext{Name: p.Name, PoiID: p.PoiID, City: p.CityName, Index: i + 1, Count: len(places), Now: now},
			})
		}
	}

	if e.UsedNames == nil {
		e.UsedNames = make(map[string]map[string]struct{})
	}
	plans := make([]ExportPlan, 0, len(items)*len(e.Config.Formats))
	for _, format := range e.Config.Formats {
		used := e.UsedNames[format.Code]
		if used == nil {
			used = make(map[string]struct{})
			e.UsedNames[format.Code] = used
		}
		for _, it := range items {
			name := namex.Sanitize(renderNameTemplate(e.Config.NameTemplate, it.ctx), used)
			plans = append(plans, ExportPlan{
				Places:     it.places,
				Format:     format,
				OutputPath: filepath.Join(e.Config.OutputDir, name+format.Extension),
				Merge:      e.Config.Merge,
			})
		}
	}
	return plans
}

func progressLabel(i, total int) string {
	width := util.IntDigits(total)
	return fmt.Sprintf("%12s", fmt.Sprintf("[%0*d/%d]", width, i+1, total))
}

// previewPlans 打印导出计划的预览信息。
func (e *Exporter) previewPlans(plans []ExportPlan) {
	total := len(plans)
	logger.Log().Info("预览导出计划", "merge", e.Config.Merge, "totalPlans", total, "formats", e.Config.FormatCodes())
	for i, plan := range plans {
		logger.Log().Info(progressLabel(i, total), plan.source(), "format", plan.Format.Code, "target", plan.OutputPath)
	}
}

// executePlans 实际执行所有导出任务。单个计划失败只记录，不中断其它计划。
func (e *Exporter) executePlans(plans []ExportPlan) *Result {
	total := len(plans)
	logger.Log().Info("执行导出计划", "merge", e.Config.Merge, "totalPlans", total, "formats", e.Config.FormatCodes())

	result := &Result{Plans: total}
	skipped := make(map[string]struct{})
	for i, plan := range plans {
		progress := progressLabel(i, total)
		if !e.Config.Overwrite {
			if exists, _ := pathx.Exists(plan.OutputPath); exists {
				logger.Log().Warn(progress+" 目标已存在，跳过（使用 --overwrite 覆盖）", "target", plan.OutputPath)
				result.Unchanged++
				continue
			}
		}

		var (
			out  string
			miss []string
			err  error
		)
		if plan.Merge {
			out, miss, err = plan.Format.Writer.ExportBatch(plan.Places, plan.OutputPath)
		} else {
			out, err = plan.Format.Writer.Export(plan.Places[0], plan.OutputPath)
			if errors.Is(err, ErrMissingGeometry) {
				miss = []string{plan.Places[0].PoiID}
			}
		}
		for _, id := range miss {
			skipped[id] = struct{}{}
		}

		switch {
		case errors.Is(err, ErrMissingGeometry), errors.Is(err, ErrNothingToExport):
			logger.Log().Warn(progress+" 缺少多边形，跳过", plan.source(), "format", plan.Format.Code)
		case err != nil:
			logger.Log().Error(progress+" 导出失败", plan.source(), "target", plan.OutputPath, "error", err)
			result.Failed++
		default:
			if len(miss) > 0 {
				logger.Log().Warn("部分 POI 缺少多边形，已跳过", "poiids", miss)
			}
			logger.Log().Info(progress, plan.source(), "format", plan.Format.Code, "target", out)
			result.Written = append(result.Written, out)
		}
	}

	for id := range skipped {
		result.Skipped = append(result.Skipped, id)
	}
	sort.Strings(result.Skipped)
	return result
}
