/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"errors"
	"fmt"

	"poi2geo/internal/capture"
	"poi2geo/internal/place"
	"poi2geo/internal/process"
	"poi2geo/pkg/charset"
	"poi2geo/pkg/logger"
	"poi2geo/pkg/pathx"
)

// filterExtensions 是目录输入时收集的抓包文件扩展名。
var filterExtensions = []string{".json", ".txt"}

// ErrNoInputFiles 表示未找到任何可用于导出的输入文件。
var ErrNoInputFiles = errors.New("未找到可导出的输入文件")

type FileCache struct {
	Path    string
	Content []byte
	Hash    string
	Places  int // 成功放入捕捉集合的 POI 数
}

// Exporter 是负责执行整个导出流程的协调器。
type Exporter struct {
	Config    ExportConfig
	History   *process.History
	Batch     *place.Batch
	Sources   []FileCache
	UsedNames map[string]map[string]struct{} // 按格式记录已占用的文件名
}

// NewExporter 创建一个新的导出器实例。
func NewExporter(config ExportConfig) (*Exporter, error) {
	if err := config.Verify(); err != nil {
		return nil, fmt.Errorf("参数验证失败: %w", err)
	}
	if err := config.Prepare(); err != nil {
		return nil, fmt.Errorf("环境配置失败: %w", err)
	}
	history, err := process.NewHistory(config.ProcessFilePath())
	if err != nil {
		return nil, fmt.Errorf("无法初始化处理历史: %w", err)
	}
	return &Exporter{
		Config:    config,
		History:   history,
		Batch:     place.NewBatch(),
		UsedNames: make(map[string]map[string]struct{}),
	}, nil
}

// collectSources 收集输入文件并按内容摘要去重；已导出过的文件在非强制模式下跳过。
func (e *Exporter) collectSources() error {
	files, err := pathx.CollectFiles(e.Config.InputPaths, e.Config.Depth, filterExtensions, true)
	if err != nil {
		return fmt.Errorf("收集文件失败: %w", err)
	}
	if len(files) == 0 {
		return ErrNoInputFiles
	}

	var skipped int
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		content, hash, err := pathx.ReadFile(file)
		if err != nil {
			return fmt.Errorf("读取文件 %s 失败: %w", file, err)
		}
		if _, dup := seen[hash]; dup {
			logger.Log().Warn("跳过重复文件", "path", file)
			skipped++
			continue
		}
		if !e.Config.ForceRefresh && e.History.Seen(hash) {
			logger.Log().Warn("跳过已导出文件（使用 --force-refresh 重新导出）", "path", file)
			skipped++
			continue
		}
		seen[hash] = struct{}{}
		e.Sources = append(e.Sources, FileCache{Path: file, Content: content, Hash: hash})
	}
	logger.Log().Info("文件收集完成", "total", len(files), "processed", len(e.Sources), "skipped", skipped, "forceRefresh", e.Config.ForceRefresh)
	if len(e.Sources) == 0 {
		return ErrNoInputFiles
	}
	return nil
}

// loadSources 解码每个文件并把其中的 payload 组装进捕捉集合。
// 单个文件或 payload 失败只记录日志。
func (e *Exporter) loadSources() {
	var failed int
	for i := range e.Sources {
		src := &e.Sources[i]
		text, enc, err := charset.Decode(src.Content)
		if err != nil {
			logger.Log().Error("文件解码失败", "path", src.Path, "error", err)
			failed++
			continue
		}
		stem, _ := pathx.Stem(src.Path)
		payloads, err := capture.Load([]byte(text), src.Path, stem)
		if err != nil {
			logger.Log().Error("读取 payload 失败", "path", src.Path, "encoding", enc, "error", err)
			failed++
			continue
		}
		failures := capture.Collect(payloads, e.Batch)
		for _, f := range failures {
			logger.Log().Warn("payload 组装失败", "source", f.Source, "error", f.Err)
			failed++
		}
		src.Places = len(payloads) - len(failures)
	}
	logger.Log().Info("payload 组装完成", "places", e.Batch.Len(), "failed", failed)
}

// Execute 运行完整导出流程：收集 → 组装 → 计划 → 预览或写出 → 记录历史。
func (e *Exporter) Execute() (*Result, error) {
	logger.Log().Info("开始处理任务", "preview", e.Config.DryRun, "forceRefresh", e.Config.ForceRefresh)
	if err := e.collectSources(); err != nil {
		return nil, err
	}
	e.loadSources()

	places := e.Batch.Drain()
	if len(places) == 0 {
		return nil, fmt.Errorf("%w: 没有成功组装的 POI", ErrNoInputFiles)
	}

	plans := e.generatePlans(places)
	if e.Config.DryRun {
		e.previewPlans(plans)
		return &Result{Plans: len(plans)}, nil
	}

	result := e.executePlans(plans)
	logger.Log().Info("导出完成", "written", len(result.Written), "skipped", len(result.Skipped), "unchanged", result.Unchanged, "failed", result.Failed)
	if len(result.Skipped) > 0 {
		logger.Log().Warn("以下 POI 缺少多边形，已跳过", "poiids", result.Skipped)
	}

	if len(result.Written) == 0 {
		switch {
		case result.Failed > 0:
			return result, fmt.Errorf("全部 %d 个导出计划失败", result.Failed)
		case result.Unchanged == 0:
			return result, ErrNothingToExport
		}
		return result, nil
	}

	// 只记录贡献了 POI 的文件，解码或组装失败的文件下次仍会被处理
	hashes := make([]string, 0, len(e.Sources))
	for _, src := range e.Sources {
		if src.Places > 0 {
			hashes = append(hashes, src.Hash)
		}
	}
	if err := e.History.Record(hashes...); err != nil {
		return result, fmt.Errorf("记录处理历史失败: %w", err)
	}
	return result, nil
}
