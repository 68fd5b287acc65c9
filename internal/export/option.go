/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"poi2geo/pkg/logger"
	"poi2geo/pkg/pathx"
)

// exportFormat 描述一种输出格式及其写出器
type exportFormat struct {
	Code      string // 格式代码 (GEOJSON / SHP)
	Extension string // 主文件扩展名
	Writer    Writer
}

var supportedFormats = map[string]exportFormat{
	"GEOJSON": {Code: "GEOJSON", Extension: ".geojson", Writer: GeoJSONWriter{}},
	"SHP":     {Code: "SHP", Extension: ".shp", Writer: ShapefileWriter{}},
}

// ExportConfig 汇集了从命令行接收到的所有导出参数。
type ExportConfig struct {
	InputPaths   []string
	Depth        int
	FormatKeys   []string
	OutputDir    string
	Merge        bool // 所有 POI 写入同一个文件，而不是每个 POI 一个文件
	NameTemplate string
	DryRun       bool
	Overwrite    bool
	ForceRefresh bool

	//派生
	Formats []exportFormat
}

const ProcessedFileName = ".processed"

// GetFormatDetails 根据格式键返回格式信息，支持常见别名（json、shapefile、.shp 等）。
func GetFormatDetails(key string) (exportFormat, error) {
	k := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(key), "."))
	switch k {
	case "JSON", "GEOJSON":
		k = "GEOJSON"
	case "SHAPE", "SHAPEFILE", "SHP":
		k = "SHP"
	}
	format, ok := supportedFormats[k]
	if !ok {
		return exportFormat{}, fmt.Errorf("不支持的输出格式: %s", key)
	}
	return format, nil
}

// Verify validates and normalizes the export configuration.
func (c *ExportConfig) Verify() error {
	// 1. 验证输入
	if len(c.InputPaths) == 0 {
		return errors.New("至少提供一个 --input / -i")
	}
	for i, input := range c.InputPaths {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			return fmt.Errorf("第 %d 个输入为空", i+1)
		}
		c.InputPaths[i] = trimmed
	}
	// 2. 验证递归深度
	if c.Depth < -1 {
		return errors.New("depth 不能小于 -1")
	}

	// 3. 验证并去重导出格式，默认 GeoJSON
	keys := c.FormatKeys
	if len(keys) == 0 {
		keys = []string{"GEOJSON"}
	}
	c.Formats = c.Formats[:0]
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		f, err := GetFormatDetails(key)
		if err != nil {
			return err
		}
		if _, dup := seen[f.Code]; dup {
			continue
		}
		seen[f.Code] = struct{}{}
		c.Formats = append(c.Formats, f)
	}

	// 4. 验证并规范化输出目录
	outputDir := strings.TrimSpace(c.OutputDir)
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("无法获取当前工作目录: %w", err)
		}
		logger.Log().Debug("未指定输出目录，使用当前目录", "dir", wd)
		outputDir = wd
	}
	resolved, err := pathx.Dirx(outputDir)
	if err != nil {
		return fmt.Errorf("无法解析输出目录 '%s': %w", outputDir, err)
	}
	c.OutputDir = resolved

	// 5. 名称模板：去掉用户误带的输出扩展名
	tmpl := strings.TrimSpace(c.NameTemplate)
	if tmpl == "" {
		tmpl = "{name}"
	}
	c.NameTemplate = trimFormatExt(tmpl)
	return nil
}

// trimFormatExt 去掉模板末尾的已知输出扩展名，其它点号（如日期布局）保持不变。
func trimFormatExt(tmpl string) string {
	lower := strings.ToLower(tmpl)
	for _, ext := range []string{".geojson", ".json", ".shp"} {
		if strings.HasSuffix(lower, ext) && len(tmpl) > len(ext) {
			return tmpl[:len(tmpl)-len(ext)]
		}
	}
	return tmpl
}

// Prepare 创建输出目录；dry-run 时不触碰文件系统。
func (c *ExportConfig) Prepare() error {
	if c.DryRun {
		logger.Log().Debug("已启用 --dry-run 模式, 将不会写入文件")
		return nil
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}

// ProcessFilePath 返回处理历史记录文件的完整路径
func (c *ExportConfig) ProcessFilePath() string {
	if c.DryRun {
		return ""
	}
	return filepath.Join(c.OutputDir, ProcessedFileName)
}

// FormatCodes 返回已验证格式的代码列表，用于日志。
func (c *ExportConfig) FormatCodes() []string {
	out := make([]string, len(c.Formats))
	for i, f := range c.Formats {
		out[i] = f.Code
	}
	return out
}
