/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"poi2geo/internal/env"
	"poi2geo/internal/export"
	"poi2geo/pkg/logger"
)

// 命令行参数变量
var (
	exportInputPaths   []string
	exportDepth        int
	exportFormatKeys   []string
	exportOutputDir    string
	exportMerge        bool
	exportNameTemplate string
	exportDryRun       bool
	exportOverwrite    bool
	exportForceRefresh bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export captured POI polygons to GeoJSON / Shapefile",
	Long: `读取抓取的 POI 详情响应（单个响应、响应数组或浏览器响应缓存），纠正为 WGS-84 后导出。

名称模板占位符:
  * {name}: POI 名称（为空时为 poiid）；合并模式下为 "poi_batch"。
  * {poiid}: POI 标识；{city}: 城市名称。
  * {index[:width]}: 当前序号，支持用 :width 指定补零宽度 (如 {index:03})。
  * {count}: 本次导出的 POI 总数。
  * {date[:layout]}: 当前日期，支持用 :layout 指定 Go 时间格式 (默认 20060102)。
  * {uuid}: 一个随机的 UUID v4 字符串。
  * {rand[:len]}: 一个随机的字母数字字符串，支持用 :len 指定长度 (默认 8 位)。

所有占位符都支持大小写修饰符，例如 {name:upper} 会将名称转换为大写。

模式:
  * 默认: 分散模式，每个 POI 生成一个独立的输出文件。
  * --merge: 合并模式，所有 POI 写入同一个文件；缺少多边形的 POI 会被跳过并列出。

示例:
  # 每个 POI 单独导出为 GeoJSON，输出名如 "001_故宫博物院.geojson"
  poi2geo export -i captures -o out --name "{index:000}_{name}" --dry-run

  # 合并导出为 GeoJSON 与 Shapefile，输出名为 "beijing_2025-10-29.*"
  poi2geo export -i cache.json -o out --merge --format GEOJSON --format SHP --name "beijing_{date:2006-01-02}"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		formats := exportFormatKeys
		if len(formats) == 0 {
			formats = env.List(env.KeyFormats)
		}
		outputDir := exportOutputDir
		if outputDir == "" {
			outputDir = env.String(env.KeyOutputDir, "")
		}
		exporter, err := export.NewExporter(export.ExportConfig{
			InputPaths:   exportInputPaths,
			Depth:        exportDepth,
			FormatKeys:   formats,
			OutputDir:    outputDir,
			Merge:        exportMerge,
			NameTemplate: exportNameTemplate,
			DryRun:       exportDryRun,
			Overwrite:    exportOverwrite,
			ForceRefresh: exportForceRefresh,
		})
		if err != nil {
			logger.Log().Error("创建导出器失败", "error", err)
			return fmt.Errorf("创建导出器失败: %w", err)
		}
		logger.Log().Debug("开始执行导出器")
		result, err := exporter.Execute()
		printSummary(cmd.OutOrStdout(), result)
		return err
	},
}

// printSummary 在标准输出打印导出结果：写出的文件、跳过的 POI 与失败数。
func printSummary(w io.Writer, result *export.Result) {
	if result == nil {
		return
	}
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed)

	for _, path := range result.Written {
		ok.Fprintf(w, "✔ %s\n", path)
	}
	if result.Unchanged > 0 {
		warn.Fprintf(w, "· %d 个目标已存在，未覆盖\n", result.Unchanged)
	}
	if len(result.Skipped) > 0 {
		warn.Fprintf(w, "以下POI缺少多边形，已跳过：%s\n", strings.Join(result.Skipped, ", "))
	}
	if result.Failed > 0 {
		bad.Fprintf(w, "✘ %d 个导出计划失败\n", result.Failed)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringArrayVarP(&exportInputPaths, "input", "i", nil, "输入文件或目录，可重复指定")
	exportCmd.Flags().IntVar(&exportDepth, "depth", -1, "递归深度：0=仅当前目录，正数=最大层级，-1=无限")
	exportCmd.Flags().StringArrayVar(&exportFormatKeys, "format", nil, "输出格式：GEOJSON|SHP，可重复指定，默认 GEOJSON")
	exportCmd.Flags().StringVarP(&exportOutputDir, "output", "o", "", "输出目录，默认当前目录")
	exportCmd.Flags().BoolVar(&exportMerge, "merge", false, "合并导出")
	exportCmd.Flags().StringVar(&exportNameTemplate, "name", "", "文件名模板，支持占位符 {name}{poiid}{city}{index}{count}{date}{uuid}{rand}")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "仅预览导出计划，不执行写入")
	exportCmd.Flags().BoolVar(&exportOverwrite, "overwrite", false, "允许覆盖已存在的目标文件")
	exportCmd.Flags().BoolVar(&exportForceRefresh, "force-refresh", false, "强制重新处理，忽视processed已存在的条目")

	_ = exportCmd.MarkFlagRequired("input")
}
