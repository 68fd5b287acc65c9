/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"poi2geo/internal/domain"
	"poi2geo/internal/env"
	"poi2geo/pkg/charset"
	"poi2geo/pkg/pathx"
)

const shapeUsage = "用法: poi2geo shape <geojson> [--feature-index N] [--precision P] [--keep-open]"

var (
	shapeFeatureIndex int
	shapePrecision    int
	shapeKeepOpen     bool
)

// shapeCmd 把 GeoJSON 中的一个面要素转换回高德形状串。
var shapeCmd = &cobra.Command{
	Use:   "shape <geojson>",
	Short: "Convert a GeoJSON polygon feature to a shape string",
	Long: `读取 GeoJSON（FeatureCollection 或单个 Feature），把指定要素的 Polygon / MultiPolygon
编码为形状串输出到标准输出：环内顶点以 ";" 分隔，环之间以 "@" 分隔。

--feature-index 超出范围时会被夹取到 [0, 要素数-1]；--precision 小于 0 时按 0 处理。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), shapeUsage)
			return nil
		}
		precision := shapePrecision
		if !cmd.Flags().Changed("precision") {
			precision = env.Int(env.KeyPrecision, precision)
		}
		return runShape(cmd.OutOrStdout(), args[0], shapeFeatureIndex, precision, !shapeKeepOpen)
	},
}

// runShape 读取 GeoJSON 文件并把选中要素的形状串写入 w。
func runShape(w io.Writer, path string, index, precision int, closeRings bool) error {
	content, _, err := pathx.ReadFile(path)
	if err != nil {
		return err
	}
	text, _, err := charset.Decode(content)
	if err != nil {
		return fmt.Errorf("文件解码失败: %w", err)
	}
	fc, err := domain.ReadFeatureCollection([]byte(text))
	if err != nil {
		return err
	}
	if len(fc.Features) == 0 {
		return errors.New("GeoJSON 文件中没有任何 Feature")
	}
	index = max(0, min(index, len(fc.Features)-1))
	shape, err := domain.FeatureToShape(fc.Features[index], max(0, precision), closeRings)
	if err != nil {
		return fmt.Errorf("要素 %d: %w", index, err)
	}
	_, err = fmt.Fprintln(w, shape)
	return err
}

func init() {
	rootCmd.AddCommand(shapeCmd)

	shapeCmd.Flags().IntVar(&shapeFeatureIndex, "feature-index", 0, "要转换的要素序号（从 0 开始）")
	shapeCmd.Flags().IntVar(&shapePrecision, "precision", domain.DefaultPrecision, "坐标保留的小数位数")
	shapeCmd.Flags().BoolVar(&shapeKeepOpen, "keep-open", false, "不在环末尾追加起点")
}
