/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"poi2geo/internal/domain"
	"poi2geo/internal/place"
	"poi2geo/pkg/logger"
	"poi2geo/pkg/pathx"
)

var (
	previewWidth   float64
	previewHeight  float64
	previewPadding float64
	previewOutput  string
	previewPoiID   string
)

// previewCmd 把 POI 面渲染为 SVG 预览。
var previewCmd = &cobra.Command{
	Use:   "preview <payload>",
	Short: "Render a captured POI polygon as SVG",
	Long:  "读取抓包文件，将选中 POI 的面按等比缩放映射到画布并输出 SVG；未指定 -o 时写到标准输出。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		places, err := loadPlaces(args[0])
		if err != nil {
			return err
		}
		p, err := selectPlace(places, previewPoiID)
		if err != nil {
			return err
		}
		if !p.HasGeometry() {
			return fmt.Errorf("POI %s 缺少多边形，无法预览", p.PoiID)
		}

		if previewOutput == "" {
			return renderSVG(cmd.OutOrStdout(), p, previewWidth, previewHeight, previewPadding)
		}
		out, err := writeSVGFile(previewOutput, p, previewWidth, previewHeight, previewPadding)
		if err != nil {
			return err
		}
		logger.Log().Info("写出预览", "poiid", p.PoiID, "target", out)
		return nil
	},
}

// writeSVGFile 渲染到文件，缺少 .svg 扩展名时补全，返回实际写出的路径。
func writeSVGFile(path string, p *place.PlaceDetail, width, height, padding float64) (string, error) {
	out := pathx.EnsureExt(path, ".svg")
	if err := pathx.EnsureParent(out); err != nil {
		return "", err
	}
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("创建文件 %s 失败: %w", out, err)
	}
	defer f.Close()

	if err := renderSVG(f, p, width, height, padding); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("写入 SVG 失败: %w", err)
	}
	return out, nil
}

// renderSVG 以 evenodd 填充绘制所有环，洞会被镂空；代表点画为圆点。
func renderSVG(w io.Writer, p *place.PlaceDetail, width, height, padding float64) error {
	rings := domain.NormalizeRingsToView(p.Shape.Rings, width, height, padding)

	var d strings.Builder
	for _, ring := range rings {
		for i, pt := range ring {
			op := "L"
			if i == 0 {
				op = "M"
			}
			fmt.Fprintf(&d, "%s%.2f %.2f ", op, pt.X(), pt.Y())
		}
		d.WriteString("Z ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n", width, height, width, height)
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(strings.TrimSpace(p.Name+" "+p.PoiID)))
	fmt.Fprintf(&b, `  <path d="%s" fill="#3388ff" fill-opacity="0.35" fill-rule="evenodd" stroke="#3388ff" stroke-width="1.5"/>`+"\n", strings.TrimSpace(d.String()))
	if c, ok := centerInView(p, width, height, padding); ok {
		fmt.Fprintf(&b, `  <circle cx="%.2f" cy="%.2f" r="3" fill="#e4393c"/>`+"\n", c.X(), c.Y())
	}
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// centerInView 把代表点与环一起归一化，保证与面使用相同的缩放。
// 代表点落在面的包围盒外时不绘制，否则会改变缩放。
func centerInView(p *place.PlaceDetail, width, height, padding float64) (orb.Point, bool) {
	points := domain.FlattenRings(p.Shape.Rings)
	bound, ok := domain.Bounds(points)
	if !ok || !bound.Contains(p.Shape.Center) {
		return orb.Point{}, false
	}
	view := domain.NormalizeToView(append(points, p.Shape.Center), width, height, padding)
	return view[len(view)-1], true
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Float64Var(&previewWidth, "width", 480, "画布宽度（像素）")
	previewCmd.Flags().Float64Var(&previewHeight, "height", 360, "画布高度（像素）")
	previewCmd.Flags().Float64Var(&previewPadding, "padding", domain.DefaultPadding, "画布内边距（像素）")
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "输出 SVG 路径，默认标准输出")
	previewCmd.Flags().StringVar(&previewPoiID, "poiid", "", "文件含多个 POI 时选择的 poiid")
}
