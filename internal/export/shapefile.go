/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"poi2geo/internal/domain"
	"poi2geo/internal/place"
	"poi2geo/pkg/charset"
	"poi2geo/pkg/pathx"
)

// shapeField 描述一个 DBF 字符字段及其在 PlaceDetail 上的取值。
type shapeField struct {
	name  string
	size  uint8
	value func(*place.PlaceDetail) string
}

var shapeFields = []shapeField{
	{"name", 80, func(p *place.PlaceDetail) string { return p.Name }},
	{"address", 120, func(p *place.PlaceDetail) string { return p.Address }},
	{"telephone", 40, func(p *place.PlaceDetail) string { return p.Telephone }},
	{"poiid", 32, func(p *place.PlaceDetail) string { return p.PoiID }},
}

// ShapefileCodePage 写入 .cpg，属性按此编码存储。
const ShapefileCodePage = "GBK"

// ShapefileWriter 用 go-shp 写出 POLYGON 图层，附带 .cpg 与 WGS-84 .prj。
type ShapefileWriter struct{}

// Export 写出单个 POI。路径缺少 .shp 扩展名时自动补全。
func (w ShapefileWriter) Export(p *place.PlaceDetail, path string) (string, error) {
	if !p.HasGeometry() {
		return "", fmt.Errorf("%w: %s", ErrMissingGeometry, poiLabel(p))
	}
	return w.write([]*place.PlaceDetail{p}, path)
}

// ExportBatch 把所有带几何的 POI 写入同一个图层。
func (w ShapefileWriter) ExportBatch(places []*place.PlaceDetail, path string) (string, []string, error) {
	valid, skipped := partition(places)
	if len(valid) == 0 {
		return "", skipped, ErrNothingToExport
	}
	out, err := w.write(valid, path)
	return out, skipped, err
}

func (ShapefileWriter) write(places []*place.PlaceDetail, path string) (string, error) {
	path = pathx.EnsureExt(path, ".shp")
	// go-shp 固定以 .shp 结尾生成三件套
	base := path[:len(path)-len(".shp")]
	path = base + ".shp"
	if err := pathx.EnsureParent(path); err != nil {
		return "", err
	}

	writer, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return "", fmt.Errorf("创建 Shapefile %s 失败: %w", path, err)
	}
	fields := make([]shp.Field, len(shapeFields))
	for i, f := range shapeFields {
		fields[i] = shp.StringField(f.name, f.size)
	}
	if err := writer.SetFields(fields); err != nil {
		writer.Close()
		return "", fmt.Errorf("设置 DBF 字段失败: %w", err)
	}

	for _, p := range places {
		polygon := toShapePolygon(p.Shape.Rings)
		row := int(writer.Write(polygon))
		for i, f := range shapeFields {
			value := string(charset.TruncateGBK(f.value(p), int(f.size)))
			if err := writer.WriteAttribute(row, i, value); err != nil {
				writer.Close()
				return "", fmt.Errorf("写入属性 %s 失败 (%s): %w", f.name, poiLabel(p), err)
			}
		}
	}
	writer.Close()

	if err := fixDBFName(base); err != nil {
		return "", err
	}
	if err := os.WriteFile(base+".cpg", []byte(ShapefileCodePage), 0o644); err != nil {
		return "", fmt.Errorf("写入 .cpg 失败: %w", err)
	}
	if err := os.WriteFile(base+".prj", []byte(domain.WGS84.WKT), 0o644); err != nil {
		return "", fmt.Errorf("写入 .prj 失败: %w", err)
	}
	return path, nil
}

// fixDBFName 将 go-shp 写出的 "<base>dbf" 改名为 "<base>.dbf"。
// go-shp 去掉 ".shp" 四个字符后直接拼接 "dbf"，属性表因此缺少点号。
func fixDBFName(base string) error {
	written := base + "dbf"
	if _, err := os.Stat(written); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("检查 DBF 文件失败: %w", err)
	}
	if err := os.Rename(written, base+".dbf"); err != nil {
		return fmt.Errorf("重命名 DBF 文件失败: %w", err)
	}
	return nil
}

// toShapePolygon 按 Shapefile 约定定向（外环顺时针，洞逆时针）后转换为 go-shp 多部件面。
func toShapePolygon(rings []orb.Ring) *shp.Polygon {
	oriented := domain.OrientRings(rings)
	parts := make([][]shp.Point, 0, len(oriented))
	for _, ring := range oriented {
		pts := make([]shp.Point, len(ring))
		for i, pt := range ring {
			pts[i] = shp.Point{X: pt.X(), Y: pt.Y()}
		}
		parts = append(parts, pts)
	}
	polygon := shp.Polygon(*shp.NewPolyLine(parts))
	return &polygon
}
