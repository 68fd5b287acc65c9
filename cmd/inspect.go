/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"poi2geo/internal/domain"
	"poi2geo/internal/env"
	"poi2geo/internal/place"
)

var (
	inspectPrecision int
	inspectRaw       bool
)

// placeView 是 inspect 输出的 POI 摘要。
type placeView struct {
	PoiID     string         `json:"poiid"`
	Name      string         `json:"name"`
	Address   string         `json:"address,omitempty"`
	Telephone string         `json:"telephone,omitempty"`
	City      string         `json:"city,omitempty"`
	Tag       string         `json:"tag,omitempty"`
	Location  [2]float64     `json:"location"`
	Geometry  bool           `json:"has_geometry"`
	Level     int            `json:"level,omitempty"`
	Center    *[2]float64    `json:"center,omitempty"`
	Rings     int            `json:"rings,omitempty"`
	Shape     string         `json:"shape,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Raw       map[string]any `json:"raw,omitempty"`
}

func newPlaceView(p *place.PlaceDetail, precision int, withRaw bool) placeView {
	v := placeView{
		PoiID:     p.PoiID,
		Name:      p.Name,
		Address:   p.Address,
		Telephone: p.Telephone,
		City:      p.CityName,
		Tag:       p.Tag,
		Location:  [2]float64{p.Longitude, p.Latitude},
		Geometry:  p.HasGeometry(),
		Metadata:  p.Metadata,
	}
	if p.HasGeometry() {
		v.Level = p.Shape.Level
		v.Center = &[2]float64{p.Shape.Center.X(), p.Shape.Center.Y()}
		v.Rings = len(p.Shape.Rings)
		v.Shape = domain.FormatShape(p.Shape.Rings, precision, true)
	}
	if withRaw {
		v.Raw = p.Raw
	}
	return v
}

// inspectCmd 打印组装后的 POI，形状串为纠正后的 WGS-84 坐标。
var inspectCmd = &cobra.Command{
	Use:   "inspect <payload>",
	Short: "Print assembled POI records as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		places, err := loadPlaces(args[0])
		if err != nil {
			return err
		}
		precision := inspectPrecision
		if !cmd.Flags().Changed("precision") {
			precision = env.Int(env.KeyPrecision, precision)
		}
		return writePlaces(cmd.OutOrStdout(), places, precision, inspectRaw)
	},
}

func writePlaces(w io.Writer, places []*place.PlaceDetail, precision int, withRaw bool) error {
	views := make([]placeView, 0, len(places))
	for _, p := range places {
		views = append(views, newPlaceView(p, precision, withRaw))
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if len(views) == 1 {
		return enc.Encode(views[0])
	}
	return enc.Encode(views)
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVar(&inspectPrecision, "precision", domain.DefaultPrecision, "形状串坐标保留的小数位数")
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "同时输出原始 data 对象")
}
