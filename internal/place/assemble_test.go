/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package place

import (
	"errors"
	"testing"

	"poi2geo/internal/domain"

	"github.com/paulmach/orb"
)

const fullPayload = `{
  "status": "1",
  "data": {
    "base": {
      "poiid": "B000A8UIN8",
      "name": "故宫博物院",
      "address": "景山前街4号",
      "telephone": "010-85007421",
      "city_name": "北京市",
      "city_adcode": "110000",
      "classify": "风景名胜",
      "new_keytype": "风景名胜;博物馆",
      "title": "故宫",
      "x": "116.397428",
      "y": "39.90923"
    },
    "spec": {
      "mining_shape": {
        "shape": "116.397428,39.90923;116.398112,39.90923;116.398112,39.910051",
        "center": "116.3977,39.9096",
        "level": "17"
      }
    }
  }
}`

func TestAssembleFullPayload(t *testing.T) {
	p, err := Assemble([]byte(fullPayload), "fallback")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if p.PoiID != "B000A8UIN8" {
		t.Errorf("PoiID = %q; payload id must win over fallback", p.PoiID)
	}
	if p.Name != "故宫博物院" || p.Address != "景山前街4号" || p.CityName != "北京市" {
		t.Errorf("base fields not copied: %+v", p)
	}
	if p.Tag != "风景名胜;博物馆" {
		t.Errorf("Tag = %q; want new_keytype fallback", p.Tag)
	}
	if !p.HasGeometry() {
		t.Fatal("expected geometry")
	}
	if got := len(p.Shape.Rings); got != 1 {
		t.Fatalf("rings = %d; want 1", got)
	}
	ring := p.Shape.Rings[0]
	if len(ring) != 4 || !ring.Closed() {
		t.Errorf("ring not closed after parse: %v", ring)
	}
	if want := domain.ConvertPoint(orb.Point{116.397428, 39.90923}); ring[0] != want {
		t.Errorf("first vertex = %v; want corrected %v", ring[0], want)
	}
	if want := domain.ConvertPoint(orb.Point{116.3977, 39.9096}); p.Shape.Center != want {
		t.Errorf("center = %v; want %v", p.Shape.Center, want)
	}
	if p.Shape.Level != 17 {
		t.Errorf("level = %d; want 17", p.Shape.Level)
	}
	if p.Longitude != ring[0][0] || p.Latitude != ring[0][1] {
		t.Errorf("base point = (%v, %v); want corrected x/y %v", p.Longitude, p.Latitude, ring[0])
	}
	if p.Metadata["title"] != "故宫" {
		t.Errorf("metadata title = %v", p.Metadata["title"])
	}
	if _, ok := p.Raw["base"]; !ok {
		t.Error("raw data not retained")
	}
}

func TestAssembleUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"Zero Status", `{"status":"0","data":{}}`},
		{"Missing Status", `{"data":{}}`},
		{"Numeric Zero", `{"status":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble([]byte(tt.payload), "x")
			if !errors.Is(err, ErrUpstreamFailure) {
				t.Errorf("Assemble(): expected ErrUpstreamFailure, got %v", err)
			}
		})
	}
}

func TestAssembleNumericStatus(t *testing.T) {
	p, err := Assemble([]byte(`{"status":1,"data":{"base":{"name":"n"}}}`), "id-1")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if p.PoiID != "id-1" {
		t.Errorf("PoiID = %q; want fallback", p.PoiID)
	}
}

func TestAssembleInvalidJSON(t *testing.T) {
	_, err := Assemble([]byte(`{"status":`), "x")
	if err == nil || errors.Is(err, ErrUpstreamFailure) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestAssembleMissingGeometry(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"Empty Mining Shape", `{"status":"1","data":{"base":{"poiid":"P1"},"spec":{"mining_shape":{}}}}`},
		{"Missing Spec", `{"status":"1","data":{"base":{"poiid":"P1"}}}`},
		{"Missing Data", `{"status":"1"}`},
		{"Null Sub Objects", `{"status":"1","data":{"base":null,"spec":{"mining_shape":null}}}`},
		{"Garbage Shape", `{"status":"1","data":{"spec":{"mining_shape":{"shape":"a,b;;c"}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Assemble([]byte(tt.payload), "P1")
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if p.HasGeometry() {
				t.Error("HasGeometry() = true; want false")
			}
			if p.PoiID != "P1" {
				t.Errorf("PoiID = %q", p.PoiID)
			}
		})
	}
}

func TestAssembleCenterAndLevelFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		center    string
		level     string
		wantLevel int
		useFirst  bool
	}{
		{"Bad Center", `"center":"116.4"`, `"level":"abc"`, 0, true},
		{"Non String Center", `"center":[1,2]`, `"level":15`, 15, true},
		{"Float Level", `"center":"x,y"`, `"level":15.7`, 15, true},
		{"Missing Both", ``, ``, 0, true},
		{"Good Center", `"center":"116.3977,39.9096"`, `"level":" 12 "`, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := `"shape":"116.39,39.90;116.40,39.90;116.40,39.91"`
			for _, extra := range []string{tt.center, tt.level} {
				if extra != "" {
					fields += "," + extra
				}
			}
			payload := `{"status":"1","data":{"spec":{"mining_shape":{` + fields + `}}}}`
			p, err := Assemble([]byte(payload), "P")
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if p.Shape.Level != tt.wantLevel {
				t.Errorf("level = %d; want %d", p.Shape.Level, tt.wantLevel)
			}
			isFirst := p.Shape.Center == p.Shape.Rings[0][0]
			if isFirst != tt.useFirst {
				t.Errorf("center = %v, first vertex = %v", p.Shape.Center, p.Shape.Rings[0][0])
			}
		})
	}
}

func TestAssembleMultiRing(t *testing.T) {
	payload := `{"status":"1","data":{"spec":{"mining_shape":{"shape":"116.1,39.1;116.2,39.1;116.2,39.2@116.12,39.12;116.13,39.12;116.13,39.13"}}}}`
	p, err := Assemble([]byte(payload), "M")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(p.Shape.Rings) != 2 {
		t.Fatalf("rings = %d; want 2", len(p.Shape.Rings))
	}
}
