/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package capture

import (
	"encoding/json"
	"errors"
	"testing"

	"poi2geo/internal/place"
)

func TestLoadSingleObject(t *testing.T) {
	payloads, err := Load([]byte(`  {"status":"1"} `), "a.json", "a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(payloads) != 1 || payloads[0].FallbackID != "a" || string(payloads[0].Body) != `{"status":"1"}` {
		t.Errorf("unexpected payloads: %+v", payloads)
	}
}

func TestLoadArray(t *testing.T) {
	payloads, err := Load([]byte(`[{"status":"1"},{"status":"0"}]`), "b.json", "b")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(payloads) != 2 || payloads[1].Source != "b.json#1" {
		t.Errorf("unexpected payloads: %+v", payloads)
	}
}

func TestLoadCacheDump(t *testing.T) {
	older, _ := json.Marshal(`{"status":"1","data":{"base":{"name":"old"}}}`)
	newer, _ := json.Marshal(`{"status":"1","data":{"base":{"name":"new"}}}`)
	other, _ := json.Marshal(`{"status":"1"}`)
	dump := `[
		{"url":"https://ditu.amap.com/detail/get/detail?id=B001","body":` + string(older) + `,"ts":1},
		{"url":"https://ditu.amap.com/service/regeo?id=B009","body":"{}","ts":2},
		{"url":"/detail/get/detail?id=B002","body":` + string(other) + `,"ts":3},
		{"url":"https://ditu.amap.com/detail/get/detail?id=B001","body":` + string(newer) + `,"ts":4},
		{"url":"https://ditu.amap.com/detail/get/detail","body":"{}","ts":5}
	]`
	payloads, err := Load([]byte(dump), "cache.json", "cache")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("payloads = %d; want 2", len(payloads))
	}
	if payloads[0].FallbackID != "B002" || payloads[1].FallbackID != "B001" {
		t.Errorf("unexpected order: %s, %s", payloads[0].FallbackID, payloads[1].FallbackID)
	}
	p, err := place.Assemble(payloads[1].Body, payloads[1].FallbackID)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if p.Name != "new" || p.PoiID != "B001" {
		t.Errorf("expected latest entry, got %+v", p)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Empty", "  "},
		{"Empty Array", "[]"},
		{"Cache Without Detail", `[{"url":"/other?id=1","body":"{}","ts":1}]`},
		{"Not JSON", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.content), "x", "x"); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := Load([]byte("[]"), "x", "x"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCollectKeepsGoingOnFailure(t *testing.T) {
	payloads := []Payload{
		{Source: "1", FallbackID: "A", Body: json.RawMessage(`{"status":"1","data":{"base":{"name":"a1"}}}`)},
		{Source: "2", FallbackID: "B", Body: json.RawMessage(`{"status":"0"}`)},
		{Source: "3", FallbackID: "C", Body: json.RawMessage(`{"status":`)},
		{Source: "4", FallbackID: "A", Body: json.RawMessage(`{"status":"1","data":{"base":{"name":"a2"}}}`)},
	}
	batch := place.NewBatch()
	failures := Collect(payloads, batch)
	if len(failures) != 2 {
		t.Fatalf("failures = %d; want 2", len(failures))
	}
	if !errors.Is(failures[0].Err, place.ErrUpstreamFailure) || failures[0].Source != "2" {
		t.Errorf("unexpected first failure: %+v", failures[0])
	}
	if batch.Len() != 1 {
		t.Fatalf("batch len = %d; want 1", batch.Len())
	}
	if p, _ := batch.Get("A"); p.Name != "a2" {
		t.Errorf("expected last write to win, got %q", p.Name)
	}
}
