/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package process

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".processed")

	h, err := NewHistory(path)
	if err != nil {
		t.Fatalf("NewHistory: %v", err)
	}
	if h.Seen("aaa") {
		t.Fatal("empty history reports hash as seen")
	}
	if err := h.Record("aaa", "", "bbb", "aaa"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := h.Record("bbb"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Fields(string(data)); len(lines) != 2 {
		t.Errorf("file lines = %v; want 2 entries", lines)
	}

	reloaded, err := NewHistory(path)
	if err != nil {
		t.Fatalf("NewHistory reload: %v", err)
	}
	if !reloaded.Seen("aaa") || !reloaded.Seen("bbb") || reloaded.Len() != 2 {
		t.Errorf("reloaded history incomplete: len=%d", reloaded.Len())
	}
}

func TestHistoryInMemory(t *testing.T) {
	h, err := NewHistory("")
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Record("x"); err != nil {
		t.Fatal(err)
	}
	if !h.Seen("x") {
		t.Error("in-memory history lost hash")
	}
}
