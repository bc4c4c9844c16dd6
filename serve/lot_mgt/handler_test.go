package lot_mgt

import (
	"testing"
)

func uintPtr(v uint) *uint { return &v }
func boolPtr(v bool) *bool { return &v }

func TestBuildLotUpdatesAllFields(t *testing.T) {
	d := lotData{
		LotNo:          1,
		Title:          "第一签",
		Level:          "上上",
		Poem:           "春风得意马蹄疾",
		Interpretation: "万事顺遂",
		Weight:         uintPtr(3),
		Enabled:        boolPtr(false),
	}

	updates, err := buildLotUpdates(nil, d)
	if err != nil {
		t.Fatalf("buildLotUpdates returned error: %v", err)
	}

	want := map[string]interface{}{
		"title":          "第一签",
		"level":          "上上",
		"poem":           "春风得意马蹄疾",
		"interpretation": "万事顺遂",
		"weight":         uint(3),
		"enabled":        false,
	}
	if len(updates) != len(want) {
		t.Fatalf("len(updates) = %d, want %d", len(updates), len(want))
	}
	for k, v := range want {
		if updates[k] != v {
			t.Errorf("updates[%q] = %v, want %v", k, updates[k], v)
		}
	}
}

func TestBuildLotUpdatesSubset(t *testing.T) {
	d := lotData{
		Title:  "改名了",
		Level:  "中吉",
		Weight: uintPtr(9),
	}

	updates, err := buildLotUpdates([]string{"title", "weight"}, d)
	if err != nil {
		t.Fatalf("buildLotUpdates returned error: %v", err)
	}

	if len(updates) != 2 {
		t.Fatalf("len(updates) = %d, want 2", len(updates))
	}
	if updates["title"] != "改名了" {
		t.Errorf("updates[title] = %v", updates["title"])
	}
	if updates["weight"] != uint(9) {
		t.Errorf("updates[weight] = %v", updates["weight"])
	}
	if _, ok := updates["level"]; ok {
		t.Error("level should not be updated when not in sets")
	}
}

func TestBuildLotUpdatesSkipsMissingPointers(t *testing.T) {
	updates, err := buildLotUpdates([]string{"poem", "weight", "enabled"}, lotData{Poem: "签诗"})
	if err != nil {
		t.Fatalf("buildLotUpdates returned error: %v", err)
	}

	if len(updates) != 1 {
		t.Fatalf("len(updates) = %d, want 1", len(updates))
	}
	if updates["poem"] != "签诗" {
		t.Errorf("updates[poem] = %v", updates["poem"])
	}
}

func TestBuildLotUpdatesUnknownField(t *testing.T) {
	if _, err := buildLotUpdates([]string{"lot_no"}, lotData{}); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestBuildLotUpdatesEmptyResult(t *testing.T) {
	if _, err := buildLotUpdates([]string{"weight"}, lotData{}); err == nil {
		t.Error("expected error when nothing to update")
	}
}
