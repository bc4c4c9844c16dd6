package stick

import (
	"testing"

	"BaziMeta/cmn"

	"github.com/mroth/weightedrand/v2"
	"go.uber.org/zap"
)

func init() {
	z = zap.NewNop()
}

func TestBuildChoicesSkipsZeroWeight(t *testing.T) {
	lots := []cmn.TStickLot{
		{Id: 1, LotNo: 1, Title: "第一签", Level: "上上", Weight: 3},
		{Id: 2, LotNo: 2, Title: "第二签", Level: "中平", Weight: 0},
		{Id: 3, LotNo: 3, Title: "第三签", Level: "下下", Weight: 1},
	}

	choices := buildChoices(lots)
	if len(choices) != 2 {
		t.Fatalf("len(choices) = %d, want 2", len(choices))
	}
	for _, choice := range choices {
		if choice.Item.LotNo == 2 {
			t.Error("zero weight lot should be excluded")
		}
	}
}

func TestBuildChoicesEmpty(t *testing.T) {
	if choices := buildChoices(nil); len(choices) != 0 {
		t.Errorf("len(choices) = %d, want 0", len(choices))
	}
	if choices := buildChoices([]cmn.TStickLot{{LotNo: 1, Weight: 0}}); len(choices) != 0 {
		t.Errorf("len(choices) = %d, want 0 for all-zero weights", len(choices))
	}
}

func TestChooserPickSingleLot(t *testing.T) {
	lots := []cmn.TStickLot{
		{Id: 7, LotNo: 7, Title: "第七签", Level: "上吉", Weight: 5},
	}

	chooser, err := weightedrand.NewChooser(buildChoices(lots)...)
	if err != nil {
		t.Fatalf("NewChooser failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		if got := chooser.Pick(); got.LotNo != 7 {
			t.Fatalf("Pick returned lot %d, want 7", got.LotNo)
		}
	}
}

func TestChooserPickMembership(t *testing.T) {
	lots := []cmn.TStickLot{
		{Id: 1, LotNo: 1, Title: "第一签", Level: "上上", Weight: 10},
		{Id: 2, LotNo: 2, Title: "第二签", Level: "中吉", Weight: 30},
		{Id: 3, LotNo: 3, Title: "第三签", Level: "中平", Weight: 60},
	}

	chooser, err := weightedrand.NewChooser(buildChoices(lots)...)
	if err != nil {
		t.Fatalf("NewChooser failed: %v", err)
	}

	valid := map[int]bool{1: true, 2: true, 3: true}
	for i := 0; i < 100; i++ {
		got := chooser.Pick()
		if !valid[got.LotNo] {
			t.Fatalf("Pick returned unknown lot %d", got.LotNo)
		}
	}
}

func TestNewMachineRejectsNegativeConfig(t *testing.T) {
	if _, err := NewMachine(-1, 0); err == nil {
		t.Error("expected error for negative cost")
	}
	if _, err := NewMachine(0, -1); err == nil {
		t.Error("expected error for negative daily limit")
	}
}
