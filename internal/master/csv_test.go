package master

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	sample := strings.Join([]string{
		"工場,担当者,魚種,産地（業者）",
		"factory,person,species,origin",
		"A工場,佐藤,サバ,北海道（〇〇水産）",
		"B工場,鈴木,アジ,宮城県（△△商店）",
	}, "\n")

	got := ParseCSV(sample)

	want := map[string][]string{
		"factory": {"A工場", "B工場"},
		"person":  {"佐藤", "鈴木"},
		"species": {"サバ", "アジ"},
		"origin":  {"北海道（〇〇水産）", "宮城県（△△商店）"},
	}
	for key, options := range want {
		if !reflect.DeepEqual(got[key], options) {
			t.Errorf("ParseCSV()[%q] = %v, want %v", key, got[key], options)
		}
	}
}

func TestParseCSVAllCategories(t *testing.T) {
	sample := strings.Join([]string{
		"工場,担当者,魚種,仕入れ先,管理者チェック,オゾン水 担当者,産地（業者）",
		"factory,person,species,supplier,admin,ozone_person,origin",
		"第一工場,佐藤,サバ,〇〇水産,管理者A,佐藤,北海道（〇〇水産）",
		"第二工場,鈴木,アジ,△△商店,管理者B,鈴木,宮城県（△△商店）",
	}, "\n")

	got := ParseCSV(sample)

	if len(got) != 7 {
		t.Fatalf("expected 7 categories, got %d: %v", len(got), got)
	}
	if !reflect.DeepEqual(got["supplier"], []string{"〇〇水産", "△△商店"}) {
		t.Errorf("supplier = %v", got["supplier"])
	}
	if !reflect.DeepEqual(got["admin"], []string{"管理者A", "管理者B"}) {
		t.Errorf("admin = %v", got["admin"])
	}
}

func TestParseCSVCRLFAndBlankRows(t *testing.T) {
	sample := "工場,担当者\r\nfactory,person\r\n\r\nA工場,佐藤\r\n,,\r\nB工場,\r\n"

	got := ParseCSV(sample)

	if !reflect.DeepEqual(got["factory"], []string{"A工場", "B工場"}) {
		t.Errorf("factory = %v, want [A工場 B工場]", got["factory"])
	}
	// Blank cells are skipped, not inserted as empty options.
	if !reflect.DeepEqual(got["person"], []string{"佐藤"}) {
		t.Errorf("person = %v, want [佐藤]", got["person"])
	}
}

func TestParseCSVBlankKeyColumnDropped(t *testing.T) {
	sample := strings.Join([]string{
		"工場,メモ,担当者",
		"factory,,person",
		"A工場,ignored,佐藤",
	}, "\n")

	got := ParseCSV(sample)

	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d: %v", len(got), got)
	}
	if _, ok := got[""]; ok {
		t.Error("blank key column must be dropped")
	}
}

func TestParseCSVTooShort(t *testing.T) {
	if got := ParseCSV("工場,担当者"); len(got) != 0 {
		t.Errorf("header-only input should yield empty master, got %v", got)
	}
	if got := ParseCSV(""); len(got) != 0 {
		t.Errorf("empty input should yield empty master, got %v", got)
	}
}
