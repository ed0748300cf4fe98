package command

import "testing"

func TestFontTablePutFreeHas(t *testing.T) {
	ft := newFontTable()
	if ft.has(1) {
		t.Fatalf("expected an empty font table to report no fonts known")
	}
	ft.put(1)
	if !ft.has(1) {
		t.Fatalf("expected font 1 to be known after put")
	}
	ft.free(1)
	if ft.has(1) {
		t.Fatalf("expected font 1 to be forgotten after free")
	}
}
