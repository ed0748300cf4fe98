package drawstate

import (
	"testing"

	"github.com/flowraster/rastercore/internal/ids"
)

func TestLayerZIndexAndShapeIDsIncrease(t *testing.T) {
	l := NewLayer()
	if l.NextZIndex() != 0 || l.NextZIndex() != 1 {
		t.Fatalf("expected z-index to increase monotonically from 0")
	}
	if l.NextShapeID() != 0 || l.NextShapeID() != 1 {
		t.Fatalf("expected shape ids to increase monotonically from 0")
	}
}

func TestLayerClearResetsCountersButKeepsStyle(t *testing.T) {
	l := NewLayer()
	l.NextShapeID()
	l.NextZIndex()
	l.SetAlpha(0.5)
	l.UseProgramData(3)

	l.Clear()

	if l.NextShapeID() != 0 {
		t.Fatalf("expected Clear to reset the shape id counter")
	}
	if l.Alpha() != 0.5 {
		t.Fatalf("expected Clear to preserve layer alpha")
	}
	if len(l.UsedProgramData()) != 0 {
		t.Fatalf("expected Clear to drop used program-data references")
	}
}

func TestLayerStoreRestoreBackground(t *testing.T) {
	l := NewLayer()
	if l.HasBackground() {
		t.Fatalf("expected a fresh layer to have no stored background")
	}
	l.Store(nil, 4)
	if !l.HasBackground() {
		t.Fatalf("expected Store to populate a background")
	}
	l.ClearBackground()
	if l.HasBackground() {
		t.Fatalf("expected ClearBackground to remove the stored background")
	}
}

func TestSpriteTableSetLookupClearMove(t *testing.T) {
	s := NewSpriteTable()
	ns := ids.DefaultNamespace

	if _, ok := s.Lookup(ns, 1); ok {
		t.Fatalf("expected an empty table to have no mapping")
	}
	s.Set(ns, 1, 42)
	layer, ok := s.Lookup(ns, 1)
	if !ok || layer != 42 {
		t.Fatalf("expected sprite 1 to resolve to layer 42, got %v, %v", layer, ok)
	}

	s.Move(ns, 1, 2)
	if _, ok := s.Lookup(ns, 1); ok {
		t.Fatalf("expected Move to remove the source mapping")
	}
	if layer, ok := s.Lookup(ns, 2); !ok || layer != 42 {
		t.Fatalf("expected Move to re-point sprite 2 at layer 42")
	}

	s.Clear(ns, 2)
	if _, ok := s.Lookup(ns, 2); ok {
		t.Fatalf("expected Clear to remove the mapping")
	}
}

func TestSpriteTableResetDropsEverything(t *testing.T) {
	s := NewSpriteTable()
	s.Set(ids.DefaultNamespace, 1, 7)
	s.Reset()
	if _, ok := s.Lookup(ids.DefaultNamespace, 1); ok {
		t.Fatalf("expected Reset to drop every sprite mapping")
	}
}
