package command

import (
	"testing"

	"github.com/flowraster/rastercore/internal/drawstate"
)

func TestBuildFilterChainBuildsEachStage(t *testing.T) {
	canvas := drawstate.NewCanvasDrawing()
	specs := []FilterSpec{
		{Op: FilterGaussianBlur, Radius: 2},
		{Op: FilterAlphaBlend, Alpha: 0.5},
	}
	chain := buildFilterChain(canvas, specs)
	if chain == nil {
		t.Fatalf("expected a non-nil chain")
	}
}

func TestBuildFilterChainEmptyListIsIdentity(t *testing.T) {
	canvas := drawstate.NewCanvasDrawing()
	chain := buildFilterChain(canvas, nil)
	if chain == nil {
		t.Fatalf("expected an empty filter list to still produce an identity CombinedFilter, not nil")
	}
}

func TestBuildFilterUnknownOpFails(t *testing.T) {
	canvas := drawstate.NewCanvasDrawing()
	if _, ok := buildFilter(canvas, FilterSpec{Op: FilterOp(999)}); ok {
		t.Fatalf("expected an unrecognised FilterOp to fail to build")
	}
}

func TestBuildFilterMaskResolvesUnknownTextureToEmpty(t *testing.T) {
	canvas := drawstate.NewCanvasDrawing()
	f, ok := buildFilter(canvas, FilterSpec{Op: FilterMask, Texture: 42, ScaleX: 1, ScaleY: 1})
	if !ok {
		t.Fatalf("expected a mask filter referencing an unregistered texture to still build")
	}
	if f == nil {
		t.Fatalf("expected a non-nil mask filter")
	}
}
