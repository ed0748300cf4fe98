package rastercore

import "github.com/flowraster/rastercore/internal/rastererr"

// Kind classifies a rastercore error per §7's taxonomy. It identifies a
// category of failure, not a specific Go type - callers switch on Kind, not
// on the concrete Error value.
type Kind = rastererr.Kind

const (
	// BadInput marks a malformed command parameter: a NaN/infinite
	// coordinate, or an enum value outside its declared set.
	BadInput = rastererr.BadInput

	// UnknownResource marks a texture/font/sprite/gradient id that was
	// absent at draw time. Never fatal: the applier logs it and degrades
	// the command to a no-op or a 1x1 transparent texture.
	UnknownResource = rastererr.UnknownResource

	// PreparationOverflow marks an edge whose y-range exceeds the
	// renderer's addressable range. The edge is dropped with a logged
	// warning rather than rejected outright.
	PreparationOverflow = rastererr.PreparationOverflow

	// StateUnderflow marks a PopState or Restore with no matching push.
	// Logged, then treated as a no-op.
	StateUnderflow = rastererr.StateUnderflow

	// InternalInvariant marks an assertion failure. Fatal by design: it
	// surfaces to the caller and aborts the frame currently rendering.
	InternalInvariant = rastererr.InternalInvariant
)

// Error wraps a Kind and an optional cause. Command-applier failures that
// are not silently degraded (BadInput, InternalInvariant) are surfaced to
// the caller as an *Error; the rest are logged side-channel (§7
// Propagation) and never returned.
type Error = rastererr.Error
