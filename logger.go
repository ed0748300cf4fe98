// Package rastercore is the public facade: a command stream goes in
// (internal/command.Applier over a drawstate.CanvasDrawing), a frame buffer
// comes out (internal/frame.U8FrameRenderer backed by a
// internal/frame.LayerCompositor). Everything else lives under internal/.
package rastercore

import (
	"log/slog"

	"github.com/flowraster/rastercore/internal/rastererr"
)

// SetLogger configures the logger rastercore and its command applier use for
// the side-channel diagnostics in §7's error taxonomy (UnknownResource,
// PreparationOverflow, StateUnderflow at Warn; InternalInvariant at Error
// before the panic/recover that aborts the current frame). By default
// rastercore produces no log output. Pass nil to restore that default.
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) { rastererr.SetLogger(l) }

// Logger returns the currently configured logger.
func Logger() *slog.Logger { return rastererr.Logger() }
