//go:build !ebiten

package ui

import "conway/pkg/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Record is a no-op in headless builds.
func (o *Overlay) Record([]core.CellUpdate) {}

// Reset is a no-op in headless builds.
func (o *Overlay) Reset() {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, int, float64) {}
