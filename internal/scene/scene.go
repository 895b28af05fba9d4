// Package scene builds what is on screen: a map scene with its tiles,
// characters and map layers, or a battle scene with the battle layers.
package scene

import (
	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/render"
)

// Scene is a screen the viewer can show.
type Scene interface {
	// Update drives every live layer (and, for maps, the characters) one frame.
	Update()

	// Render draws the scene onto dst.
	Render(dst *core.Screen)

	// Refresh re-materializes the scene's scope so layers added or removed
	// since construction appear or disappear.
	Refresh() layers.Result

	// Scope returns the registry scope the scene displays.
	Scope() layers.Scope

	// Layers returns the number of live layers.
	Layers() int
}

// base holds what both scenes share: the stage, the live-layer table and
// the materializer that fills it.
type base struct {
	stage *render.Stage
	table layers.Table
	mat   *layers.Materializer
	scope layers.Scope
}

func (b *base) updateLayers() {
	for _, l := range b.table {
		l.Update()
	}
}

// Refresh re-runs materialization on the displayed scope. New layers show
// their descriptor right away; frames only advance in Update.
func (b *base) Refresh() layers.Result {
	return b.mat.Materialize(b.scope, b.table, b.stage)
}

// Scope returns the displayed scope.
func (b *base) Scope() layers.Scope { return b.scope }

// Layers returns the number of live layers.
func (b *base) Layers() int { return len(b.table) }

// Close removes every live layer from the stage.
func (b *base) Close() {
	b.mat.Clear(b.table, b.stage)
}
