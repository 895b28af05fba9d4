package scene

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-parallax/internal/core"
	"github.com/vovakirdan/tui-parallax/internal/layers"
	"github.com/vovakirdan/tui-parallax/internal/render"
)

// BattleScene shows the battle layers over a plain backdrop. Battle layers
// have no camera, so they scroll by their own speed only.
type BattleScene struct {
	base
	title string
}

// NewBattleScene builds a battle scene from the battle scope of reg.
func NewBattleScene(reg *layers.Registry, loader layers.Loader, logger *log.Logger) *BattleScene {
	b := &BattleScene{title: "BATTLE"}
	b.scope = layers.BattleScope
	b.stage = render.NewStage()
	b.table = make(layers.Table)
	b.mat = layers.NewMaterializer(reg, layers.Env{
		Factory: render.Factory{},
		Loader:  loader,
	}, logger)
	b.Refresh()
	return b
}

// Update drives the battle layers one frame.
func (b *BattleScene) Update() {
	b.updateLayers()
}

// Render draws the layers and a frame with the title.
func (b *BattleScene) Render(dst *core.Screen) {
	b.stage.Draw(dst)
	if dst.Width() < 4 || dst.Height() < 3 {
		return
	}
	dst.DrawBox(core.NewRect(0, 0, dst.Width(), dst.Height()))
	dst.DrawTextCentered(0, b.title, core.ColorBrightRed)
}
