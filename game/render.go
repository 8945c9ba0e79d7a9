package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/liamegan/playground/scene"
	"github.com/liamegan/playground/ui"
)

var (
	colorBackground = rl.Color{R: 12, G: 14, B: 20, A: 255}
	colorSpring     = rl.Color{R: 70, G: 90, B: 110, A: 180}
	colorBlob       = rl.Color{R: 240, G: 150, B: 60, A: 255}
	colorChain      = rl.Color{R: 80, G: 200, B: 180, A: 255}
	colorDust       = rl.Color{R: 150, G: 150, B: 160, A: 200}
	colorStatic     = rl.Color{R: 220, G: 70, B: 70, A: 255}
)

// Draw renders the current simulation state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	// Springs first so particles draw on top of them.
	for _, sp := range g.sys.Springs() {
		ax, ay := g.cam.WorldToScreen(float32(sp.A.Pos.X), float32(sp.A.Pos.Y))
		bx, by := g.cam.WorldToScreen(float32(sp.B.Pos.X), float32(sp.B.Pos.Y))
		rl.DrawLineV(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, colorSpring)
	}

	radius := 2.5 * g.cam.Zoom
	if radius < 1 {
		radius = 1
	}
	for _, p := range g.sys.Grid().Particles() {
		wx, wy := float32(p.Pos.X), float32(p.Pos.Y)
		if !g.cam.IsVisible(wx, wy, radius) {
			continue
		}
		sx, sy := g.cam.WorldToScreen(wx, wy)

		color := colorDust
		switch {
		case p.Static:
			color = colorStatic
		case p.HasTag(scene.TagBlob):
			color = colorBlob
		case p.HasTag(scene.TagChain):
			color = colorChain
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
	}

	g.hud.Draw(ui.Stats{
		Tick:    g.sys.Tick(),
		Live:    g.sys.Population(),
		Springs: g.sys.SpringCount(),
		TickUs:  float64(g.perf.Stats().TickAvg.Nanoseconds()) / 1e3,
	})

	rl.EndDrawing()
}
