package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gonum.org/v1/gonum/spatial/r2"
)

// handleInput processes keyboard and mouse input for the viewer.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
		g.hud.Paused = g.paused
	}

	// Steps-per-frame control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
		g.hud.StepsPerFrame = float32(g.stepsPerUpdate)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
		g.hud.StepsPerFrame = float32(g.stepsPerUpdate)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.hud.Toggle()
	}

	// Sync HUD widget state back into the game
	g.paused = g.hud.Paused
	g.stepsPerUpdate = int(g.hud.StepsPerFrame)
	if g.hud.SpawnBlob {
		g.spawnBlob(r2.Vec{
			X: float64(g.cam.X),
			Y: float64(g.cam.Y),
		})
	}

	g.handleCameraInput()

	// Left click drops a blob at the cursor, unless the click lands on
	// the panel.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		if !g.hud.Visible() || !g.hud.Contains(mouse.X, mouse.Y) {
			wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
			g.spawnBlob(r2.Vec{X: float64(wx), Y: float64(wy)})
		}
	}
}

// handleCameraInput processes pan and zoom.
func (g *Game) handleCameraInput() {
	const panSpeed = 12

	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Pan(0, panSpeed)
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		g.cam.Pan(-delta.X, -delta.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.cam.Reset()
	}
}
