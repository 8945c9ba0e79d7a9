// Package ui renders the viewer's control panel with raygui widgets.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stats holds the counters shown in the panel.
type Stats struct {
	Tick    int
	Live    int
	Springs int
	TickUs  float64
}

// HUD is the interactive control panel. Widget state lives here; the game
// reads it back after Draw each frame.
type HUD struct {
	Paused        bool
	StepsPerFrame float32
	SpawnBlob     bool // true for the frame the button was pressed

	visible bool
	x, y    float32
	width   float32
}

// NewHUD creates the panel anchored at the given screen position.
func NewHUD(x, y int32) *HUD {
	return &HUD{
		StepsPerFrame: 1,
		visible:       true,
		x:             float32(x),
		y:             float32(y),
		width:         220,
	}
}

// Toggle switches panel visibility.
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the panel is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Contains reports whether a screen point lands on the panel.
func (h *HUD) Contains(sx, sy float32) bool {
	const height = 28*7 + 16
	return sx >= h.x-8 && sx <= h.x+h.width+8 && sy >= h.y-8 && sy <= h.y-8+height
}

// Draw renders the panel and services its widgets.
func (h *HUD) Draw(stats Stats) {
	h.SpawnBlob = false
	if !h.visible {
		return
	}

	const line = 28
	x, y := h.x, h.y

	rl.DrawRectangle(int32(x-8), int32(y-8), int32(h.width+16), line*7+16, rl.Color{R: 20, G: 20, B: 28, A: 200})

	rl.DrawText(fmt.Sprintf("tick %d", stats.Tick), int32(x), int32(y), 16, rl.RayWhite)
	y += line
	rl.DrawText(fmt.Sprintf("particles %d  springs %d", stats.Live, stats.Springs), int32(x), int32(y), 16, rl.RayWhite)
	y += line
	rl.DrawText(fmt.Sprintf("tick avg %.0f us  fps %d", stats.TickUs, rl.GetFPS()), int32(x), int32(y), 16, rl.Gray)
	y += line

	h.Paused = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 20, Height: 20}, "Paused", h.Paused)
	y += line

	h.StepsPerFrame = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: h.width - 60, Height: 20},
		"", fmt.Sprintf("%dx", int(h.StepsPerFrame)),
		h.StepsPerFrame, 1, 10)
	y += line

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: h.width - 60, Height: 24}, "Spawn blob") {
		h.SpawnBlob = true
	}
}
