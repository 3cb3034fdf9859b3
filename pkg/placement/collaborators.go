// Package placement implements the interactive placement state machines for
// the main building and for road painting.
//
// Controllers never draw or move the camera themselves. They talk to the
// outside world through Renderer and Camera, announce commits on a Bus, and
// defer the post-exit camera reset through a Scheduler. All methods run on
// the single tick goroutine.
package placement

import (
	"image/color"

	"github.com/Yuminaga-Ten/Ease/pkg/autotile"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
)

// Handle identifies a visual created by a Renderer.
type Handle int

// Renderer draws visual cells. Handles stay valid until Destroy.
type Renderer interface {
	CreateVisual(pos grid.Vec2) Handle
	Move(h Handle, pos grid.Vec2)
	SetColor(h Handle, c color.NRGBA)
	SetVariant(h Handle, v autotile.Variant)
	Destroy(h Handle)
}

// Camera exposes the interaction toggles this package flips on mode entry
// and exit.
type Camera interface {
	SetFreeDrag(enabled bool)
	SetEdgeScroll(enabled bool)
	ResetPosition()
}

// Connectivity is the part of the connectivity engine the controllers drive.
type Connectivity interface {
	Recompute() int
	IsActive(c grid.Cell) bool
}

// Deps bundles the collaborators shared by both controllers. Every field is
// required.
type Deps struct {
	Grid      *grid.System
	Occupancy *occupancy.Index
	Roads     Connectivity
	Renderer  Renderer
	Camera    Camera
	Bus       *Bus
	Scheduler *Scheduler
	Palette   Palette
}

// recompute refreshes the active-road set and announces it.
func (d Deps) recompute() {
	n := d.Roads.Recompute()
	d.Bus.Emit(Event{Kind: EventConnectivityChanged, Count: n})
}

// enterMode hands pointer dragging to the placement tool.
func (d Deps) enterMode() {
	d.Camera.SetFreeDrag(false)
	d.Camera.SetEdgeScroll(true)
}

// exitMode restores camera defaults and resets its position on the next
// tick, after same-tick state has settled.
func (d Deps) exitMode() {
	d.Camera.SetEdgeScroll(false)
	d.Camera.SetFreeDrag(true)
	d.Scheduler.NextTick(d.Camera.ResetPosition)
}
