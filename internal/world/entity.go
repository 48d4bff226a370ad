package world

import (
	"math"

	"github.com/vovakirdan/tui-rpg/internal/core"
)

type axis uint8

const (
	axisX axis = iota
	axisY
)

// Entity is the movable base shared by the player and enemies. Rect is the
// display box, Hitbox the collision box; both share a center.
type Entity struct {
	Pos        core.Vec2
	Direction  core.Vec2
	Rect       core.Rect
	Hitbox     core.Rect
	FrameIndex float64

	obstacles *ObstacleSet
	ghost     bool // skip collision
}

func newEntity(rect core.Rect, dx, dy int, obstacles *ObstacleSet) Entity {
	if obstacles == nil {
		obstacles = NewObstacleSet()
	}
	return Entity{
		Pos:       rect.CenterVec(),
		Rect:      rect,
		Hitbox:    rect.Inflate(dx, dy),
		obstacles: obstacles,
	}
}

// Center returns the display rect center.
func (e *Entity) Center() core.Vec2 {
	return e.Rect.CenterVec()
}

// SetCenter teleports the entity without collision.
func (e *Entity) SetCenter(p core.Vec2) {
	cx, cy := int(math.Round(p.X)), int(math.Round(p.Y))
	e.Hitbox.SetCenter(cx, cy)
	e.Rect.SetCenter(cx, cy)
	e.Pos = p
}

// Move displaces the entity by speed*dt along its direction, one axis at a
// time, resolving collisions after each axis.
func (e *Entity) Move(speed, dt float64) {
	if !e.Direction.IsZero() {
		e.Direction = e.Direction.Normalize()
	}

	e.Pos.X += e.Direction.X * speed * dt
	e.Hitbox.SetCenterX(int(math.Round(e.Pos.X)))
	e.syncX()
	e.collide(axisX)

	e.Pos.Y += e.Direction.Y * speed * dt
	e.Hitbox.SetCenterY(int(math.Round(e.Pos.Y)))
	e.syncY()
	e.collide(axisY)
}

// collide clamps the hitbox against every intersecting obstacle, using the
// movement sign on the given axis. Later obstacles win.
func (e *Entity) collide(a axis) {
	if e.ghost {
		return
	}
	for _, t := range e.obstacles.tiles {
		if !t.Hitbox.Intersects(e.Hitbox) {
			continue
		}
		switch a {
		case axisX:
			if e.Direction.X > 0 {
				e.Hitbox.X = t.Hitbox.X - e.Hitbox.W
			} else if e.Direction.X < 0 {
				e.Hitbox.X = t.Hitbox.Right()
			}
			e.syncX()
			cx, _ := e.Hitbox.Center()
			e.Pos.X = float64(cx)
		case axisY:
			if e.Direction.Y < 0 {
				e.Hitbox.Y = t.Hitbox.Bottom()
			} else if e.Direction.Y > 0 {
				e.Hitbox.Y = t.Hitbox.Y - e.Hitbox.H
			}
			e.syncY()
			_, cy := e.Hitbox.Center()
			e.Pos.Y = float64(cy)
		}
	}
}

func (e *Entity) syncX() {
	cx, _ := e.Hitbox.Center()
	e.Rect.SetCenterX(cx)
}

func (e *Entity) syncY() {
	_, cy := e.Hitbox.Center()
	e.Rect.SetCenterY(cy)
}

// animate advances the frame counter at four frames per second, wrapping
// after n frames. It reports whether the cycle wrapped.
func (e *Entity) animate(dt float64, n int) bool {
	e.FrameIndex += 4 * dt
	if e.FrameIndex >= float64(n) {
		e.FrameIndex = 0
		return true
	}
	return false
}
