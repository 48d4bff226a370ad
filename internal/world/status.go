package world

import "github.com/vovakirdan/tui-rpg/internal/core"

// Facing is the direction the player looks.
type Facing uint8

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

// Vec returns the unit vector of the facing.
func (f Facing) Vec() core.Vec2 {
	switch f {
	case FacingUp:
		return core.V(0, -1)
	case FacingLeft:
		return core.V(-1, 0)
	case FacingRight:
		return core.V(1, 0)
	default:
		return core.V(0, 1)
	}
}

// Activity is what the player is doing.
type Activity uint8

const (
	ActivityMove Activity = iota
	ActivityIdle
	ActivityAttack
)

// Status is the player's animation state: a facing crossed with an activity.
type Status struct {
	Facing   Facing
	Activity Activity
}

// String renders the status as an animation key: "down", "left_idle",
// "up_attack".
func (s Status) String() string {
	switch s.Activity {
	case ActivityIdle:
		return s.Facing.String() + "_idle"
	case ActivityAttack:
		return s.Facing.String() + "_attack"
	default:
		return s.Facing.String()
	}
}

// next derives this frame's status from the previous one.
func (s Status) next(moving, attacking bool) Status {
	if !moving && s.Activity == ActivityMove {
		s.Activity = ActivityIdle
	}
	if attacking {
		s.Activity = ActivityAttack
	} else if s.Activity == ActivityAttack {
		s.Activity = ActivityMove
	}
	return s
}

// EnemyStatus is the enemy state machine's state.
type EnemyStatus uint8

const (
	EnemyIdle EnemyStatus = iota
	EnemyMove
	EnemyAttack
)

func (s EnemyStatus) String() string {
	switch s {
	case EnemyMove:
		return "move"
	case EnemyAttack:
		return "attack"
	default:
		return "idle"
	}
}
