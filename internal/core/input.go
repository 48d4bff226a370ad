package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // held: move up / menu up
	ActionDown              // held: move down / menu down
	ActionLeft              // held: move left / menu left
	ActionRight             // held: move right / menu right
	ActionAttack            // swing the equipped weapon
	ActionCast              // cast the selected spell
	ActionNextWeapon        // cycle weapon
	ActionNextMagic         // cycle spell
	ActionDodge             // dodge burst
	ActionBerserk           // berserk window
	ActionSpeedBurst        // speed burst window
	ActionConfirm           // confirm menu selection / buy upgrade
	ActionBack              // leave menu
	ActionPause             // toggle pause + upgrade menu
	ActionSave              // save while paused
	ActionRestart           // restart after game over
	ActionQuit              // exit session
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionAttack:     "Attack",
	ActionCast:       "Cast",
	ActionNextWeapon: "NextWeapon",
	ActionNextMagic:  "NextMagic",
	ActionDodge:      "Dodge",
	ActionBerserk:    "Berserk",
	ActionSpeedBurst: "SpeedBurst",
	ActionConfirm:    "Confirm",
	ActionBack:       "Back",
	ActionPause:      "Pause",
	ActionSave:       "Save",
	ActionRestart:    "Restart",
	ActionQuit:       "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state during one simulation tick.
// Movement actions are present for every tick the key is held; the
// others are present only on the tick they were pressed.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds an input frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
