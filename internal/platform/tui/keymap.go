package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rpg/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Attack     key.Binding
	Cast       key.Binding
	NextWeapon key.Binding
	NextMagic  key.Binding
	Dodge      key.Binding
	Berserk    key.Binding
	SpeedBurst key.Binding
	Pause      key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Save       key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Attack, k.Cast, k.NextWeapon, k.NextMagic, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Attack, k.Cast, k.NextWeapon, k.NextMagic},
		{k.Dodge, k.Berserk, k.SpeedBurst},
		{k.Pause, k.Confirm, k.Back, k.Save, k.Restart, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Attack:     key.NewBinding(key.WithKeys(" ", "j"), key.WithHelp("space/j", "attack")),
		Cast:       key.NewBinding(key.WithKeys("f", "k"), key.WithHelp("f/k", "cast")),
		NextWeapon: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "next weapon")),
		NextMagic:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next spell")),
		Dodge:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dodge")),
		Berserk:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "berserk")),
		SpeedBurst: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "speed burst")),
		Pause:      key.NewBinding(key.WithKeys("p", "m"), key.WithHelp("p/m", "upgrades")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upgrade")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Screenshot: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "screenshot")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys     GameKeyMap
	bindings []binding
}

type binding struct {
	key    *key.Binding
	action core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{Keys: DefaultGameKeyMap()}
	k := &km.Keys
	km.bindings = []binding{
		{&k.Quit, core.ActionQuit},
		{&k.Up, core.ActionUp},
		{&k.Down, core.ActionDown},
		{&k.Left, core.ActionLeft},
		{&k.Right, core.ActionRight},
		{&k.Attack, core.ActionAttack},
		{&k.Cast, core.ActionCast},
		{&k.NextWeapon, core.ActionNextWeapon},
		{&k.NextMagic, core.ActionNextMagic},
		{&k.Dodge, core.ActionDodge},
		{&k.Berserk, core.ActionBerserk},
		{&k.SpeedBurst, core.ActionSpeedBurst},
		{&k.Pause, core.ActionPause},
		{&k.Confirm, core.ActionConfirm},
		{&k.Back, core.ActionBack},
		{&k.Save, core.ActionSave},
		{&k.Restart, core.ActionRestart},
	}
	return km
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, *b.key) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRuns
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}

	return MenuActionNone
}
