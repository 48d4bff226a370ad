package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rpg/internal/core"
	"github.com/vovakirdan/tui-rpg/internal/logging"
	"github.com/vovakirdan/tui-rpg/internal/storage"
)

// Launcher creates and resets a game for a save slot. resume asks it to
// continue the slot's save.
type Launcher func(slot string, resume bool, cfg core.RuntimeConfig) (Game, error)

// AppOptions configures the title -> game -> title flow.
type AppOptions struct {
	Store  *storage.Store // optional
	Launch Launcher
	Config core.RuntimeConfig
	Slot   string
	Logger *log.Logger
}

type appScreen int

const (
	screenTitle appScreen = iota
	screenGame
	screenBoard
)

// AppModel manages the full flow: title, game, runs board. It is the
// top-level model for both local play and SSH sessions.
type AppModel struct {
	opts     AppOptions
	config   core.RuntimeConfig
	screen   appScreen
	menu     MenuModel
	board    BoardModel
	game     *Model
	quitting bool
}

// NewAppModel creates the app at the title screen.
func NewAppModel(opts AppOptions) AppModel {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return AppModel{
		opts:   opts,
		config: opts.Config,
		menu:   NewMenuModel(opts.Store, opts.Slot, opts.Config),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case ChoiceRuns:
		m.board = NewBoardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenBoard
		return m, m.board.Init()

	case ChoiceContinue, ChoiceNewGame:
		resume := selected.Choice == ChoiceContinue
		g, err := m.opts.Launch(m.opts.Slot, resume, m.config)
		if err != nil {
			m.opts.Logger.Error("cannot start game", "slot", m.opts.Slot, "err", err)
			m.menu = m.menu.WithError(err.Error())
			return m, nil
		}
		m.opts.Logger.Info("game started", "slot", m.opts.Slot, "continue", resume)
		gm := NewModel(g, m.config)
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, nil
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.toTitle()
		return m, m.menu.Init()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m AppModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if boardModel, ok := newBoard.(BoardModel); ok {
		m.board = boardModel
	}

	if m.board.IsGoingBack() {
		m.toTitle()
		return m, m.menu.Init()
	}
	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// toTitle rebuilds the title screen so Continue reflects a fresh save.
func (m *AppModel) toTitle() {
	m.game = nil
	m.screen = screenTitle
	m.menu = NewMenuModel(m.opts.Store, m.opts.Slot, m.config)
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenBoard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Run starts the app in the local terminal.
func Run(opts AppOptions) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
