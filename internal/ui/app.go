package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/stickyjar/internal/store"
	"github.com/tgienger/stickyjar/internal/ui/views"
)

type App struct {
	store  *store.Store
	board  *views.BoardView
	width  int
	height int
}

// Creates a new application
func NewApp(st *store.Store) *App {
	return &App{
		store: st,
		board: views.NewBoardView(st),
	}
}

func (a *App) Init() tea.Cmd {
	return a.board.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
	}

	_, cmd := a.board.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.board.View()
}

// Run starts the board in the alternate screen and blocks until it exits
func Run(st *store.Store, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewApp(st), opts...).Run()
	return err
}
