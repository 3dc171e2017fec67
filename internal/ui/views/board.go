package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/stickyjar/internal/models"
	"github.com/tgienger/stickyjar/internal/store"
	"github.com/tgienger/stickyjar/internal/ui/keys"
	"github.com/tgienger/stickyjar/internal/ui/styles"
)

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// Create form fields
const (
	fieldText = iota
	fieldColor
	fieldMinutes
	fieldCategory
	fieldSubmit
	fieldCount
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClearAll
	confirmClearJar
)

// BoardView shows pending notes grouped by category next to the jar
type BoardView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	cursor  int
	scrollY int
	status  string

	confirming   confirmKind
	deleteTarget models.Task

	creating  bool
	focusIdx  int
	newText   textinput.Model
	newMins   textinput.Model
	newCat    textinput.Model
	newColor  models.Color
	formError string

	// Help popup (shown with ?)
	showHelpPopup bool
}

func NewBoardView(st *store.Store) *BoardView {
	newText := textinput.New()
	newText.Placeholder = "What needs doing?"
	newText.CharLimit = models.MaxTextLength

	newMins := textinput.New()
	newMins.Placeholder = "minutes (optional)"
	newMins.CharLimit = 2

	newCat := textinput.New()
	newCat.Placeholder = "category (optional)"
	newCat.CharLimit = models.MaxCategoryLength

	return &BoardView{
		store:    st,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		newText:  newText,
		newMins:  newMins,
		newCat:   newCat,
		newColor: models.DefaultColor,
	}
}

func (v *BoardView) Init() tea.Cmd {
	return nil
}

// rows flattens the category groups in display order
func (v *BoardView) rows() []models.Task {
	var tasks []models.Task
	for _, g := range v.store.PendingByCategory() {
		tasks = append(tasks, g.Tasks...)
	}
	return tasks
}

func (v *BoardView) selected() (models.Task, bool) {
	rows := v.rows()
	if len(rows) == 0 {
		return models.Task{}, false
	}
	v.cursor = clamp(v.cursor, 0, len(rows)-1)
	return rows[v.cursor], true
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		// Any key closes the help popup
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirming != confirmNone {
			return v.updateConfirm(msg)
		}

		if v.creating {
			return v.updateCreating(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if idx, ok := keys.PresetIndex(msg.String()); ok {
		if task, err := v.store.CreatePreset(idx); err == nil {
			v.status = "Added " + task.Text
			v.focusTask(task.ID)
		}
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.rows())-1 {
			v.cursor++
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Complete):
		if task, ok := v.selected(); ok {
			if _, done := v.store.CompleteTask(task.ID); done {
				v.status = "Into the jar: " + task.Text
				v.cursor = clamp(v.cursor, 0, max(len(v.rows())-1, 0))
			}
		}

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.selected(); ok {
			v.confirming = confirmDelete
			v.deleteTarget = task
		}

	case key.Matches(msg, v.keys.ClearAll):
		if len(v.store.Pending()) > 0 {
			v.confirming = confirmClearAll
		}

	case key.Matches(msg, v.keys.ClearJar):
		if len(v.store.Completed()) > 0 {
			v.confirming = confirmClearJar
		}
	}

	return v, nil
}

func (v *BoardView) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch v.confirming {
		case confirmDelete:
			if v.store.DeleteTask(v.deleteTarget.ID) {
				v.status = "Deleted " + v.deleteTarget.Text
			}
		case confirmClearAll:
			v.store.ClearAllTasks()
			v.status = "Board cleared"
		case confirmClearJar:
			v.store.ClearCompletedTasks()
			v.status = "Jar emptied"
		}
		v.confirming = confirmNone
		v.cursor = clamp(v.cursor, 0, max(len(v.rows())-1, 0))
	case "n", "N", "esc":
		v.confirming = confirmNone
	}
	return v, nil
}

func (v *BoardView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		v.submitNewTask()
		return v, nil

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + fieldCount - 1) % fieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % fieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < fieldSubmit {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		v.submitNewTask()
		return v, nil

	case v.focusIdx == fieldColor && key.Matches(msg, v.keys.Color):
		if msg.String() == "left" {
			v.newColor = prevColor(v.newColor)
		} else {
			v.newColor = v.newColor.Next()
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case fieldText:
		v.newText, cmd = v.newText.Update(msg)
	case fieldMinutes:
		v.newMins, cmd = v.newMins.Update(msg)
	case fieldCategory:
		v.newCat, cmd = v.newCat.Update(msg)
	}
	return v, cmd
}

func prevColor(c models.Color) models.Color {
	for i, p := range models.Palette {
		if p == c {
			return models.Palette[(i+len(models.Palette)-1)%len(models.Palette)]
		}
	}
	return models.DefaultColor
}

func (v *BoardView) startNewTask() {
	v.creating = true
	v.focusIdx = fieldText
	v.formError = ""
	v.newColor = models.DefaultColor
	v.newText.Reset()
	v.newMins.Reset()
	v.newCat.Reset()
	v.updateFocus()
}

func (v *BoardView) updateFocus() {
	v.newText.Blur()
	v.newMins.Blur()
	v.newCat.Blur()

	switch v.focusIdx {
	case fieldText:
		v.newText.Focus()
	case fieldMinutes:
		v.newMins.Focus()
	case fieldCategory:
		v.newCat.Focus()
	}
}

func (v *BoardView) submitNewTask() {
	draft := models.Draft{
		Text:     v.newText.Value(),
		Color:    v.newColor,
		Category: v.newCat.Value(),
	}

	if mins := strings.TrimSpace(v.newMins.Value()); mins != "" {
		n, err := strconv.Atoi(mins)
		if err != nil {
			v.formError = "minutes must be a number"
			return
		}
		draft.EstimatedMinutes = n
	}

	task, err := v.store.CreateTask(draft)
	if err != nil {
		v.formError = err.Error()
		return
	}

	v.creating = false
	v.status = "Added " + task.Text
	v.focusTask(task.ID)
}

func (v *BoardView) focusTask(id string) {
	for i, t := range v.rows() {
		if t.ID == id {
			v.cursor = i
			v.ensureVisible()
			return
		}
	}
}

func (v *BoardView) visibleRows() int {
	return max(v.height-8, 3)
}

func (v *BoardView) ensureVisible() {
	visible := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
}

// View renders the view
func (v *BoardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirming != confirmNone {
		return v.renderConfirm()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	contentWidth := styles.ContentWidth(v.width)
	jar := renderJar(v.styles, v.store.JarTokens(), v.store.Stats())
	boardWidth := max(contentWidth-lipgloss.Width(jar)-2, 30)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(boardWidth).Render(v.renderBoard(boardWidth)),
		"  ",
		jar,
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Sticky Jar"),
		v.styles.TitleMuted.Render(v.status),
		body,
		v.renderHelp(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardView) renderBoard(width int) string {
	s := v.styles
	groups := v.store.PendingByCategory()
	if len(groups) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			s.TitleMuted.Render("No notes. Press 'n' to write one"),
			s.TitleMuted.Render("or 1-5 for a quick task."),
		)
	}

	var lines []string
	idx := 0
	visible := v.visibleRows()
	for _, g := range groups {
		header := false
		for _, t := range g.Tasks {
			if idx >= v.scrollY && idx < v.scrollY+visible {
				if !header {
					lines = append(lines, s.Group.Render(fmt.Sprintf("%s (%d)", g.Name, len(g.Tasks))))
					header = true
				}
				lines = append(lines, v.renderTaskItem(t, idx == v.cursor, width))
			}
			idx++
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *BoardView) renderTaskItem(task models.Task, selected bool, width int) string {
	s := v.styles
	swatch := s.Note.Background(styles.NoteColor(task.Color)).Render(" ")

	line := task.Text
	if task.EstimatedMinutes > 0 {
		line += fmt.Sprintf(" · %dm", task.EstimatedMinutes)
	}

	itemStyle := s.ListItem
	if selected {
		itemStyle = s.ListSelected
	}
	return swatch + itemStyle.Width(max(width-2, 10)).Render(line)
}

func (v *BoardView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	textStyle, minsStyle, catStyle := s.Input, s.Input, s.Input
	btnStyle := s.Button
	colorLabel := s.TitleMuted

	switch v.focusIdx {
	case fieldText:
		textStyle = s.InputFocused
	case fieldColor:
		colorLabel = s.HelpKey
	case fieldMinutes:
		minsStyle = s.InputFocused
	case fieldCategory:
		catStyle = s.InputFocused
	case fieldSubmit:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 60)
	swatch := s.Note.Background(styles.NoteColor(v.newColor)).Render("    ")

	parts := []string{
		s.Title.Render("New Note"),
		"",
		"Text:",
		textStyle.Width(inputWidth).Render(v.newText.View()),
		"",
		"Color:",
		swatch + " " + colorLabel.Render("← "+v.newColor.Label()+" →"),
		"",
		"Minutes:",
		minsStyle.Width(inputWidth).Render(v.newMins.View()),
		"",
		"Category:",
		catStyle.Width(inputWidth).Render(v.newCat.View()),
		"",
		btnStyle.Render(" Create "),
	}
	if v.formError != "" {
		parts = append(parts, "", s.Error.Render(v.formError))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s done • %s new • %s quick • %s del • %s help • %s quit",
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("1-5"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("?"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *BoardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("space") + "  complete note",
		s.HelpKey.Render("n") + "      new note",
		s.HelpKey.Render("d") + "      delete note",
		s.HelpKey.Render("C") + "      clear all notes",
		s.HelpKey.Render("X") + "      empty the jar",
		s.HelpKey.Render("↑/↓") + "    move",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.Title.Render("Quick tasks"),
	}
	for i, p := range models.Presets {
		helpItems = append(helpItems, fmt.Sprintf("%s      %s (%dm)", s.HelpKey.Render(strconv.Itoa(i+1)), p.Text, p.EstimatedMinutes))
	}
	helpItems = append(helpItems, "", s.TitleMuted.Render("Press any key to close"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var title, detail string
	switch v.confirming {
	case confirmDelete:
		title = "Delete Note?"
		detail = fmt.Sprintf("%q will be discarded without going into the jar.", v.deleteTarget.Text)
	case confirmClearAll:
		title = "Clear All Notes?"
		detail = fmt.Sprintf("%d pending notes will be discarded.", len(v.store.Pending()))
	case confirmClearJar:
		title = "Empty the Jar?"
		detail = "Completed history is removed. Your streak is kept."
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
