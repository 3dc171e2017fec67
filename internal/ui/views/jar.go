package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/stickyjar/internal/models"
	"github.com/tgienger/stickyjar/internal/ui/styles"
)

// Jar grid size in cells
const (
	jarCols  = 22
	jarRows  = 9
	fillBars = 20
)

// Position ranges produced by the store
const (
	jarMinX, jarSpanX = 10.0, 80.0
	jarMinY, jarSpanY = 20.0, 60.0
)

// jarGrid places tokens on a cols x rows grid. Y is measured from the
// bottom of the jar, so row 0 holds the highest tokens. When two tokens
// share a cell the one with the higher Z is kept; on equal Z the later one wins.
func jarGrid(tokens []models.CompletedTask, cols, rows int) [][]*models.CompletedTask {
	grid := make([][]*models.CompletedTask, rows)
	for r := range grid {
		grid[r] = make([]*models.CompletedTask, cols)
	}
	for i := range tokens {
		t := &tokens[i]
		col := clamp(int((t.JarPosition.X-jarMinX)/jarSpanX*float64(cols)), 0, cols-1)
		row := rows - 1 - clamp(int((t.JarPosition.Y-jarMinY)/jarSpanY*float64(rows)), 0, rows-1)
		if cur := grid[row][col]; cur == nil || t.JarPosition.Z >= cur.JarPosition.Z {
			grid[row][col] = t
		}
	}
	return grid
}

// fillBar renders a fill percentage as a fixed width bar
func fillBar(fill float64, width int) string {
	filled := clamp(int(fill/100*float64(width)), 0, width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func renderJar(s *styles.Styles, tokens []models.CompletedTask, stats models.Stats) string {
	var lines []string
	for _, row := range jarGrid(tokens, jarCols, jarRows) {
		var b strings.Builder
		for _, cell := range row {
			if cell == nil {
				b.WriteString(" ")
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(styles.NoteColor(cell.Color)).Render("●"))
		}
		lines = append(lines, b.String())
	}

	lid := s.TitleMuted.Render("╭" + strings.Repeat("─", jarCols+2) + "╮")
	jar := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Task Jar"),
		lid,
		s.Jar.Render(strings.Join(lines, "\n")),
	)

	bar := fmt.Sprintf("%s %3.0f%%", fillBar(stats.JarFill, fillBars), stats.JarFill)
	if stats.JarFull {
		bar = s.JarFull.Render(bar + "  Jar Full!")
	}

	counts := []string{
		"",
		bar,
		"",
		fmt.Sprintf("Streak  %d day%s", stats.Streak, plural(stats.Streak)),
		fmt.Sprintf("Today   %d", stats.Today),
		fmt.Sprintf("Week    %d", stats.Week),
		fmt.Sprintf("Total   %d / %d", stats.Completed, stats.JarCapacity),
		"",
		s.Title.Render("Achievements"),
	}

	for _, a := range stats.Achievements {
		if a.Unlocked {
			counts = append(counts, s.Unlocked.Render("★ "+a.Name))
		} else {
			counts = append(counts, s.Locked.Render("☆ "+a.Name))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{jar}, counts...)...)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
