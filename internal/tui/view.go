package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mahavak/rhonda/internal/gamify"
	"github.com/mahavak/rhonda/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = m.viewDashboard()
	case StateHeatmap:
		content = m.viewHeatmap()
	case StateAchievements:
		content = m.viewAchievements()
	case StateChallenges:
		content = m.viewChallenges()
	case StateTrackForm, StateSaunaForm:
		return m.form.View()
	}

	sections := []string{m.viewTabs(), content}
	if m.status != "" {
		sections = append(sections, docStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	row := func(label, value string) string {
		return statLabelStyle.Render(label) + statValueStyle.Render(value)
	}

	lines := []string{
		row("Level", fmt.Sprintf("%d", gamify.Level(m.doc.Progress.TotalPoints))),
		row("Points", fmt.Sprintf("%d", m.doc.Progress.TotalPoints)),
		row("Current streak", fmt.Sprintf("%d days", m.stats.Streak)),
		row("Longest streak", fmt.Sprintf("%d days", m.doc.Progress.StreakLongest)),
		row("Consistency (30d)", fmt.Sprintf("%d%%", m.stats.Consistency)),
		row("Supplements taken", fmt.Sprintf("%d", m.stats.Supplements)),
		row("Sauna sessions", fmt.Sprintf("%d", m.stats.SaunaTotal)),
		row("Days tracked", fmt.Sprintf("%d", m.stats.DaysTracked)),
		"",
		row("Monthly cost", fmt.Sprintf("$%.2f", m.stats.Costs.Total)),
	}
	for _, slot := range models.TimingSlots() {
		lines = append(lines, row("  "+string(slot), fmt.Sprintf("$%.2f", m.stats.Costs.BySlot[slot])))
	}

	return docStyle.Render(strings.Join(lines, "\n"))
}

// viewHeatmap renders the trailing window as week columns, one rune per
// day, brighter with more activity.
func (m Model) viewHeatmap() string {
	var b strings.Builder
	for i, day := range m.stats.Heatmap {
		style := heatStyles[heatLevel(day.Intensity)]
		if day.Count == 0 {
			b.WriteString(style.Render("·"))
		} else {
			b.WriteString(style.Render("■"))
		}
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	legend := lockedStyle.Render("· none") + "  " + heatStyles[4].Render("■ most active")
	return docStyle.Render(b.String() + "\n" + legend)
}

func heatLevel(intensity float64) int {
	switch {
	case intensity == 0:
		return 0
	case intensity <= 0.25:
		return 1
	case intensity <= 0.5:
		return 2
	case intensity <= 0.75:
		return 3
	default:
		return 4
	}
}

func (m Model) viewAchievements() string {
	var lines []string
	for i, def := range m.defs {
		style := lockedStyle
		marker := "[ ]"
		if m.doc.Progress.HasAchievement(def.ID) {
			style = unlockedStyle
			marker = "[x]"
		}
		line := fmt.Sprintf("%s %-20s %-45s %4d pts", marker, def.Name, def.Description, def.Points)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewChallenges() string {
	var lines []string
	for i, ch := range m.doc.Challenges {
		status := "inactive"
		if ch.Active {
			status = fmt.Sprintf("%d/%d since %s", ch.Progress, ch.Target, ch.StartDate)
		}
		line := fmt.Sprintf("%-20s %-45s %4d pts  %s", ch.ID, ch.Description, ch.Points, status)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		} else if ch.Active {
			line = unlockedStyle.Render(line)
		} else {
			line = lockedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", lockedStyle.Render("a: start challenge  c: claim reward"))
	return docStyle.Render(strings.Join(lines, "\n"))
}
