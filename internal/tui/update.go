package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mahavak/rhonda/internal/gamify"
	"github.com/mahavak/rhonda/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state == StateTrackForm || m.state == StateSaunaForm {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}

	if m.state == StateTrackForm || m.state == StateSaunaForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.state = SessionState((int(m.state) + 1) % len(tabTitles))
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = SessionState((int(m.state) + len(tabTitles) - 1) % len(tabTitles))
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.cursorMax() {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Track):
		return m.openTrackForm()

	case key.Matches(msg, m.keys.Sauna):
		return m.openSaunaForm()

	case key.Matches(msg, m.keys.Start):
		if m.state == StateChallenges {
			return m.startSelectedChallenge()
		}
		return m, nil

	case key.Matches(msg, m.keys.Claim):
		if m.state == StateChallenges {
			return m.claimSelectedChallenge()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) cursorMax() int {
	switch m.state {
	case StateAchievements:
		return len(m.defs) - 1
	case StateChallenges:
		return len(m.doc.Challenges) - 1
	default:
		return 0
	}
}

func (m Model) openTrackForm() (tea.Model, tea.Cmd) {
	options := make([]huh.Option[string], 0, len(m.doc.SupplementCatalog))
	for _, def := range m.doc.SupplementCatalog {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", def.Name, def.Timing), def.ID))
	}

	m.trackForm = &trackFormModel{Taken: true}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Supplement").
			Options(options...).
			Value(&m.trackForm.SupplementID),
		huh.NewConfirm().
			Title("Taken?").
			Value(&m.trackForm.Taken),
	))

	m.previousState = m.state
	m.state = StateTrackForm
	return m, m.form.Init()
}

func (m Model) openSaunaForm() (tea.Model, tea.Cmd) {
	m.saunaForm = &saunaFormModel{Duration: "20", Temperature: "174"}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Duration (minutes)").
			Value(&m.saunaForm.Duration),
		huh.NewInput().
			Title("Temperature (F)").
			Value(&m.saunaForm.Temperature),
	))

	m.previousState = m.state
	m.state = StateSaunaForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		m.state = m.previousState
		return m, cmd
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case StateTrackForm:
		_, err := m.recorder.RecordSupplement(m.trackForm.SupplementID, m.trackForm.Taken, "")
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = "Recorded " + m.trackForm.SupplementID
		}
	case StateSaunaForm:
		duration, err := strconv.Atoi(m.saunaForm.Duration)
		if err != nil {
			m.status = "Invalid duration"
			break
		}
		temperature, err := strconv.ParseFloat(m.saunaForm.Temperature, 64)
		if err != nil {
			m.status = "Invalid temperature"
			break
		}
		if _, err := m.recorder.RecordSauna(duration, temperature, ""); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Recorded sauna session: %d min", duration)
		}
	}

	m.state = m.previousState
	m.refresh()
	return m, cmd
}

func (m Model) startSelectedChallenge() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.doc.Challenges) {
		return m, nil
	}
	id := m.doc.Challenges[m.cursor].ID

	err := m.store.Update(func(doc *models.Document) error {
		return gamify.StartChallenge(doc, id, time.Now())
	})
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = "Started " + id
	}
	m.refresh()
	return m, nil
}

func (m Model) claimSelectedChallenge() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.doc.Challenges) {
		return m, nil
	}
	id := m.doc.Challenges[m.cursor].ID

	err := m.store.Update(func(doc *models.Document) error {
		return gamify.ClaimReward(doc, id)
	})
	switch {
	case err == gamify.ErrAlreadyClaimed:
		m.status = "Reward already claimed"
	case err == gamify.ErrChallengeIncomplete:
		m.status = "Challenge target not reached yet"
	case err != nil:
		m.status = err.Error()
	default:
		m.status = "Claimed reward for " + id
	}
	m.refresh()
	return m, nil
}
