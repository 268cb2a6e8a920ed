package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mahavak/rhonda/internal/analytics"
	"github.com/mahavak/rhonda/internal/catalog"
	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/storage"
	"github.com/mahavak/rhonda/internal/tracker"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateHeatmap
	StateAchievements
	StateChallenges
	StateTrackForm
	StateSaunaForm
)

var tabTitles = []string{"Dashboard", "Heatmap", "Achievements", "Challenges"}

type trackFormModel struct {
	SupplementID string
	Taken        bool
}

type saunaFormModel struct {
	Duration    string
	Temperature string
}

type Model struct {
	store    *storage.DocumentStore
	recorder *tracker.Recorder
	cache    *analytics.Cache

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	doc   models.Document
	stats analytics.Stats
	defs  []models.AchievementDefinition

	form      *huh.Form
	trackForm *trackFormModel
	saunaForm *saunaFormModel

	cursor   int
	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(store *storage.DocumentStore, recorder *tracker.Recorder) Model {
	m := Model{
		store:    store,
		recorder: recorder,
		cache:    analytics.NewCache(),
		state:    StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		defs:     catalog.Achievements(),
	}
	m.refresh()
	return m
}

// refresh re-reads the snapshot and re-derives the dashboard stats.
func (m *Model) refresh() {
	doc, err := m.store.Snapshot()
	if err != nil {
		m.status = "Failed to read storage: " + err.Error()
		return
	}
	m.doc = doc
	m.stats = m.cache.Stats(doc, time.Now())
}

func (m Model) Init() tea.Cmd {
	return nil
}
