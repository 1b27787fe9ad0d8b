// Package ui is the single-screen terminal front end of the predictor.
//
// The screen mirrors a small form: a read-only district dropdown, a
// "Predict Impact" button, the result label, an impact bar and the pros and
// cons of the resulting tier. Input and data errors open a modal dialog that
// must be dismissed before anything else is processed; they never change
// the result already on screen.
package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ezoic/sipp/impact"
	sippErrors "github.com/ezoic/sipp/pkg/errors"
	"github.com/ezoic/sipp/pkg/log"
)

// Predictor produces a district prediction.
type Predictor interface {
	PredictForDistrict(district string) (impact.Result, error)
}

// ChartRenderer draws the chart for a score, replacing the previous one.
type ChartRenderer interface {
	Render(score float64) error
}

type focus int

const (
	focusDropdown focus = iota
	focusButton
)

// Dialog is a blocking message box.
type Dialog struct {
	Title   string
	Message string
}

// Model is the bubbletea model of the predictor screen.
type Model struct {
	predictor Predictor
	chart     ChartRenderer
	chartPath string

	districts []string
	cursor    int
	open      bool
	selected  string
	focus     focus

	result *impact.Result
	dialog *Dialog

	keys   keyMap
	help   help.Model
	width  int
	logger log.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithChart renders a chart image after each prediction. path is only
// displayed.
func WithChart(r ChartRenderer, path string) Option {
	return func(m *Model) {
		m.chart = r
		m.chartPath = path
	}
}

// New builds the screen for the given dropdown values.
func New(p Predictor, districts []string, opts ...Option) Model {
	m := Model{
		predictor: p,
		districts: append([]string(nil), districts...),
		keys:      defaultKeyMap(),
		help:      help.New(),
		logger:    log.GetLoggerWithName("ui"),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Selected returns the chosen district, empty when none.
func (m Model) Selected() string { return m.selected }

// Result returns the displayed prediction, nil before the first success.
func (m Model) Result() *impact.Result { return m.result }

// Dialog returns the open dialog, nil when none.
func (m Model) Dialog() *Dialog { return m.dialog }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.dialog != nil {
			if key.Matches(msg, m.keys.Dismiss) {
				m.dialog = nil
			}
			return m, nil
		}
		if m.open {
			return m.updateList(msg), nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			if m.focus == focusDropdown {
				m.focus = focusButton
			} else {
				m.focus = focusDropdown
			}
		case key.Matches(msg, m.keys.Predict):
			m = m.predict()
		case key.Matches(msg, m.keys.Toggle):
			if m.focus == focusButton {
				m = m.predict()
			} else if len(m.districts) > 0 {
				m.open = true
			}
		case key.Matches(msg, m.keys.Down):
			if m.focus == focusDropdown && len(m.districts) > 0 {
				m.open = true
			}
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) Model {
	switch {
	case msg.Type == tea.KeyEsc:
		m.open = false
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.districts)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.selected = m.districts[m.cursor]
		m.open = false
	}
	return m
}

// predict runs the prediction for the selected district. Failures open a
// dialog and keep the previous result.
func (m Model) predict() Model {
	if m.selected == "" {
		m.dialog = &Dialog{Title: "Input Error", Message: "Please select a district."}
		return m
	}

	res, err := m.predictor.PredictForDistrict(m.selected)
	switch {
	case sippErrors.Is(err, impact.ErrNoData):
		m.dialog = &Dialog{Title: "Data Error", Message: "No data found for " + m.selected + "."}
		return m
	case sippErrors.Is(err, impact.ErrNoSelection):
		m.dialog = &Dialog{Title: "Input Error", Message: "Please select a district."}
		return m
	case err != nil:
		m.logger.Error("Prediction failed", err, log.DistrictKey, m.selected)
		m.dialog = &Dialog{Title: "Prediction Error", Message: err.Error()}
		return m
	}

	m.result = &res

	if m.chart != nil {
		if err := m.chart.Render(res.Score); err != nil {
			m.logger.Error("Chart rendering failed", err, log.PathKey, m.chartPath)
			m.dialog = &Dialog{Title: "Chart Error", Message: err.Error()}
		}
	}
	return m
}
