package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textsum/internal/domain"
	"textsum/internal/export"
	"textsum/internal/summarizer"
)

// percentStep matches the granularity of the percent slider.
const percentStep = 5

// SummaryPort is the TUI-facing subset of the summary service.
type SummaryPort interface {
	Summarize(ctx context.Context, doc domain.Document, percent int) (domain.Result, error)
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service    SummaryPort
	copier     export.Copier
	exportPath string
	docs       []domain.Document
	cursor     int
	percent    int
	result     domain.Result
	input      textinput.Model
	viewport   viewport.Model
	status     string
	ready      bool
}

// New creates a new TUI model instance and summarizes the first document.
func New(service SummaryPort, docs []domain.Document, percent int, copier export.Copier, exportPath string) Model {
	ti := textinput.New()
	ti.Prompt = "% > "
	ti.Placeholder = fmt.Sprintf("percent %d-%d, Enter to apply", summarizer.MinPercent, summarizer.MaxPercent)
	ti.Focus()
	ti.CharLimit = 4
	vp := viewport.New(0, 0)
	m := Model{
		service:    service,
		copier:     copier,
		exportPath: exportPath,
		docs:       docs,
		percent:    percent,
		input:      ti,
		viewport:   vp,
	}
	m.resummarize()
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + qh + 1 // header, stats, status + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderSummary())
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyLeft, tea.KeyRight:
			// arrows move the cursor while a percent is being typed
			if m.input.Value() != "" {
				break
			}
			if msg.Type == tea.KeyLeft {
				m.setPercent(m.percent - percentStep)
			} else {
				m.setPercent(m.percent + percentStep)
			}
			return m, nil
		case tea.KeyTab:
			if len(m.docs) > 1 {
				m.cursor = (m.cursor + 1) % len(m.docs)
				m.resummarize()
			}
			return m, nil
		case tea.KeyShiftTab:
			if len(m.docs) > 1 {
				m.cursor = (m.cursor - 1 + len(m.docs)) % len(m.docs)
				m.resummarize()
			}
			return m, nil
		case tea.KeyCtrlY:
			m.copySummary()
			return m, nil
		case tea.KeyCtrlS:
			m.saveSummary()
			return m, nil
		case tea.KeyEnter:
			m.applyInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current summary.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render(m.title())
	stats := statsStyle.Render(m.renderStats())
	summary := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + stats + "\n" + summary + "\n" + input + "\n" + status
}

func (m *Model) setPercent(p int) {
	p = min(max(p, summarizer.MinPercent), summarizer.MaxPercent)
	if p == m.percent {
		return
	}
	m.percent = p
	m.resummarize()
}

func (m *Model) applyInput() {
	raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m.input.Value()), "%"))
	if raw == "" {
		return
	}
	p, err := strconv.Atoi(raw)
	if err != nil {
		m.status = fmt.Sprintf("Error: %q is not a number", raw)
		return
	}
	if err := summarizer.ValidatePercent(p); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.input.SetValue("")
	m.percent = p
	m.resummarize()
}

func (m *Model) resummarize() {
	if len(m.docs) == 0 {
		m.status = "No documents loaded."
		return
	}
	res, err := m.service.Summarize(context.Background(), m.docs[m.cursor], m.percent)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.result = res
	m.status = fmt.Sprintf("%d%% kept: %d of %d sentences", m.percent, len(res.Summary.Sentences), res.Summary.Total)
	m.viewport.SetContent(m.renderSummary())
	m.viewport.GotoTop()
}

func (m *Model) copySummary() {
	if m.copier == nil {
		m.status = "Error: clipboard not available"
		return
	}
	if err := m.copier.Copy(m.result.Summary.String()); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.status = "Summary copied to clipboard."
}

func (m *Model) saveSummary() {
	if err := export.Save(m.exportPath, m.result.Summary.String()); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	path := m.exportPath
	if path == "" {
		path = export.DefaultFileName
	}
	m.status = "Summary saved to " + path
}

func (m Model) title() string {
	name := "Text Summarizer"
	if len(m.docs) > 0 {
		doc := m.docs[m.cursor]
		label := doc.Path
		if label == "" {
			label = "stdin"
		}
		name += fmt.Sprintf("  %s (%d/%d)", label, m.cursor+1, len(m.docs))
	}
	return name
}

func (m Model) renderStats() string {
	st := m.result.Stats
	return fmt.Sprintf("%d words · %d sentences · %d paragraphs · %d min read · summary %d words (%d%%)",
		st.Words, st.Sentences, st.Paragraphs, st.ReadingMinutes, m.result.SummaryWords, m.result.Compression)
}

func (m Model) renderSummary() string {
	s := m.result.Summary.String()
	if s == "" {
		return "Nothing to summarize."
	}
	return s
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
