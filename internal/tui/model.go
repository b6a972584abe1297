package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	filesearch "github.com/pr-poehali-dev/file-search-app"
	"github.com/pr-poehali-dev/file-search-app/internal/domain/search/snippet"
	"github.com/pr-poehali-dev/file-search-app/internal/guard"
	"github.com/pr-poehali-dev/file-search-app/internal/metrics"
)

// Engine is the TUI-facing subset of the search engine.
type Engine interface {
	Documents(ctx context.Context) []filesearch.Document
	Delete(ctx context.Context, id string) bool
	NewSession() *filesearch.Session
}

const (
	maxDocRows = 5
	toastTTL   = 4 * time.Second
)

type pane int

const (
	paneQuery pane = iota
	paneDocuments
)

type toast struct {
	text        string
	destructive bool
}

// Model is the Bubble Tea model for the search application.
type Model struct {
	eng      Engine
	session  *filesearch.Session
	notifier *Notifier
	guard    *guard.Guard

	input    textinput.Model
	viewport viewport.Model

	docs      []filesearch.Document
	outcome   filesearch.Outcome
	hasAnswer bool

	focus     pane
	cursor    int
	toast     toast
	toastSeq  int
	width     int
	ready     bool
	searching bool
	lastQuery string
	showStats bool
}

// New creates a model over an engine. The guard may be nil; a nil
// notifier gets replaced with a fresh one so the listeners always have
// a channel to wait on.
func New(eng Engine, notifier *Notifier, g *guard.Guard) Model {
	if notifier == nil {
		notifier = NewNotifier()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		eng:      eng,
		session:  eng.NewSession(),
		notifier: notifier,
		guard:    g,
		input:    ti,
		viewport: vp,
		docs:     eng.Documents(context.Background()),
	}
}

// Init starts the cursor blink and the two event listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitOutcome(m.session), waitEvent(m.notifier))
}

// Update handles key, mouse, window and engine events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		_, dh := docsBoxStyle.GetFrameSize()
		reserved := 1 + maxDocRows + dh + qh + 1 + 1 // header, docs pane, query box, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case outcomeMsg:
		m.outcome = msg.outcome
		m.hasAnswer = true
		m.searching = false
		m.viewport.SetContent(m.renderAnswer())
		m.viewport.GotoTop()
		return m, waitOutcome(m.session)

	case outcomesClosedMsg:
		return m, nil

	case eventMsg:
		m.toastSeq++
		m.toast = toast{
			text:        msg.event.Title + ": " + msg.event.Description,
			destructive: msg.event.Severity == filesearch.SeverityDestructive,
		}
		if msg.event.Kind != filesearch.EventQueryRejected {
			m.docs = m.eng.Documents(context.Background())
			m.clampCursor()
		}
		return m, tea.Batch(waitEvent(m.notifier), expireToast(m.toastSeq))

	case toastExpiredMsg:
		if msg.id == m.toastSeq {
			m.toast = toast{}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The guard decides before any binding: a blocked chord is
	// swallowed whole.
	if m.guard != nil && m.guard.Blocked(key) {
		m.toastSeq++
		m.toast = toast{text: "Copying is disabled while the content guard is active", destructive: true}
		return m, expireToast(m.toastSeq)
	}

	switch key {
	case "ctrl+c", "esc":
		m.session.Close()
		return m, tea.Quit

	case "tab":
		if m.focus == paneQuery {
			m.focus = paneDocuments
			m.input.Blur()
		} else {
			m.focus = paneQuery
			m.input.Focus()
		}
		return m, nil

	case "ctrl+t":
		m.showStats = !m.showStats
		return m, nil

	case "enter":
		if m.focus != paneQuery {
			return m, nil
		}
		raw := m.input.Value()
		if _, err := m.session.Submit(context.Background(), raw); err != nil {
			// The rejection reason arrives as a destructive toast
			// through the notifier.
			return m, nil
		}
		m.searching = true
		m.lastQuery = strings.TrimSpace(raw)
		return m, nil

	case "up":
		if m.focus == paneDocuments {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

	case "down":
		if m.focus == paneDocuments {
			if m.cursor < len(m.docs)-1 {
				m.cursor++
			}
			return m, nil
		}

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "ctrl+d":
		if m.focus == paneDocuments && len(m.docs) > 0 {
			m.eng.Delete(context.Background(), m.docs[m.cursor].ID)
			m.docs = m.eng.Documents(context.Background())
			m.clampCursor()
		}
		return m, nil
	}

	if m.focus == paneQuery {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.docs) {
		m.cursor = len(m.docs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders header, documents pane, answer pane, query box and the
// status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("File Search") + " " +
		subtleStyle.Render(fmt.Sprintf("%d documents", len(m.docs)))
	docs := docsBoxStyle.Render(m.renderDocuments())
	answer := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	return header + "\n" + docs + "\n" + answer + "\n" + input + "\n" + m.renderStatus()
}

func (m Model) renderDocuments() string {
	if len(m.docs) == 0 {
		return subtleStyle.Render("No documents yet. Pass files on the command line to ingest them.")
	}

	// Window of maxDocRows rows that follows the cursor.
	start := 0
	if m.cursor >= maxDocRows {
		start = m.cursor - maxDocRows + 1
	}
	end := min(start+maxDocRows, len(m.docs))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		d := m.docs[i]
		line := fmt.Sprintf("%s  %s  %s", d.Name, d.Size, d.UploadDate)
		if i == m.cursor && m.focus == paneDocuments {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAnswer() string {
	if !m.hasAnswer {
		return "Type a query and press Enter."
	}

	var b strings.Builder
	b.WriteString(answerStyle.Render(m.outcome.Answer))
	b.WriteString("\n")
	for i, r := range m.outcome.Results {
		b.WriteString("\n")
		b.WriteString(resultTitleStyle.Render(
			fmt.Sprintf("%d. %s  relevance %.1f", i+1, r.DocumentName, r.Relevance),
		))
		b.WriteString("\n")
		b.WriteString(highlightMatches(r.Snippet, m.outcome.Query))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.showStats {
		snap := metrics.Snapshot()
		if snap == "" {
			snap = "no metrics recorded"
		}
		return subtleStyle.Render(snap)
	}
	if m.toast.text != "" {
		if m.toast.destructive {
			return destructiveStyle.Render(m.toast.text)
		}
		return infoStyle.Render(m.toast.text)
	}
	if m.searching {
		return subtleStyle.Render(fmt.Sprintf("Searching %q (%s, cycle %d)...",
			m.lastQuery, m.session.State(), m.session.Seq()))
	}
	return subtleStyle.Render("tab: switch pane · ctrl+d: delete · ctrl+t: stats · ctrl+c: quit")
}

// Run starts the program on the alternate screen. Mouse capture stays
// on while the guard is active, which also disables the terminal's
// native select-to-copy.
func Run(m Model) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if m.guard != nil && m.guard.Active() {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

type outcomeMsg struct{ outcome filesearch.Outcome }

type outcomesClosedMsg struct{}

type eventMsg struct{ event filesearch.Event }

type toastExpiredMsg struct{ id int }

func waitOutcome(s *filesearch.Session) tea.Cmd {
	return func() tea.Msg {
		out, ok := <-s.Outcomes()
		if !ok {
			return outcomesClosedMsg{}
		}
		return outcomeMsg{outcome: out}
	}
}

func waitEvent(n *Notifier) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-n.Events()}
	}
}

func expireToast(id int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	subtleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	destructiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	answerStyle      = lipgloss.NewStyle().Bold(true)
	resultTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	highlightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	docsBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	resultBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// highlightMatches styles every case-insensitive occurrence of query
// inside text, keeping the original characters.
func highlightMatches(text, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return text
	}
	qLen := utf8.RuneCountInString(query)

	var b strings.Builder
	rest := text
	for {
		idx := snippet.Locate(rest, query)
		if idx < 0 {
			b.WriteString(rest)
			return b.String()
		}
		runes := []rune(rest)
		b.WriteString(string(runes[:idx]))
		b.WriteString(highlightStyle.Render(string(runes[idx : idx+qLen])))
		rest = string(runes[idx+qLen:])
	}
}
