package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/sidelined/internal/match"
	"github.com/lox/sidelined/internal/report"
	"github.com/lox/sidelined/internal/store"
)

// Model is the Bubble Tea model for the sideline console. All match
// mutations go through the engine; the model only renders snapshots
// and translates typed commands into engine calls.
type Model struct {
	engine    *match.Engine
	lineup    match.Lineup
	store     *store.Store
	matchName string
	tolerance float64
	logger    *log.Logger

	// UI components
	logViewport  viewport.Model
	commandInput textinput.Model

	// State
	entries     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Schedule info for the header
	periodLength time.Duration
	breakLength  time.Duration

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string // For test assertions
}

// tickMsg drives the once-a-second clock refresh.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// New creates a console model bound to a running engine. The lineup is
// what the start command submits; store and matchName back the save
// command.
func New(engine *match.Engine, lineup match.Lineup, st *store.Store, matchName string, tolerance float64, logger *log.Logger) *Model {
	return NewWithOptions(engine, lineup, st, matchName, tolerance, logger, false)
}

// NewWithOptions creates a console model with test mode option
func NewWithOptions(engine *match.Engine, lineup match.Lineup, st *store.Store, matchName string, tolerance float64, logger *log.Logger, testMode bool) *Model {
	// Viewport gets a minimal initial size and is resized when the
	// first WindowSizeMsg arrives.
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter a command (start, sub OUT IN, pause, resume, report, help)"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		engine:       engine,
		lineup:       lineup,
		store:        st,
		matchName:    matchName,
		tolerance:    tolerance,
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		commandInput: ti,
		entries:      []string{},
		focusedPane:  1, // Start with input focused
		testMode:     testMode,
		capturedLog:  []string{},
	}
	engine.Bus().Subscribe(m)
	return m
}

// Init initializes the console model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// OnEvent renders successful match events into the activity log.
func (m *Model) OnEvent(ev match.Event) {
	clock := report.FormatClock(ev.Elapsed)
	switch ev.Type {
	case match.EventTypeGameStart:
		m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("[%s] game started", clock)))
	case match.EventTypeGamePause:
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("[%s] clock paused", clock)))
	case match.EventTypeGameResume:
		m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("[%s] clock running", clock)))
	case match.EventTypePeriodEnd:
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("[%s] period %d over", clock, ev.Period)))
	case match.EventTypePeriodResume:
		m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("[%s] period %d underway", clock, ev.Period+1)))
	case match.EventTypeSubstitution:
		m.AddLogEntry(fmt.Sprintf("[%s] sub: %s off, %s on", clock, ev.Out, ev.In))
	case match.EventTypeAdjustment:
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("[%s] clock adjusted", clock)))
	case match.EventTypeStoppage:
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("[%s] stoppage time added", clock)))
	case match.EventTypeGameEnd:
		m.AddLogEntry(HeaderStyle.Render(fmt.Sprintf("[%s] full time", clock)))
	case match.EventTypeUndo:
		m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("[%s] last command undone", clock)))
	}
}

// Update handles messages in the console
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		// Re-render with the current clock reading
		cmds = append(cmds, tick())

	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.commandInput.Focus()
			} else {
				m.focusedPane = 0
				m.commandInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.commandInput.Value())
				m.commandInput.SetValue("")
				if input != "" {
					if quit := m.ProcessCommand(input); quit {
						m.quitting = true
						return m, tea.Sequence(tea.ClearScreen, tea.Quit)
					}
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.commandInput, cmd = m.commandInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Always update viewport (for scrolling)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the console
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	// Command pane (bottom, full width)
	commandContent := m.renderCommandPane()
	commandHeight := lipgloss.Height(commandContent)
	calculatedCommandWidth := m.width - 2
	calculatedCommandHeight := commandHeight - 2
	if calculatedCommandWidth < 1 {
		calculatedCommandWidth = 1
	}
	if calculatedCommandHeight < 1 {
		calculatedCommandHeight = 1
	}

	commandStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(calculatedCommandWidth).
		Height(calculatedCommandHeight)
	commandPane := commandStyle.Render(commandContent)

	// Sidebar pane (right of log, roster + fairness)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := lipgloss.Width(sidebarContent)

	calculatedSidebarWidth := 30
	if sidebarWidth > calculatedSidebarWidth {
		calculatedSidebarWidth = sidebarWidth
	}
	calculatedSidebarHeight := m.height - commandHeight - lipgloss.Height(header) - 4
	if calculatedSidebarWidth < 1 {
		calculatedSidebarWidth = 1
	}
	if calculatedSidebarHeight < 1 {
		calculatedSidebarHeight = 1
	}

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedSidebarWidth).
		Height(calculatedSidebarHeight)
	sidebarPane := sidebarStyle.Render(sidebarContent)

	// Log pane (left, fills the remaining space)
	m.logViewport.SetContent(strings.Join(m.entries, "\n"))

	calculatedLogWidth := m.width - calculatedSidebarWidth - 4
	calculatedLogHeight := m.height - commandHeight - lipgloss.Height(header) - 4
	if calculatedLogWidth < 1 {
		calculatedLogWidth = 1
	}
	if calculatedLogHeight < 1 {
		calculatedLogHeight = 1
	}

	m.logViewport.Width = calculatedLogWidth
	m.logViewport.Height = calculatedLogHeight

	if !m.initialized && calculatedLogWidth > 1 && calculatedLogHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedLogWidth).
		Height(calculatedLogHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)

	return lipgloss.JoinVertical(lipgloss.Top, header, topRow, commandPane)
}

// SetSchedule sets the planned period and break lengths shown in the
// header. The engine never enforces these; the operator blows the whistle.
func (m *Model) SetSchedule(periodLength, breakLength time.Duration) {
	m.periodLength = periodLength
	m.breakLength = breakLength
}

// renderHeader renders the match name, phase and clock line
func (m *Model) renderHeader() string {
	s := m.engine.Snapshot()
	now := m.engine.Now()

	name := m.matchName
	if name == "" {
		name = "match"
	}

	period := fmt.Sprintf("period %d/%d", s.PeriodIndex+1, s.PeriodCount)
	clock := report.FormatClock(s.Elapsed(now))
	periodClock := report.FormatClock(s.PeriodElapsedNow(now))
	if m.periodLength > 0 {
		periodClock += " / " + report.FormatClock(m.periodLength)
	}

	phase := s.Phase.String()
	if s.Phase == match.PeriodBreak && m.breakLength > 0 {
		phase += fmt.Sprintf(" (%s)", report.FormatClock(m.breakLength))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		HeaderStyle.Render(" "+name+" "),
		InfoStyle.Render("  "+phase+"  "+period+"  "),
		ClockStyle.Render(clock),
		InfoStyle.Render("  ("+periodClock+" this period)"),
	)
}

// renderSidebarPane lists who is on the field and on the bench with
// accumulated time and fairness classification.
func (m *Model) renderSidebarPane() string {
	s := m.engine.Snapshot()
	now := m.engine.Now()
	elapsed := s.Elapsed(now)
	fr := match.Fairness(s, now, m.tolerance)

	classes := make(map[match.PlayerID]match.Classification, len(fr.Players))
	for _, pf := range fr.Players {
		classes[pf.ID] = pf.Classification
	}

	var content strings.Builder
	content.WriteString(PaneTitleStyle.Render("On field"))
	content.WriteString("\n")
	onField := s.OnField()
	sort.Slice(onField, func(i, j int) bool { return onField[i].Position < onField[j].Position })
	for _, p := range onField {
		line := fmt.Sprintf("  %-3s %-12s %s", p.Position, p.ID, report.FormatClock(p.Total(elapsed)))
		content.WriteString(m.classStyle(classes[p.ID], OnFieldStyle).Render(line))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(PaneTitleStyle.Render("Bench"))
	content.WriteString("\n")
	for _, p := range s.Roster {
		if p.OnField {
			continue
		}
		line := fmt.Sprintf("      %-12s %s", p.ID, report.FormatClock(p.Total(elapsed)))
		content.WriteString(m.classStyle(classes[p.ID], BenchStyle).Render(line))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("target %s  ±%.0f%%",
		report.FormatClock(fr.Target), m.tolerance*100)))

	return content.String()
}

func (m *Model) classStyle(c match.Classification, fair lipgloss.Style) lipgloss.Style {
	switch c {
	case match.Under:
		return UnderStyle
	case match.Over:
		return OverStyle
	default:
		return fair
	}
}

// renderCommandPane renders the command input pane
func (m *Model) renderCommandPane() string {
	var content strings.Builder

	content.WriteString(m.commandInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render(
			"Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render(
			"Tab to scroll log • Enter to submit • 'help' for commands • Ctrl+C to quit"))
	}

	return content.String()
}

// ProcessCommand parses and runs a typed command against the engine.
// It returns true when the console should exit.
func (m *Model) ProcessCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "start":
		_, err = m.engine.StartGame(m.lineup)
	case "sub":
		if len(args) != 2 {
			err = fmt.Errorf("usage: sub OUT IN")
			break
		}
		_, err = m.engine.Substitute(match.PlayerID(args[0]), match.PlayerID(args[1]))
	case "pause":
		_, err = m.engine.Pause()
	case "resume":
		_, err = m.engine.Resume()
	case "period":
		_, err = m.engine.EndPeriod()
	case "next":
		_, err = m.engine.ResumePeriod()
	case "adjust":
		var d time.Duration
		if d, err = parseDuration(args); err == nil {
			_, err = m.engine.AdjustTime(d)
		}
	case "stoppage":
		var d time.Duration
		if d, err = parseDuration(args); err == nil {
			_, err = m.engine.AddStoppage(d)
		}
	case "end":
		_, err = m.engine.EndGame()
	case "undo":
		_, err = m.engine.Undo()
	case "save":
		if err = m.store.Save(m.matchName, m.engine.Snapshot()); err == nil {
			m.AddLogEntry(SuccessStyle.Render("saved to " + m.store.Path(m.matchName)))
		}
	case "report":
		m.showReport()
	case "help":
		m.showHelp()
	case "quit", "exit":
		return true
	default:
		err = fmt.Errorf("unknown command %q, try 'help'", cmd)
	}

	if err != nil {
		m.AddLogEntry(ErrorStyle.Render("✗ " + err.Error()))
	}
	return false
}

// parseDuration reads a single duration argument. Bare integers are
// taken to mean minutes, so "adjust 2" and "adjust 2m" agree.
func parseDuration(args []string) (time.Duration, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a duration argument, e.g. 2m or 30s")
	}
	if n, err := strconv.Atoi(args[0]); err == nil {
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return 0, fmt.Errorf("bad duration %q: %w", args[0], err)
	}
	return d, nil
}

// showReport prints the playing-time table into the activity log.
func (m *Model) showReport() {
	r := report.Build(m.engine.Snapshot(), m.engine.Now(), m.tolerance)

	m.AddLogEntry(PaneTitleStyle.Render(fmt.Sprintf(
		"Playing time at %s (target %s)",
		report.FormatClock(r.Elapsed), report.FormatClock(r.Target))))
	for _, row := range r.Rows {
		sign := "+"
		if row.Deviation < 0 {
			sign = "-"
		}
		dev := row.Deviation
		if dev < 0 {
			dev = -dev
		}
		line := fmt.Sprintf("  %-12s %s  %s%s  %s",
			row.ID, report.FormatClock(row.Total), sign, report.FormatClock(dev),
			row.Classification)
		m.AddLogEntry(m.classStyle(row.Classification, OnFieldStyle).Render(line))
	}
	m.AddLogEntry(InfoStyle.Render(fmt.Sprintf(
		"  under %d · fair %d · over %d · median %s",
		r.UnderCount, r.FairCount, r.OverCount, report.FormatClock(r.Median))))
}

func (m *Model) showHelp() {
	for _, line := range []string{
		"start               kick off with the configured lineup",
		"sub OUT IN          swap a field player for a bench player",
		"pause / resume      stop and restart the clock",
		"period              end the current period",
		"next                start the next period",
		"adjust DUR          correct the clock (e.g. adjust -30s)",
		"stoppage DUR        record added time (e.g. stoppage 2m)",
		"undo                revert the last command",
		"report              show the playing-time table",
		"save                write the match to disk",
		"end                 final whistle",
		"quit                leave the console",
	} {
		m.AddLogEntry(InfoStyle.Render("  " + line))
	}
}

// AddLogEntry adds an entry to the activity log
func (m *Model) AddLogEntry(entry string) {
	m.entries = append(m.entries, entry)

	// In test mode, also capture the log entry
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return // Skip UI updates in test mode
	}

	m.logViewport.SetContent(strings.Join(m.entries, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}
