package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	_ "github.com/joho/godotenv/autoload"
)

const frameInterval = 33 * time.Millisecond

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type modelOptions struct {
	config      *Config
	source      Source
	stats       StatsBridge
	mode        Mode
	feedChanged <-chan struct{}
	logger      *slog.Logger
}

func newModel(opts modelOptions) (model, error) {
	loc, err := opts.config.Location()
	if err != nil {
		return model{}, err
	}
	logger := opts.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	input := textinput.New()
	input.Placeholder = "your answer"
	input.CharLimit = 280
	input.Prompt = composeQuestion + " "

	return model{
		mode: opts.mode,
		board: newBoard(boardOptions{
			columns:  opts.config.Columns,
			location: loc,
			logger:   logger,
		}),
		grid:        newGridViewer(),
		demo:        &demoPage{bridge: slogBridge{logger: logger}},
		input:       input,
		config:      opts.config,
		source:      opts.source,
		stats:       opts.stats,
		feedChanged: opts.feedChanged,
		logger:      logger,
		now:         time.Now,
	}, nil
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		fetchFeedCmd(m.source),
		pollCmd(m.config.PollInterval),
		frameCmd(),
		fetchStatsCmd(m.stats),
		statsTickCmd(m.stats, m.config.StatsInterval),
	}
	if m.feedChanged != nil {
		cmds = append(cmds, waitFeedChangeCmd(m.feedChanged))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 2
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		m.board.Apply(Frame{DT: frameDT(m.lastFrame, now)})
		m.lastFrame = now
		return m, frameCmd()

	case pollMsg:
		return m, tea.Batch(fetchFeedCmd(m.source), pollCmd(m.config.PollInterval))

	case feedChangedMsg:
		return m, tea.Batch(fetchFeedCmd(m.source), waitFeedChangeCmd(m.feedChanged))

	case feedMsg:
		m.board.Apply(DataArrived{Body: msg.body, Err: msg.err})
		return m, nil

	case statsTickMsg:
		return m, tea.Batch(fetchStatsCmd(m.stats), statsTickCmd(m.stats, m.config.StatsInterval))

	case statsMsg:
		m.grid.setStats(Stats(msg))
		return m, nil

	case composeDoneMsg:
		if errors.Is(msg.err, errEmptyAnswer) {
			return m, nil
		}
		if msg.err != nil {
			m.errorMessage = "Add failed: " + msg.err.Error()
			return m, nil
		}
		m.successMessage = "Answer added"
		return m, fetchFeedCmd(m.source)

	case exportDoneMsg:
		if msg.err != nil {
			m.errorMessage = "Export failed: " + msg.err.Error()
			return m, nil
		}
		m.successMessage = "Exported " + msg.path
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	px, py := cellCenter(msg.X, msg.Y)

	var ev Event
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ev = Wheel{X: px, Y: py, DeltaY: -keyWheelDelta}
	case msg.Button == tea.MouseButtonWheelDown:
		ev = Wheel{X: px, Y: py, DeltaY: keyWheelDelta}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		ev = PointerDown{X: px, Y: py}
	case msg.Action == tea.MouseActionRelease:
		ev = PointerUp{X: px, Y: py}
	case msg.Action == tea.MouseActionMotion:
		ev = PointerMove{X: px, Y: py}
	default:
		return
	}

	switch m.mode {
	case ModeWall:
		m.board.Apply(ev)
	case ModeGrid:
		m.grid.Apply(ev)
	case ModeDemo:
		if _, ok := ev.(PointerDown); ok && m.demo.hit(msg.X, msg.Y, m.width, m.canvasHeight()) {
			m.demo.press()
			m.successMessage = "Message sent"
		}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.mode == ModeCompose {
		switch key {
		case "esc":
			m.input.Blur()
			m.input.Reset()
			m.mode = ModeWall
			return m, nil
		case "enter":
			answer := m.input.Value()
			path := localPath(m.source)
			now := m.now()
			m.input.Blur()
			m.input.Reset()
			m.mode = ModeWall
			return m, func() tea.Msg {
				return composeDoneMsg{err: appendAnswer(path, answer, now)}
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.help = true
		return m, nil
	case "esc":
		m.clearMessages()
		return m, nil
	case "tab":
		m.clearMessages()
		m.mode = (m.mode + 1) % ModeCompose
		return m, nil
	case "1", "2", "3":
		m.clearMessages()
		m.mode = Mode(key[0] - '1')
		return m, nil
	}

	switch m.mode {
	case ModeWall:
		return m.handleWallKey(key)
	case ModeGrid:
		for _, ev := range m.navigationEvents(key) {
			m.grid.Apply(ev)
		}
	case ModeDemo:
		if key == "enter" || key == " " {
			m.demo.press()
			m.successMessage = "Message sent"
		}
	}
	return m, nil
}

func (m model) handleWallKey(key string) (tea.Model, tea.Cmd) {
	if evs := m.navigationEvents(key); evs != nil {
		for _, ev := range evs {
			m.board.Apply(ev)
		}
		return m, nil
	}

	m.clearMessages()
	switch key {
	case "a":
		if localPath(m.source) == "" {
			m.errorMessage = "Adding answers needs a local feed file"
			return m, nil
		}
		m.mode = ModeCompose
		return m, m.input.Focus()
	case "c":
		m.copyHoveredNote()
	case "r":
		return m, fetchFeedCmd(m.source)
	case "s":
		return m, m.exportPNGCmd(timestampedName("wall", m.now(), ".png"))
	case "S":
		name := timestampedName("wall", m.now(), ".txt")
		if err := m.exportVisualTXT(name); err != nil {
			m.errorMessage = "Export failed: " + err.Error()
		} else {
			m.successMessage = "Exported " + m.config.GetSavePath(name)
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width := m.width
	if width < 1 {
		width = 1
	}
	height := m.canvasHeight()

	var result strings.Builder
	switch m.mode {
	case ModeGrid:
		canvas := newTermCanvas(width, height, gridBackground)
		drawGridCells(canvas, m.grid)
		result.WriteString(strings.Join(canvas.lines(), "\n"))
	case ModeDemo:
		result.WriteString(m.demo.view(width, height))
	default:
		canvas := newTermCanvas(width, height, wallBackground)
		drawWallCells(canvas, m.board)
		result.WriteString(strings.Join(canvas.lines(), "\n"))
	}

	if m.mode == ModeCompose {
		result.WriteString("\n")
		result.WriteString(m.input.View())
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine(width))
	return result.String()
}

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
)

func (m model) statusLine(width int) string {
	var status string
	switch m.mode {
	case ModeWall:
		cam := m.board.Camera()
		status = fmt.Sprintf("Mode: WALL | Notes: %d | Zoom: %.0f%%", len(m.board.Notes()), cam.Zoom*100)
		if m.board.Dragging() {
			status += " | dragging"
		}
	case ModeGrid:
		status = "Mode: GRID | drag to pan"
	case ModeDemo:
		status = fmt.Sprintf("Mode: DEMO | Sent: %d | Enter or click the button", m.demo.sent)
	case ModeCompose:
		return statusStyle.Render("Mode: ADD | Enter=save, Esc=cancel")
	}

	switch {
	case m.errorMessage != "":
		status = statusStyle.Render(status+" | ") + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status = statusStyle.Render(status+" | ") + successStyle.Render(m.successMessage)
	default:
		status = statusStyle.Render(status + " | ? for help | q to quit")
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(status)
}

func (m model) helpView() string {
	helpLines := []string{
		"Sticky Wall Help",
		"================",
		"",
		"Wall:",
		"-----",
		"  drag             Pan the wall",
		"  wheel            Zoom toward the pointer",
		"  click            Expand or collapse a note",
		"  h/j/k/l, arrows  Pan (Shift for 2x)",
		"  +/-              Zoom in/out",
		"  a                Add an answer to the local feed",
		"  c                Copy the note under the pointer",
		"  r                Refresh now",
		"  s                Export as PNG image",
		"  S                Export as text",
		"",
		"Pages:",
		"------",
		"  Tab              Next page",
		"  1/2/3            Wall, grid, demo",
		"  Enter            Press the demo button",
		"",
		"General:",
		"  Esc              Clear messages",
		"  ?                Toggle this help screen",
		"  q/Ctrl+C         Quit",
	}

	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if len(helpLines) > visibleHeight {
		helpLines = helpLines[:visibleHeight]
	}
	return strings.Join(helpLines, "\n") + "\nHelp | Esc to close"
}
