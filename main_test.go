package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type recordingBridge struct {
	messages []string
}

func (r *recordingBridge) Log(msg string) {
	r.messages = append(r.messages, msg)
}

func newTestModel(t *testing.T, answers ...string) model {
	t.Helper()
	dir := t.TempDir()
	feed := filepath.Join(dir, "user_inputs.json")
	require.NoError(t, os.WriteFile(feed, feedBody(answers...), 0o644))

	cfg := newDefaultConfig()
	cfg.Source = feed
	cfg.SaveDirectory = filepath.Join(dir, "exports")

	m, err := newModel(modelOptions{config: cfg, source: newSource(feed)})
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local) }

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	body, err := os.ReadFile(feed)
	require.NoError(t, err)
	return update(t, m, feedMsg{body: body})
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func press(t *testing.T, m model, key string) model {
	t.Helper()
	switch key {
	case "enter":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		return update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestMouseClickTogglesNote(t *testing.T) {
	m := newTestModel(t, "a")

	m = update(t, m, mouse(18, 8, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(18, 8, tea.MouseActionRelease, tea.MouseButtonNone))
	assert.True(t, m.board.Notes()[0].Expanded)
}

func TestMouseDragPans(t *testing.T) {
	m := newTestModel(t, "a")

	m = update(t, m, mouse(18, 8, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(20, 9, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(t, m, mouse(20, 9, tea.MouseActionRelease, tea.MouseButtonNone))

	assert.False(t, m.board.Notes()[0].Expanded)
	assert.Equal(t, 2*cellWidth, m.board.Camera().X)
	assert.Equal(t, cellHeight, m.board.Camera().Y)
}

func TestMouseWheelZooms(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, mouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelUp))
	assert.InDelta(t, 1.1, m.board.Camera().Zoom, 1e-9)
	m = update(t, m, mouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelDown))
	assert.InDelta(t, 1.0, m.board.Camera().Zoom, 1e-9)
}

func TestKeyboardNavigation(t *testing.T) {
	m := newTestModel(t, "a")

	m = press(t, m, "l")
	assert.Equal(t, -2*cellWidth, m.board.Camera().X)
	assert.False(t, m.board.Dragging())

	m = press(t, m, "J")
	assert.Equal(t, -2*cellHeight, m.board.Camera().Y)

	m = press(t, m, "+")
	assert.InDelta(t, 1.1, m.board.Camera().Zoom, 1e-9)
	assert.False(t, m.board.Notes()[0].Expanded)
}

func TestFrameAnimatesHover(t *testing.T) {
	m := newTestModel(t, "a")
	m = update(t, m, mouse(18, 8, tea.MouseActionMotion, tea.MouseButtonNone))

	start := time.Now()
	m = update(t, m, frameMsg(start))
	m = update(t, m, frameMsg(start.Add(time.Second/60)))
	assert.Greater(t, m.board.Notes()[0].Anim.Scale, 1.0)
}

func TestSwitchPages(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, ModeWall, m.mode)

	m = press(t, m, "tab")
	assert.Equal(t, ModeGrid, m.mode)
	m = press(t, m, "tab")
	assert.Equal(t, ModeDemo, m.mode)
	m = press(t, m, "tab")
	assert.Equal(t, ModeWall, m.mode)

	m = press(t, m, "2")
	assert.Equal(t, ModeGrid, m.mode)
	assert.Contains(t, m.View(), statsPlaceholder)
}

func TestGridDragPans(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "2")

	m = update(t, m, mouse(5, 5, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(8, 5, tea.MouseActionMotion, tea.MouseButtonLeft))
	m = update(t, m, mouse(8, 5, tea.MouseActionRelease, tea.MouseButtonNone))
	assert.Equal(t, 3*cellWidth, m.grid.camera.X)
	assert.Equal(t, newCamera(), m.board.Camera())
}

func TestDemoButton(t *testing.T) {
	m := newTestModel(t)
	bridge := &recordingBridge{}
	m.demo.bridge = bridge
	m = press(t, m, "3")

	m = press(t, m, "enter")
	x0, y0, _, _ := m.demo.buttonBounds(m.width, m.canvasHeight())
	m = update(t, m, mouse(x0+1, y0+1, tea.MouseActionPress, tea.MouseButtonLeft))
	m = update(t, m, mouse(0, 0, tea.MouseActionPress, tea.MouseButtonLeft))

	assert.Equal(t, []string{demoMessage, demoMessage}, bridge.messages)
	assert.Contains(t, m.View(), demoButtonLabel)
}

func TestComposeAppendsAnswer(t *testing.T) {
	m := newTestModel(t, "a")

	m = press(t, m, "a")
	require.Equal(t, ModeCompose, m.mode)
	m = press(t, m, "go home")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	assert.Equal(t, ModeWall, m.mode)
	require.NotNil(t, cmd)
	done := cmd()
	require.IsType(t, composeDoneMsg{}, done)
	require.NoError(t, done.(composeDoneMsg).err)

	data, err := os.ReadFile(m.config.Source)
	require.NoError(t, err)
	answers := gjson.GetBytes(data, "#.answer").Array()
	require.Len(t, answers, 2)
	assert.Equal(t, "go home", answers[1].String())

	m = update(t, m, done)
	assert.Equal(t, "Answer added", m.successMessage)
}

func TestComposeEmptyAnswerReturnsToWall(t *testing.T) {
	m := newTestModel(t, "a")
	before, err := os.ReadFile(m.config.Source)
	require.NoError(t, err)

	m = press(t, m, "a")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, ModeWall, m.mode)
	assert.Empty(t, m.errorMessage)
	assert.Empty(t, m.successMessage)
	assert.NotContains(t, m.View(), "ERROR")
	after, err := os.ReadFile(m.config.Source)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestComposeCancel(t *testing.T) {
	m := newTestModel(t, "a")
	m = press(t, m, "a")
	m = press(t, m, "x")
	m = press(t, m, "esc")
	assert.Equal(t, ModeWall, m.mode)
	assert.Empty(t, m.input.Value())
}

func TestCopyHoveredNote(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = orig }()

	m := newTestModel(t, "copy me")
	m = press(t, m, "c")
	assert.NotEmpty(t, m.errorMessage)

	m = update(t, m, mouse(18, 8, tea.MouseActionMotion, tea.MouseButtonNone))
	m = press(t, m, "c")
	assert.Equal(t, "copy me", copied)
	assert.Empty(t, m.errorMessage)
}

func TestExportText(t *testing.T) {
	m := newTestModel(t, "exported note")
	m = press(t, m, "S")
	require.Empty(t, m.errorMessage)

	data, err := os.ReadFile(filepath.Join(m.config.SaveDirectory, "wall-20240301-093000.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "exported note")
	assert.Equal(t, m.canvasHeight(), strings.Count(string(data), "\n"))
}

func TestExportPNG(t *testing.T) {
	m := newTestModel(t, "a")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(model)
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, exportDoneMsg{}, msg)
	require.NoError(t, msg.(exportDoneMsg).err)
	assert.FileExists(t, filepath.Join(m.config.SaveDirectory, "wall-20240301-093000.png"))
}

func TestViewShowsStatus(t *testing.T) {
	m := newTestModel(t, "a", "b")
	view := m.View()
	assert.Contains(t, view, "Mode: WALL")
	assert.Contains(t, view, "Notes: 2")
	assert.Len(t, strings.Split(view, "\n"), m.height)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
