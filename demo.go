package main

import (
	"log/slog"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// LogBridge forwards a message to the host application's log.
type LogBridge interface {
	Log(msg string)
}

type slogBridge struct {
	logger *slog.Logger
}

func (b slogBridge) Log(msg string) {
	b.logger.Info(msg, slog.String("source", "demo"))
}

var demoButtonStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#3b82f6")).
	Foreground(lipgloss.Color("#ffffff")).
	Background(lipgloss.Color("#2563eb")).
	Padding(0, 3)

const demoButtonLabel = "Send message"

// demoPage is the one-button page. Clicking inside the button, or Enter,
// fires the log bridge.
type demoPage struct {
	bridge LogBridge
	sent   int
}

func (d *demoPage) press() {
	if d.bridge != nil {
		d.bridge.Log(demoMessage)
	}
	d.sent++
}

func (d *demoPage) button() string {
	return demoButtonStyle.Render(demoButtonLabel)
}

// buttonBounds returns the cell rectangle of the centered button.
func (d *demoPage) buttonBounds(width, height int) (x0, y0, x1, y1 int) {
	btn := d.button()
	bw, bh := lipgloss.Width(btn), lipgloss.Height(btn)
	x0 = int(math.Round(float64(width-bw) * 0.5))
	y0 = int(math.Round(float64(height-bh) * 0.5))
	return x0, y0, x0 + bw, y0 + bh
}

func (d *demoPage) hit(x, y, width, height int) bool {
	x0, y0, x1, y1 := d.buttonBounds(width, height)
	return x >= x0 && x < x1 && y >= y0 && y < y1
}

func (d *demoPage) view(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, d.button())
}
