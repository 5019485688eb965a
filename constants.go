package main

type Mode int

const (
	ModeWall Mode = iota
	ModeGrid
	ModeDemo
	ModeCompose
)

func (m Mode) String() string {
	switch m {
	case ModeWall:
		return "wall"
	case ModeGrid:
		return "grid"
	case ModeDemo:
		return "demo"
	case ModeCompose:
		return "compose"
	default:
		return "unknown"
	}
}

func parseMode(s string) (Mode, bool) {
	switch s {
	case "wall", "":
		return ModeWall, true
	case "grid":
		return ModeGrid, true
	case "demo":
		return ModeDemo, true
	}
	return ModeWall, false
}

// Note geometry, in world pixels.
const (
	noteWidth         = 200.0
	noteHeight        = 180.0
	expandedNoteWidth = 320.0
	noteGap           = 20.0
	wallMargin        = 50.0
	textInset         = 30.0 // horizontal room left around wrapped text
	textTop           = 45.0 // clears the timestamp row
	textBottom        = 20.0
	threadDroop       = 40.0
	tapeWidth         = 40.0
	tapeHeight        = 20.0
)

const (
	minZoom         = 0.1
	maxZoom         = 5.0
	zoomSensitivity = 0.001

	clickThreshold  = 4.0 // pixels of pointer travel
	smoothingFactor = 0.2

	collapsedLineLimit = 4
	collapsedKeepLines = 3
	expandHint         = "click to expand"

	stripeSpacing = 40.0
	gridTileSize  = 40.0
	axisHalfLen   = 20.0

	defaultColumns = 5
)

// Terminal cell size in screen pixels.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const (
	wallBackground = "#1a1a2e"
	wallStripe     = "#16213e"
	threadColor    = "#cbd5e1"
	inkColor       = "#1e293b"
	gridBackground = "#1e1e1e"
)

var notePalette = []string{
	"#fef68a", // yellow
	"#bbf7d0", // green
	"#bfdbfe", // blue
	"#fecaca", // red
	"#fed7aa", // orange
	"#ddd6fe", // purple
}

const (
	composeQuestion = "What are you gonna do?"
	demoMessage     = "Hello from the demo page!"
)
