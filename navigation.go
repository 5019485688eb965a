package main

// Keyboard navigation is expressed as the same gestures a mouse produces,
// so the camera only ever changes through drag and wheel.

const keyWheelDelta = 100.0

func (m *model) navigationEvents(key string) []Event {
	speed := m.getMoveSpeed(key)
	px, py := m.pointerOrCenter()

	var dx, dy float64
	switch key {
	case "h", "left", "H", "shift+left":
		dx = speed * cellWidth * 2
	case "l", "right", "L", "shift+right":
		dx = -speed * cellWidth * 2
	case "k", "up", "K", "shift+up":
		dy = speed * cellHeight
	case "j", "down", "J", "shift+down":
		dy = -speed * cellHeight
	case "+", "=":
		return []Event{Wheel{X: px, Y: py, DeltaY: -keyWheelDelta}}
	case "-", "_":
		return []Event{Wheel{X: px, Y: py, DeltaY: keyWheelDelta}}
	default:
		return nil
	}
	return dragGesture(px, py, dx, dy)
}

// dragGesture presses at (x, y), drags by (dx, dy), releases and returns
// the pointer to where it started.
func dragGesture(x, y, dx, dy float64) []Event {
	return []Event{
		PointerDown{X: x, Y: y},
		PointerMove{X: x + dx, Y: y + dy},
		PointerUp{X: x + dx, Y: y + dy},
		PointerMove{X: x, Y: y},
	}
}

func (m *model) getMoveSpeed(key string) float64 {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) pointerOrCenter() (float64, float64) {
	if m.board.pointerSeen {
		return m.board.pointerX, m.board.pointerY
	}
	return float64(m.width) * cellWidth / 2, float64(m.canvasHeight()) * cellHeight / 2
}
