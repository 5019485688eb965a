package main

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// Event is an input to Board.Apply.
type Event interface{ isEvent() }

type PointerDown struct{ X, Y float64 }
type PointerMove struct{ X, Y float64 }
type PointerUp struct{ X, Y float64 }

// Wheel is a scroll step at a screen point; positive DeltaY zooms out.
type Wheel struct{ X, Y, DeltaY float64 }

// Frame advances animation by DT reference frames.
type Frame struct{ DT float64 }

// DataArrived carries a fetched feed body, or the fetch error.
type DataArrived struct {
	Body []byte
	Err  error
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Wheel) isEvent()       {}
func (Frame) isEvent()       {}
func (DataArrived) isEvent() {}

// Board owns all mutable state of the note wall: camera, notes, pointer
// and drag tracking, and the last ingested snapshot. Every change goes
// through Apply.
type Board struct {
	camera Camera
	notes  []*Note

	pointerX, pointerY float64
	pointerSeen        bool
	dragging           bool
	travel             float64

	builder  noteBuilder
	snapshot []byte
	logger   *slog.Logger
}

type boardOptions struct {
	columns  int
	ts       typesetter
	location *time.Location
	rng      *rand.Rand
	logger   *slog.Logger
}

func newBoard(opts boardOptions) *Board {
	if opts.columns < 1 {
		opts.columns = defaultColumns
	}
	if opts.ts.measurer == nil {
		opts.ts = terminalTypesetter()
	}
	if opts.location == nil {
		opts.location = time.Local
	}
	if opts.rng == nil {
		opts.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}
	return &Board{
		camera: newCamera(),
		builder: noteBuilder{
			layout: gridLayout{Columns: opts.columns},
			ts:     opts.ts,
			rng:    opts.rng,
			loc:    opts.location,
		},
		logger: opts.logger,
	}
}

func (b *Board) Camera() Camera { return b.camera }

func (b *Board) Notes() []*Note { return b.notes }

func (b *Board) Dragging() bool { return b.dragging }

// Apply is the single state-update entry point. It reports whether the
// note list was rebuilt.
func (b *Board) Apply(ev Event) bool {
	switch ev := ev.(type) {
	case PointerDown:
		b.pointerDown(ev.X, ev.Y)
	case PointerMove:
		b.pointerMove(ev.X, ev.Y)
	case PointerUp:
		b.pointerUp(ev.X, ev.Y)
	case Wheel:
		b.camera.ZoomAt(ev.X, ev.Y, ev.DeltaY)
		b.setPointer(ev.X, ev.Y)
	case Frame:
		b.frame(ev.DT)
	case DataArrived:
		return b.ingest(ev.Body, ev.Err)
	}
	return false
}

func (b *Board) setPointer(x, y float64) {
	b.pointerX, b.pointerY = x, y
	b.pointerSeen = true
}

func (b *Board) pointerDown(x, y float64) {
	b.setPointer(x, y)
	b.dragging = true
	b.travel = 0
}

func (b *Board) pointerMove(x, y float64) {
	if b.dragging {
		dx, dy := x-b.pointerX, y-b.pointerY
		b.camera.Pan(dx, dy)
		b.travel += math.Hypot(dx, dy)
	}
	b.setPointer(x, y)
}

func (b *Board) pointerUp(x, y float64) {
	if !b.dragging {
		b.setPointer(x, y)
		return
	}
	b.travel += math.Hypot(x-b.pointerX, y-b.pointerY)
	b.setPointer(x, y)
	b.dragging = false
	if b.travel >= clickThreshold {
		return
	}
	if n := b.noteAt(x, y); n != nil {
		n.toggle(b.builder.ts)
	}
}

// noteAt hit-tests in reverse draw order so the topmost note wins.
// Rotation is ignored.
func (b *Board) noteAt(sx, sy float64) *Note {
	wx, wy := b.camera.ScreenToWorld(sx, sy)
	for i := len(b.notes) - 1; i >= 0; i-- {
		if b.notes[i].Contains(wx, wy) {
			return b.notes[i]
		}
	}
	return nil
}

// Hovered returns the topmost note under the pointer, if any.
func (b *Board) Hovered() *Note {
	if !b.pointerSeen {
		return nil
	}
	return b.noteAt(b.pointerX, b.pointerY)
}

func (b *Board) frame(dt float64) {
	wx, wy := b.camera.ScreenToWorld(b.pointerX, b.pointerY)
	for _, n := range b.notes {
		n.Hovered = b.pointerSeen && n.Contains(wx, wy)
		target := restingAnim
		if n.Hovered {
			target = hoverAnim
		}
		n.Anim = n.Anim.approach(target, smoothingFactor, dt)
	}
}

func (b *Board) ingest(body []byte, fetchErr error) bool {
	if fetchErr != nil {
		b.logger.Debug("feed fetch failed", slog.String("error", fetchErr.Error()))
		return false
	}
	records, snapshot, err := decodeRecords(body, b.builder.loc)
	if err != nil {
		b.logger.Debug("feed decode failed", slog.String("error", err.Error()))
		return false
	}
	if b.snapshot != nil && bytes.Equal(snapshot, b.snapshot) {
		return false
	}
	b.notes = b.builder.build(records, b.notes)
	b.snapshot = snapshot
	b.logger.Info("notes rebuilt", slog.Int("count", len(b.notes)))
	return true
}
