package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/glide/internal/kinematics"
)

const (
	// MarkerSize is the side of the entity and reference squares in world
	// pixels.
	MarkerSize = 10.0

	ReferenceX = 395.0
	ReferenceY = 295.0

	// VectorHorizon is how far ahead, in simulated milliseconds, the
	// velocity vector reaches.
	VectorHorizon = 50.0
)

var ErrNoScreen = errors.New("viz: screen has no drawable area")

// StateSource hands out the entity state to draw.
type StateSource interface {
	State() kinematics.State
}

// HoldSource is optionally implemented by a StateSource that knows which
// direction is being pushed.
type HoldSource interface {
	Held() (kinematics.Direction, bool)
}

type Renderer struct {
	screen tcell.Screen
	source StateSource
	worldW float64
	worldH float64
	theme  Theme
	canvas *Canvas
}

func NewRenderer(screen tcell.Screen, src StateSource, worldW, worldH float64) *Renderer {
	return &Renderer{
		screen: screen,
		source: src,
		worldW: worldW,
		worldH: worldH,
		theme:  ThemeTerminal,
	}
}

func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Render draws one frame: reference marker, entity marker, status line and
// FPS readout.
func (r *Renderer) Render(fps int) error {
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return ErrNoScreen
	}

	rows := h - 1
	if r.canvas == nil || r.canvas.Width != w || r.canvas.Height != rows {
		r.canvas = NewCanvas(w, rows)
		r.screen.Sync()
	}
	r.canvas.Clear()

	st := r.source.State()
	r.screen.SetStyle(r.theme.base())
	r.screen.Clear()

	r.fillWorldRect(ReferenceX, ReferenceY)
	r.blit(r.theme.style(r.theme.Reference))

	r.canvas.Clear()
	r.fillWorldRect(st.Position.X(), st.Position.Y())
	r.drawVelocity(st)
	r.blit(r.theme.style(r.theme.Marker))

	r.drawStatus(st, fps, w, h-1)
	r.screen.Show()
	return nil
}

// fillWorldRect rasterizes a MarkerSize square with its top-left corner at
// world coordinates (x, y).
func (r *Renderer) fillWorldRect(x, y float64) {
	sx := float64(r.canvas.SubWidth()) / r.worldW
	sy := float64(r.canvas.SubHeight()) / r.worldH

	x0, x1 := r.span(x*sx, (x+MarkerSize)*sx, r.canvas.SubWidth())
	y0, y1 := r.span(y*sy, (y+MarkerSize)*sy, r.canvas.SubHeight())
	r.canvas.FillRect(x0, y0, x1, y1)
}

// span maps a world interval to an inclusive sub-pixel range at least one
// sub-pixel wide. Far off-screen values are pinned just outside the canvas.
func (r *Renderer) span(lo, hi float64, limit int) (int, int) {
	pin := func(v float64) float64 {
		return math.Max(-1, math.Min(float64(limit), v))
	}
	a := int(math.Floor(pin(lo)))
	b := int(math.Ceil(pin(hi))) - 1
	if b < a {
		b = a
	}
	return a, b
}

// drawVelocity draws a line from the marker centre to where the entity will
// be after VectorHorizon ms at its current velocity. Nothing is drawn while
// the marker centre is off the canvas.
func (r *Renderer) drawVelocity(st kinematics.State) {
	if st.Velocity.Len() == 0 {
		return
	}
	sx := float64(r.canvas.SubWidth()) / r.worldW
	sy := float64(r.canvas.SubHeight()) / r.worldH

	cx := (st.Position.X() + MarkerSize/2) * sx
	cy := (st.Position.Y() + MarkerSize/2) * sy
	if cx < 0 || cy < 0 || cx >= float64(r.canvas.SubWidth()) || cy >= float64(r.canvas.SubHeight()) {
		return
	}
	ex := cx + st.Velocity.X()*VectorHorizon*sx
	ey := cy + st.Velocity.Y()*VectorHorizon*sy

	pin := func(v float64, limit int) int {
		return int(math.Max(-1, math.Min(float64(limit), v)))
	}
	r.canvas.DrawLine(int(cx), int(cy), pin(ex, r.canvas.SubWidth()), pin(ey, r.canvas.SubHeight()))
}

func (r *Renderer) blit(style tcell.Style) {
	for row := 0; row < r.canvas.Height; row++ {
		for col := 0; col < r.canvas.Width; col++ {
			if !r.canvas.Blank(col, row) {
				r.screen.SetContent(col, row, r.canvas.Grid[row][col], nil, style)
			}
		}
	}
}

func (r *Renderer) drawStatus(st kinematics.State, fps, w, row int) {
	hold := "idle"
	if hs, ok := r.source.(HoldSource); ok {
		if dir, held := hs.Held(); held {
			hold = "push " + dir.String()
		}
	}
	status := fmt.Sprintf(" %-5s %-10s v=(%+.2f, %+.2f) pos=(%.0f, %.0f)",
		st.Facing, hold, st.Velocity.X(), st.Velocity.Y(), st.Position.X(), st.Position.Y())
	readout := fmt.Sprintf("FPS: %d", fps)

	r.puts(0, row, status, r.theme.style(r.theme.Muted))
	r.puts(w-len(readout)-1, row, readout, r.theme.style(r.theme.Text))
}

func (r *Renderer) puts(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		if x+i >= 0 {
			r.screen.SetContent(x+i, y, ch, nil, style)
		}
	}
}
