package asteroids

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// Visual characters for rendering
const (
	AsteroidChar = '@'
	AsteroidEdge = 'o'
	HUDRule      = '─'
)

// shipGlyphs are indexed by heading octant, starting at +X and turning
// counter-clockwise.
var shipGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// Viewport maps world coordinates onto a block of screen cells.
type Viewport struct {
	Aspect float64 // World half-width
	Left   int
	Top    int
	Width  int
	Height int
}

// NewViewport fits the field below a one-line HUD.
func NewViewport(aspect float64, screenW, screenH int) Viewport {
	return Viewport{
		Aspect: aspect,
		Left:   0,
		Top:    2,
		Width:  core.Max(1, screenW),
		Height: core.Max(1, screenH-2),
	}
}

// Cell returns the screen cell for a world position. World y grows upward.
func (v Viewport) Cell(p r2.Point) (int, int) {
	fx := (p.X + v.Aspect) / (2 * v.Aspect)
	fy := (1 - p.Y) / 2
	x := v.Left + int(math.Round(fx*float64(v.Width-1)))
	y := v.Top + int(math.Round(fy*float64(v.Height-1)))
	return x, y
}

// Contains reports whether a cell lies inside the viewport.
func (v Viewport) Contains(x, y int) bool {
	return core.NewRect(v.Left, v.Top, v.Width, v.Height).Contains(x, y)
}

// Scale returns how many cells one world unit spans on each axis.
func (v Viewport) Scale() (float64, float64) {
	return float64(v.Width-1) / (2 * v.Aspect), float64(v.Height-1) / 2
}

// ShipGlyph returns the arrow closest to a heading in radians.
func ShipGlyph(angle float64) rune {
	oct := int(math.Round(angle/(math.Pi/4))) % 8
	if oct < 0 {
		oct += 8
	}
	return shipGlyphs[oct]
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawCenteredMessage(dst, "SIMULATION ERROR", g.err.Error())
		return
	}
	if g.world == nil {
		return
	}

	v := NewViewport(g.params.AspectRatio, dst.Width(), dst.Height())

	for _, pt := range g.last.Particles {
		g.drawParticle(dst, v, pt)
	}
	for _, a := range g.last.Asteroids {
		g.drawAsteroid(dst, v, a)
	}
	for _, pr := range g.last.Projectiles {
		g.drawProjectile(dst, v, pr)
	}
	g.drawShip(dst, v)

	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawShip(dst *core.Screen, v Viewport) {
	color := core.ColorBrightCyan
	if len(g.last.Collisions) > 0 {
		color = core.ColorBrightRed
	}
	x, y := v.Cell(g.last.Ship.Pos)
	dst.SetColored(x, y, ShipGlyph(g.last.Ship.Angle), color)
}

// drawAsteroid fills the cells within the asteroid's rendered extent.
func (g *Game) drawAsteroid(dst *core.Screen, v Viewport, a sim.Asteroid) {
	sx, sy := v.Scale()
	r := g.params.AsteroidRadius * 0.5
	rx, ry := r*sx, r*sy
	cx, cy := v.Cell(a.Pos)

	hit := false
	for _, c := range g.last.Collisions {
		if c.AsteroidID == a.ID {
			hit = true
			break
		}
	}
	color := core.ColorGray
	if hit {
		color = core.ColorOrange
	}

	ix, iy := int(math.Ceil(rx)), int(math.Ceil(ry))
	for dy := -iy; dy <= iy; dy++ {
		for dx := -ix; dx <= ix; dx++ {
			d := math.Hypot(float64(dx)/math.Max(rx, 0.5), float64(dy)/math.Max(ry, 0.5))
			if d > 1 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !v.Contains(x, y) {
				continue
			}
			ch := AsteroidChar
			if d > 0.7 {
				ch = AsteroidEdge
			}
			dst.SetColored(x, y, ch, color)
		}
	}
}

func (g *Game) drawProjectile(dst *core.Screen, v Viewport, pr sim.Projectile) {
	x, y := v.Cell(pr.Pos)
	if !v.Contains(x, y) {
		return
	}
	switch {
	case pr.Alpha > 0.66:
		dst.SetColored(x, y, '•', core.ColorBrightRed)
	case pr.Alpha > 0.33:
		dst.SetColored(x, y, '∙', core.ColorRed)
	default:
		dst.SetColored(x, y, '.', core.ColorDarkGray)
	}
}

func (g *Game) drawParticle(dst *core.Screen, v Viewport, pt sim.Particle) {
	x, y := v.Cell(pt.Pos)
	if !v.Contains(x, y) {
		return
	}
	switch {
	case pt.Alpha > 0.6:
		dst.SetColored(x, y, '*', core.ColorBrightYellow)
	case pt.Alpha > 0.3:
		dst.SetColored(x, y, '+', core.ColorOrange)
	default:
		dst.SetColored(x, y, '.', core.ColorDarkGray)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	left := fmt.Sprintf(" %s  %5.1fs  rocks %d  shots %d  hits %d  contacts %d ",
		g.Title(), st.Elapsed, st.Stats.Asteroids, st.Stats.Shots, st.Stats.Hits, st.Stats.Collisions)
	dst.DrawTextColored(0, 0, left, core.ColorWhite)

	right := " P pause  Q quit "
	dst.DrawTextColored(core.Clamp(dst.Width()-len(right), len(left), dst.Width()), 0, right, core.ColorGray)

	dst.DrawHLine(0, 1, dst.Width(), HUDRule, core.ColorDarkGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, boxH)

	dst.DrawBox(box, core.ColorWhite)

	titleX := box.X + (boxW-len(title))/2
	dst.DrawTextColored(titleX, box.Y+1, title, core.ColorBrightYellow)

	subtitleX := box.X + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, box.Y+3, subtitle)
}
