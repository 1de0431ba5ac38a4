package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/ballpit/internal/particle"
)

const (
	width       = 70
	height      = 28
	trailLength = 30
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints each frame as ASCII art. Balls are ellipses in
// character cells, since a cell is roughly twice as tall as it is wide.
type LiveRenderer struct {
	title          string
	worldW, worldH float64
	out            io.Writer
	canvas         [][]rune
	trail          [][]struct{ x, y int }
}

func NewLiveRenderer(title string, worldW, worldH float64) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		title:  title,
		worldW: worldW,
		worldH: worldH,
		out:    os.Stdout,
		canvas: canvas,
	}
}

// SetOutput redirects frames, mainly for tests.
func (r *LiveRenderer) SetOutput(w io.Writer) { r.out = w }

func (r *LiveRenderer) OnFrame(frame int, ps []particle.Particle) {
	r.clear()

	if len(r.trail) != len(ps) {
		r.trail = make([][]struct{ x, y int }, len(ps))
	}
	for i, p := range ps {
		x, y := r.project(p.Pos.X, p.Pos.Y)
		r.trail[i] = append(r.trail[i], struct{ x, y int }{x, y})
		if len(r.trail[i]) > trailLength {
			r.trail[i] = r.trail[i][1:]
		}
		for _, pt := range r.trail[i] {
			r.set(pt.x, pt.y, '.')
		}
	}

	for _, p := range ps {
		r.ball(p)
	}

	r.render(frame, ps)
}

func (r *LiveRenderer) project(x, y float64) (int, int) {
	return int(x / r.worldW * width), int(y / r.worldH * height)
}

func (r *LiveRenderer) ball(p particle.Particle) {
	cx, cy := p.Pos.X/r.worldW*width, p.Pos.Y/r.worldH*height
	rx, ry := p.Radius()/r.worldW*width, p.Radius()/r.worldH*height

	for y := int(cy - ry); y <= int(cy+ry)+1; y++ {
		for x := int(cx - rx); x <= int(cx+rx)+1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				r.set(x, y, 'o')
			}
		}
	}
	r.set(int(cx), int(cy), 'O')
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) render(frame int, ps []particle.Particle) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  frame=%d  E=%.2f\n", r.title, frame, particle.TotalKineticEnergy(ps)))
	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")

	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}

	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")

	line := "  "
	for i, p := range ps {
		if i >= 3 {
			line += "..."
			break
		}
		line += fmt.Sprintf("#%d (%.0f,%.0f) v=%.2f  ", i, p.Pos.X, p.Pos.Y, p.Vel.Len())
	}
	b.WriteString(line + "\n")

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
