package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/render"
)

// SVG is a render surface that records the last drawn frame as SVG
// elements. Clearing the full surface starts a new frame.
type SVG struct {
	width, height float64
	background    string
	body          strings.Builder
	overlay       strings.Builder
}

func NewSVG(width, height float64, background color.Color) *SVG {
	return &SVG{width: width, height: height, background: render.Hex(background)}
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Clear(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= s.width && h >= s.height {
		s.body.Reset()
		return
	}
	s.body.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, x, y, w, h, s.background))
}

func (s *SVG) BeginPath() { s.body.WriteString("<g>\n") }
func (s *SVG) ClosePath() { s.body.WriteString("</g>\n") }

func (s *SVG) FillCircle(cx, cy, r float64, c color.Color) {
	s.body.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, cx, cy, r, render.Hex(c)))
}

// AddTrails draws one polyline per particle path under the circles.
func (s *SVG) AddTrails(paths [][]particle.Vec2, stroke string) {
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		s.overlay.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1.5" d="M`, stroke))
		for i, p := range path {
			if i == 0 {
				s.overlay.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				s.overlay.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		s.overlay.WriteString("\"/>\n")
	}
}

func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, s.background))
	sb.WriteString(s.overlay.String())
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// Trails records every particle's centre after each frame.
type Trails struct {
	Paths [][]particle.Vec2
	every int
}

// NewTrails keeps one point every n frames; n < 1 keeps all of them.
func NewTrails(every int) *Trails {
	return &Trails{every: max(every, 1)}
}

func (t *Trails) OnFrame(frame int, ps []particle.Particle) {
	if len(t.Paths) != len(ps) {
		t.Paths = make([][]particle.Vec2, len(ps))
	}
	if frame%t.every != 0 {
		return
	}
	for i, p := range ps {
		t.Paths[i] = append(t.Paths[i], p.Pos)
	}
}
