// Package export renders scenes and recorded trajectories as standalone
// SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/overlay"
	"github.com/san-kum/scenelab/internal/physstate"
)

const (
	backgroundFill = "#0a0a0a"
	boundaryFill   = "#333333"
	defaultFill    = "#8899aa"
	highlightTint  = "#ffd700"
)

// SceneToSVG renders the world's bodies plus one overlay frame. The
// viewport matches the simulation surface, so world coordinates map
// straight to SVG user units.
func SceneToSVG(w *engine.World, frame overlay.Frame, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, backgroundFill))

	for _, t := range frame.Trails {
		writeTrail(&sb, t)
	}
	for _, b := range w.Bodies() {
		writeBody(&sb, b)
	}
	for _, v := range frame.VelocityVectors {
		writeVector(&sb, v, fmt.Sprintf("hsl(%.0f, 90%%, 60%%)", v.Hue))
	}
	for _, v := range frame.ForceVectors {
		writeVector(&sb, v, "#777777")
	}
	if h := frame.Highlight; h != nil {
		sb.WriteString(fmt.Sprintf(
			`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			h.Min.X-h.Padding, h.Min.Y-h.Padding,
			h.Max.X-h.Min.X+2*h.Padding, h.Max.Y-h.Min.Y+2*h.Padding,
			highlightTint))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeBody(sb *strings.Builder, b *engine.Body) {
	fill := b.Tint
	if fill == "" {
		fill = defaultFill
	}
	if b.Boundary {
		fill = boundaryFill
	}

	switch b.Shape.Kind {
	case engine.ShapeCircle:
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			b.Position.X, b.Position.Y, b.Shape.Radius, fill))
	case engine.ShapeRectangle:
		sb.WriteString(fmt.Sprintf(
			`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" transform="rotate(%.2f %.1f %.1f)"/>`+"\n",
			b.Position.X-b.Shape.Width/2, b.Position.Y-b.Shape.Height/2,
			b.Shape.Width, b.Shape.Height, fill,
			b.Angle*180/math.Pi, b.Position.X, b.Position.Y))
	case engine.ShapePolygon:
		pts := make([]string, len(b.Shape.Vertices))
		c, s := math.Cos(b.Angle), math.Sin(b.Angle)
		for i, v := range b.Shape.Vertices {
			x := b.Position.X + v.X*c - v.Y*s
			y := b.Position.Y + v.X*s + v.Y*c
			pts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
		}
		sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s"/>`+"\n",
			strings.Join(pts, " "), fill))
	}
}

func writeTrail(sb *strings.Builder, t overlay.Polyline) {
	if len(t.Points) < 2 {
		return
	}
	tint := t.Tint
	if tint == "" {
		tint = defaultFill
	}
	// one segment per point pair so the opacity gradient survives
	for i := 1; i < len(t.Points); i++ {
		sb.WriteString(fmt.Sprintf(
			`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.2f"/>`+"\n",
			t.Points[i-1].X, t.Points[i-1].Y, t.Points[i].X, t.Points[i].Y,
			tint, t.Opacities[i]))
	}
}

func writeVector(sb *strings.Builder, v overlay.Vector, stroke string) {
	dash := ""
	if v.Dashed {
		dash = ` stroke-dasharray="4 3"`
	}
	sb.WriteString(fmt.Sprintf(
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		v.From.X, v.From.Y, v.To.X, v.To.Y, stroke, dash))
}

// TrajectoryToSVG plots a recorded run's positions as a single path,
// auto-fitted to the sample bounds with a 10% margin.
func TrajectoryToSVG(samples []physstate.Sample, width, height int, stroke string) string {
	if len(samples) < 2 {
		return ""
	}

	minX, maxX := samples[0].Position.X, samples[0].Position.X
	minY, maxY := samples[0].Position.Y, samples[0].Position.Y
	for _, s := range samples {
		if s.Position.X < minX {
			minX = s.Position.X
		}
		if s.Position.X > maxX {
			maxX = s.Position.X
		}
		if s.Position.Y < minY {
			minY = s.Position.Y
		}
		if s.Position.Y > maxY {
			maxY = s.Position.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, backgroundFill, stroke))

	for i, s := range samples {
		x := (s.Position.X - minX) / rangeX * float64(width)
		y := (s.Position.Y - minY) / rangeY * float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
