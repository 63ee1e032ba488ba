package orbel

import (
	"fmt"
	"strings"
)

// SVG plot constants
const (
	svgWidth            = 600
	svgHeight           = 600
	plotMargin          = 50
	plotCenterX         = svgWidth / 2
	plotCenterY         = svgHeight / 2
	plotRadius          = (svgWidth / 2) - plotMargin
	labelFontSize       = 16
	foregroundColor     = "black"
	secondaryColor      = "dimgray"
	gridLineStrokeWidth = "1"
	orbitStrokeWidth    = "1.5"
	markerRadius        = 4.0
	bodyRadius          = 6.0
)

var orbitColors = []string{"salmon", "black"}
var bodyColors = []string{"darkred", "navy"}

// skyToPlot maps sky-plane (u, v) to SVG pixel coordinates. u grows East,
// drawn leftward; v grows North, drawn upward.
func skyToPlot(u, v, extent float64) (x, y float64) {
	scale := float64(plotRadius) / extent
	x = plotCenterX - u*scale
	y = plotCenterY - v*scale
	return
}

func svgPolyline(sb *strings.Builder, p Path2, extent float64, color string) {
	if len(p.U) < 2 {
		return
	}
	sb.WriteString(`<polyline points="`)
	for j := range p.U {
		x, y := skyToPlot(p.U[j], p.V[j], extent)
		fmt.Fprintf(sb, "%.2f,%.2f ", x, y)
	}
	fmt.Fprintf(sb, `" fill="none" stroke="%s" stroke-width="%s"/>`+"\n", color, orbitStrokeWidth)
}

func svgCircle(sb *strings.Builder, p Point2, extent, radius float64, color string) {
	x, y := skyToPlot(p.U, p.V, extent)
	fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`+"\n", x, y, radius, color)
}

// SkyPlotSVG renders the 2-D sky-plane projection of a frame as an SVG
// string: orbit curve(s), node line, node and periastron markers and the
// body position(s). This is a reference rendering collaborator; the core
// itself stays pixel-free.
func SkyPlotSVG(frame Frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" style="background-color:white;">`+"\n", svgWidth, svgHeight)
	sb.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")

	extent := frame.Extent
	if extent <= 0 {
		extent = 1
	}

	// Reference frame: bounding square and center cross.
	fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		plotMargin, plotMargin, svgWidth-2*plotMargin, svgHeight-2*plotMargin, secondaryColor, gridLineStrokeWidth)
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%s" stroke-dasharray="4,4"/>`+"\n",
		plotMargin, plotCenterY, svgWidth-plotMargin, plotCenterY, secondaryColor, gridLineStrokeWidth)
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%s" stroke-dasharray="4,4"/>`+"\n",
		plotCenterX, plotMargin, plotCenterX, svgHeight-plotMargin, secondaryColor, gridLineStrokeWidth)

	// East-left, North-up axis labels.
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">N</text>`+"\n",
		plotCenterX, plotMargin-10, labelFontSize, foregroundColor)
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">E</text>`+"\n",
		plotMargin-8, plotCenterY+5, labelFontSize, foregroundColor)

	svgPolyline(&sb, frame.NodeLine2, extent, secondaryColor)
	svgPolyline(&sb, frame.ΩArc2, extent, "seagreen")
	for j, arc := range frame.PeriArc2 {
		color := "blue"
		if j%2 == 1 {
			color = "red"
		}
		svgPolyline(&sb, arc, extent, color)
	}
	for j, body := range frame.Bodies {
		svgPolyline(&sb, body.Orbit2, extent, orbitColors[j%len(orbitColors)])
		svgCircle(&sb, body.Peri2, extent, markerRadius, "gold")
		svgCircle(&sb, body.Body2, extent, bodyRadius, bodyColors[j%len(bodyColors)])
	}
	svgCircle(&sb, frame.Asc2, extent, markerRadius, "green")
	svgCircle(&sb, frame.Des2, extent, markerRadius, "purple")

	sb.WriteString("</svg>\n")
	return sb.String()
}
