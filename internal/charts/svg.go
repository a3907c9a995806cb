package charts

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
)

const (
	fontFamily = "Helvetica, Arial, sans-serif"
	axisColor  = "#333333"
	gridColor  = "#e5e5e5"
	textColor  = "#222222"
)

// canvas accumulates SVG elements
type canvas struct {
	b strings.Builder
}

func newCanvas(width, height int, class, background string) *canvas {
	c := &canvas{}
	fmt.Fprintf(&c.b,
		`<svg xmlns="http://www.w3.org/2000/svg" class="%s" viewBox="0 0 %d %d" width="100%%" preserveAspectRatio="xMidYMid meet" font-family="%s" role="img">`,
		esc(class), width, height, fontFamily)
	if background != "" {
		fmt.Fprintf(&c.b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, width, height, esc(background))
	}
	return c
}

func (c *canvas) title(text string) {
	if text != "" {
		fmt.Fprintf(&c.b, `<title>%s</title>`, esc(text))
	}
}

func (c *canvas) rect(x, y, w, h float64, fill string) {
	fmt.Fprintf(&c.b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`, num(x), num(y), num(w), num(h), esc(fill))
}

func (c *canvas) line(x1, y1, x2, y2 float64, stroke string) {
	fmt.Fprintf(&c.b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`, num(x1), num(y1), num(x2), num(y2), esc(stroke))
}

// text writes a label. anchor is start, middle or end; rotate is in degrees
// around the anchor point.
func (c *canvas) text(x, y float64, size float64, anchor, weight, fill string, rotate float64, s string) {
	fmt.Fprintf(&c.b, `<text x="%s" y="%s" font-size="%s" text-anchor="%s" fill="%s"`, num(x), num(y), num(size), anchor, esc(fill))
	if weight != "" {
		fmt.Fprintf(&c.b, ` font-weight="%s"`, weight)
	}
	if rotate != 0 {
		fmt.Fprintf(&c.b, ` transform="rotate(%s %s %s)"`, num(rotate), num(x), num(y))
	}
	fmt.Fprintf(&c.b, `>%s</text>`, esc(s))
}

func (c *canvas) raw(s string) {
	c.b.WriteString(s)
}

func (c *canvas) html() template.HTML {
	c.b.WriteString(`</svg>`)
	// interpolated values are escaped by esc
	return template.HTML(c.b.String())
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

// num formats a coordinate with at most one decimal
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

// niceTicks returns axis ticks from zero to at least peak with a 1, 2 or 5
// based step
func niceTicks(peak int, target int) []int {
	if peak <= 0 {
		return []int{0, 1}
	}
	raw := float64(peak) / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var step float64
	switch norm := raw / mag; {
	case norm <= 1:
		step = mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	istep := int(math.Max(1, math.Round(step)))

	top := ((peak + istep - 1) / istep) * istep
	ticks := make([]int, 0, top/istep+1)
	for v := 0; v <= top; v += istep {
		ticks = append(ticks, v)
	}
	return ticks
}

// textWidth estimates the rendered width of s at size
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}
