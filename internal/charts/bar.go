package charts

import (
	"html/template"
	"math"
	"strconv"
)

// BarSpec describes a single series bar chart
type BarSpec struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []int
	// Colors are used by position and repeat when shorter than Values
	Colors []string
	// Rotation of the x tick labels in degrees
	Rotation float64
	Width    int
	Height   int
}

const (
	defaultWidth  = 560
	defaultHeight = 420
	marginLeft    = 64
	marginRight   = 20
	marginTop     = 44
	titleSize     = 16
	labelSize     = 13
	tickSize      = 11
	countSize     = 10
)

type plotArea struct {
	left, top, width, height float64
	ticks                    []int
}

func (p plotArea) y(v int) float64 {
	top := p.ticks[len(p.ticks)-1]
	return p.top + p.height - p.height*float64(v)/float64(top)
}

func (p plotArea) bottom() float64 {
	return p.top + p.height
}

// BarChart renders spec as an SVG bar chart with a count above every bar
func BarChart(spec BarSpec) template.HTML {
	w, h := dimensions(spec.Width, spec.Height)
	n := len(spec.Labels)
	if len(spec.Values) < n {
		n = len(spec.Values)
	}

	peak := 0
	for _, v := range spec.Values[:n] {
		if v > peak {
			peak = v
		}
	}

	c := newCanvas(w, h, "chart bar-chart", "white")
	c.title(spec.Title)
	area := drawFrame(c, w, h, spec.Title, spec.XLabel, spec.YLabel, spec.Rotation, spec.Labels[:n], peak)

	if n == 0 {
		drawNoData(c, area)
		return c.html()
	}

	band := area.width / float64(n)
	barWidth := band * 0.8
	for i := 0; i < n; i++ {
		x := area.left + band*float64(i) + (band-barWidth)/2
		y := area.y(spec.Values[i])
		c.rect(x, y, barWidth, area.bottom()-y, pick(spec.Colors, i, ColorWords))
		c.text(x+barWidth/2, y-4, countSize, "middle", "", textColor, 0, strconv.Itoa(spec.Values[i]))
	}

	drawXTicks(c, area, spec.Labels[:n], spec.Rotation)
	return c.html()
}

func dimensions(w, h int) (int, int) {
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// drawFrame writes the title, axes, y grid and axis titles and returns the
// plot area left for the bars
func drawFrame(c *canvas, w, h int, title, xLabel, yLabel string, rotation float64, labels []string, peak int) plotArea {
	bottom := 40.0 + tickLabelDepth(labels, rotation)
	area := plotArea{
		left:   marginLeft,
		top:    marginTop,
		width:  float64(w) - marginLeft - marginRight,
		height: float64(h) - marginTop - bottom,
		ticks:  niceTicks(peak, 5),
	}

	if title != "" {
		c.text(float64(w)/2, 24, titleSize, "middle", "bold", textColor, 0, title)
	}

	for _, t := range area.ticks {
		y := area.y(t)
		if t > 0 {
			c.line(area.left, y, area.left+area.width, y, gridColor)
		}
		c.line(area.left-4, y, area.left, y, axisColor)
		c.text(area.left-7, y+4, tickSize, "end", "", textColor, 0, strconv.Itoa(t))
	}

	c.line(area.left, area.top, area.left, area.bottom(), axisColor)
	c.line(area.left, area.bottom(), area.left+area.width, area.bottom(), axisColor)

	if xLabel != "" {
		c.text(area.left+area.width/2, float64(h)-10, labelSize, "middle", "", textColor, 0, xLabel)
	}
	if yLabel != "" {
		c.text(18, area.top+area.height/2, labelSize, "middle", "", textColor, -90, yLabel)
	}
	return area
}

// tickLabelDepth estimates the vertical room rotated tick labels need
func tickLabelDepth(labels []string, rotation float64) float64 {
	longest := 0.0
	for _, l := range labels {
		if tw := textWidth(l, tickSize); tw > longest {
			longest = tw
		}
	}
	rad := math.Abs(rotation) * math.Pi / 180
	return math.Min(140, longest*math.Sin(rad)+tickSize*math.Cos(rad)+8)
}

func drawXTicks(c *canvas, area plotArea, labels []string, rotation float64) {
	band := area.width / float64(len(labels))
	for i, label := range labels {
		x := area.left + band*float64(i) + band/2
		y := area.bottom() + 14
		c.line(x, area.bottom(), x, area.bottom()+4, axisColor)
		if rotation == 0 {
			c.text(x, y, tickSize, "middle", "", textColor, 0, label)
			continue
		}
		c.text(x, y, tickSize, "end", "", textColor, -rotation, label)
	}
}

func drawNoData(c *canvas, area plotArea) {
	c.text(area.left+area.width/2, area.top+area.height/2, labelSize, "middle", "", "#888888", 0, "No data")
}

func pick(colors []string, i int, fallback string) string {
	if len(colors) == 0 {
		return fallback
	}
	return colors[i%len(colors)]
}
