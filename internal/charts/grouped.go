package charts

import (
	"html/template"
	"strconv"

	"jobinsight/pkg/contracts/domain"
)

// GroupedSpec describes a grouped bar chart of a cross-tab. Groups run along
// the x axis by experience level and the hue within a group is the salary
// range.
type GroupedSpec struct {
	Title       string
	XLabel      string
	YLabel      string
	LegendTitle string
	Data        domain.CrossTab
	Rotation    float64
	Width       int
	Height      int
}

// GroupedBarChart renders spec with a legend and a count above every bar.
// Pairs absent from the cross-tab leave an empty slot in their group.
func GroupedBarChart(spec GroupedSpec) template.HTML {
	w, h := dimensions(spec.Width, spec.Height)
	levels := spec.Data.Levels
	ranges := spec.Data.Ranges

	peak := 0
	for _, cell := range spec.Data.Cells {
		if cell.Count > peak {
			peak = cell.Count
		}
	}

	c := newCanvas(w, h, "chart grouped-bar-chart", "white")
	c.title(spec.Title)
	area := drawFrame(c, w, h, spec.Title, spec.XLabel, spec.YLabel, spec.Rotation, levels, peak)

	if len(levels) == 0 || len(ranges) == 0 {
		drawNoData(c, area)
		return c.html()
	}

	colors := Coolwarm(len(ranges))
	band := area.width / float64(len(levels))
	groupWidth := band * 0.8
	barWidth := groupWidth / float64(len(ranges))

	for i, level := range levels {
		start := area.left + band*float64(i) + (band-groupWidth)/2
		for j, salary := range ranges {
			count := spec.Data.Count(level, salary)
			if count == 0 {
				continue
			}
			x := start + barWidth*float64(j)
			y := area.y(count)
			c.rect(x, y, barWidth, area.bottom()-y, colors[j])
			c.text(x+barWidth/2, y-4, countSize, "middle", "", textColor, 0, strconv.Itoa(count))
		}
	}

	drawXTicks(c, area, levels, spec.Rotation)
	drawLegend(c, area, spec.LegendTitle, ranges, colors)
	return c.html()
}

func drawLegend(c *canvas, area plotArea, title string, names, colors []string) {
	const (
		swatch = 10.0
		row    = 16.0
		pad    = 6.0
	)

	widest := textWidth(title, tickSize)
	for _, name := range names {
		if tw := textWidth(name, tickSize) + swatch + 6; tw > widest {
			widest = tw
		}
	}

	rows := len(names)
	if title != "" {
		rows++
	}
	boxWidth := widest + 2*pad
	x := area.left + area.width - boxWidth - 4
	y := area.top + 4

	c.raw(`<g class="legend">`)
	c.raw(`<rect x="` + num(x) + `" y="` + num(y) + `" width="` + num(boxWidth) + `" height="` +
		num(float64(rows)*row+pad) + `" fill="white" fill-opacity="0.85" stroke="#cccccc"/>`)

	line := y + pad + tickSize
	if title != "" {
		c.text(x+pad, line, tickSize, "start", "bold", textColor, 0, title)
		line += row
	}
	for i, name := range names {
		c.rect(x+pad, line-swatch+1, swatch, swatch, colors[i])
		c.text(x+pad+swatch+6, line, tickSize, "start", "", textColor, 0, name)
		line += row
	}
	c.raw(`</g>`)
}
