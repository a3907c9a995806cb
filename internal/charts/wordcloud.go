package charts

import (
	"html/template"
	"math"

	"jobinsight/pkg/contracts/domain"
)

// CloudSpec describes a word cloud
type CloudSpec struct {
	Title  string
	Words  domain.FrequencyTable
	Width  int
	Height int
	// MinFont and MaxFont bound the font size; the most frequent term gets MaxFont
	MinFont float64
	MaxFont float64
}

type box struct{ x, y, w, h float64 }

func (b box) overlaps(o box) bool {
	return b.x < o.x+o.w && o.x < b.x+b.w && b.y < o.y+o.h && o.y < b.y+b.h
}

func (b box) inside(w, h float64) bool {
	return b.x >= 0 && b.y >= 0 && b.x+b.w <= w && b.y+b.h <= h
}

// PlacedWord is a term positioned by LayoutCloud. X and Y are the top-left
// corner of its bounding box.
type PlacedWord struct {
	Text     string
	Count    int
	FontSize float64
	X, Y     float64
	W, H     float64
}

// LayoutCloud places the terms of spec in rank order along an outward spiral
// from the centre, skipping any term that cannot be placed without overlap.
func LayoutCloud(spec CloudSpec) []PlacedWord {
	w, h := float64(spec.Width), float64(spec.Height)
	minFont, maxFont := spec.MinFont, spec.MaxFont
	if minFont <= 0 {
		minFont = 12
	}
	if maxFont < minFont {
		maxFont = minFont * 6
	}

	items := spec.Words.Items
	if len(items) == 0 {
		return nil
	}
	top := float64(items[0].Count)
	if top <= 0 {
		return nil
	}

	const (
		angleStep = 0.15
		maxSteps  = 6000
	)
	spacing := math.Max(w, h) / 500
	reach := math.Hypot(w, h) / 2

	placed := make([]PlacedWord, 0, len(items))
	var taken []box
	for _, item := range items {
		if item.Count <= 0 {
			continue
		}
		size := minFont + (maxFont-minFont)*math.Sqrt(float64(item.Count)/top)
		bw := textWidth(item.Item, size)
		bh := size * 1.1

		for step := 0; step < maxSteps; step++ {
			theta := float64(step) * angleStep
			r := spacing * theta
			if r > reach {
				break
			}
			cand := box{
				x: w/2 + r*math.Cos(theta) - bw/2,
				y: h/2 + r*math.Sin(theta)*(h/w) - bh/2,
				w: bw,
				h: bh,
			}
			if !cand.inside(w, h) || collides(cand, taken) {
				continue
			}
			taken = append(taken, cand)
			placed = append(placed, PlacedWord{
				Text: item.Item, Count: item.Count, FontSize: size,
				X: cand.x, Y: cand.y, W: bw, H: bh,
			})
			break
		}
	}
	return placed
}

func collides(b box, taken []box) bool {
	for _, t := range taken {
		if b.overlaps(t) {
			return true
		}
	}
	return false
}

// WordCloud renders spec on a white background. An empty frequency table
// gives an empty cloud with a "No data" caption.
func WordCloud(spec CloudSpec) template.HTML {
	if spec.Width <= 0 {
		spec.Width = 1000
	}
	if spec.Height <= 0 {
		spec.Height = 500
	}

	c := newCanvas(spec.Width, spec.Height, "chart word-cloud", "white")
	c.title(spec.Title)

	words := LayoutCloud(spec)
	if len(words) == 0 {
		c.text(float64(spec.Width)/2, float64(spec.Height)/2, labelSize, "middle", "", "#888888", 0, "No data")
		return c.html()
	}

	for i, word := range words {
		// baseline sits near the bottom of the box
		c.text(word.X+word.W/2, word.Y+word.H*0.8, word.FontSize, "middle", "", cloudPalette[i%len(cloudPalette)], 0, word.Text)
	}
	return c.html()
}
