package charts

import (
	"fmt"
	"math"
)

// Panel colours of the dashboard
const (
	ColorWords  = "mediumslateblue"
	ColorSkills = "darkorange"
)

// SentimentColors are applied to sentiment bars by position
var SentimentColors = []string{"lightgreen", "lightcoral", "lightgray"}

type rgb struct{ r, g, b float64 }

// coolwarmStops samples the diverging blue to red map at 0, .25, .5, .75, 1
var coolwarmStops = []rgb{
	{0.2298, 0.2987, 0.7537},
	{0.5543, 0.6901, 0.9955},
	{0.8674, 0.8644, 0.8626},
	{0.9567, 0.5980, 0.4773},
	{0.7057, 0.0156, 0.1502},
}

// Coolwarm returns n colours from the coolwarm map. Like a discrete seaborn
// palette it skips both extremes.
func Coolwarm(n int) []string {
	if n <= 0 {
		return nil
	}
	colors := make([]string, n)
	for i := 0; i < n; i++ {
		colors[i] = coolwarmAt(float64(i+1) / float64(n+1))
	}
	return colors
}

func coolwarmAt(t float64) string {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(coolwarmStops)-1)
	i := int(math.Floor(pos))
	if i >= len(coolwarmStops)-1 {
		i = len(coolwarmStops) - 2
	}
	f := pos - float64(i)
	a, b := coolwarmStops[i], coolwarmStops[i+1]
	return hex(rgb{
		r: a.r + (b.r-a.r)*f,
		g: a.g + (b.g-a.g)*f,
		b: a.b + (b.b-a.b)*f,
	})
}

func hex(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.r), channel(c.g), channel(c.b))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// cloudPalette colours word cloud terms by rank
var cloudPalette = []string{
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}
