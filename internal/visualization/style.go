package visualization

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style controls the visual encoding of a rendered subgraph.
type Style struct {
	// DegreeThreshold is the subgraph degree at which a word is drawn as a hub.
	DegreeThreshold int
	HubColor        string
	NodeColor       string
	LabelColor      string
}

// DefaultStyle returns the default palette: purple hubs, green words.
func DefaultStyle() Style {
	return Style{
		DegreeThreshold: 10,
		HubColor:        "#6a0dad",
		NodeColor:       "#478778",
		LabelColor:      "#0000ff",
	}
}

// ColorFor returns the node color for a word with the given subgraph degree.
func (s Style) ColorFor(degree int) string {
	if degree >= s.DegreeThreshold {
		return s.HubColor
	}
	return s.NodeColor
}

// blues is the sequential "Blues" ramp, light to dark.
var blues = [][3]uint8{
	{0xf7, 0xfb, 0xff},
	{0xde, 0xeb, 0xf7},
	{0xc6, 0xdb, 0xef},
	{0x9e, 0xca, 0xe1},
	{0x6b, 0xae, 0xd6},
	{0x42, 0x92, 0xc6},
	{0x21, 0x71, 0xb5},
	{0x08, 0x51, 0x9c},
	{0x08, 0x30, 0x6b},
}

// bluesFloor skips the near-white end of the ramp so weak edges stay visible.
const bluesFloor = 0.3

// Blues returns the ramp color at t in [0, 1] as "#rrggbb".
func Blues(t float64) string {
	t = bluesFloor + (1-bluesFloor)*clamp01(t)
	pos := t * float64(len(blues)-1)
	i := int(math.Floor(pos))
	if i >= len(blues)-1 {
		c := blues[len(blues)-1]
		return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
	}
	f := pos - float64(i)
	lo, hi := blues[i], blues[i+1]
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + f*(float64(b)-float64(a))))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(lo[0], hi[0]), mix(lo[1], hi[1]), mix(lo[2], hi[2]))
}

const (
	minEdgeWidth = 1.0
	maxEdgeWidth = 8.0
)

// EdgeWidth maps t in [0, 1] to a stroke width in pixels.
func EdgeWidth(t float64) float64 {
	return minEdgeWidth + (maxEdgeWidth-minEdgeWidth)*clamp01(t)
}

// Normalize maps v into [0, 1] over [lo, hi]. A degenerate range maps to 1.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 1
	}
	return clamp01((v - lo) / (hi - lo))
}

// Label title-cases a word for display.
func Label(word string) string {
	return cases.Title(language.English).String(word)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}
