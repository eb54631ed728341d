package visualization

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

func loadLabelFace(size float64) (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
	})
	if labelFontErr != nil {
		return nil, fmt.Errorf("parse label font: %w", labelFontErr)
	}
	return truetype.NewFace(labelFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// RenderPNG rasterizes v and writes it to w as a PNG image.
func RenderPNG(w io.Writer, v *View, style Style) error {
	face, err := loadLabelFace(13)
	if err != nil {
		return err
	}

	dc := gg.NewContext(v.Width, v.Height)
	dc.SetColor(color.White)
	dc.Clear()

	pos := make(map[string]ViewNode, len(v.Nodes))
	for _, n := range v.Nodes {
		pos[n.ID] = n
	}

	for _, e := range v.Edges {
		s, t := pos[e.Source], pos[e.Target]
		dc.SetColor(hexColor(e.Color, 0x80))
		dc.SetLineWidth(e.Width)
		dc.DrawLine(s.X, s.Y, t.X, t.Y)
		dc.Stroke()
	}

	for _, n := range v.Nodes {
		dc.DrawCircle(n.X, n.Y, n.Radius)
		dc.SetColor(hexColor(n.Color, 0x40))
		dc.FillPreserve()
		dc.SetColor(hexColor(n.Color, 0xc0))
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	dc.SetFontFace(face)
	dc.SetColor(hexColor(style.LabelColor, 0xff))
	for _, n := range v.Nodes {
		dc.DrawStringAnchored(n.Label, n.X, n.Y, 0.5, 0.5)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// hexColor parses "#rrggbb". Anything else yields black.
func hexColor(s string, alpha uint8) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{A: alpha}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{A: alpha}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha}
}
