// Package heatmap renders a labeled square matrix as a PNG heat map with a
// fixed colour scale.
//
// Columns of the image correspond to the first index of the matrix and rows
// to the second, with the origin at the lower left. So the cell drawn at
// column i and row j (counting upwards) holds m[i][j].
package heatmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// DefaultFile is the file name the RMSD comparison map is saved to.
const DefaultFile = "bb_remodeled_RMSD_comparison.png"

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("heat map has no cells")

// Options control the text and scale of a heat map.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// Values are clamped to [Min, Max] before colouring.
	Min, Max float64

	// CellSize is the side of one cell in pixels.
	CellSize float64
}

// DefaultOptions are used for the RMSD comparison between designs and their
// lowest energy predictions.
var DefaultOptions = Options{
	Title:    "RMSD between designs and predicted structures",
	XLabel:   "Designs",
	YLabel:   "Lowest energy predictions",
	Min:      0,
	Max:      5,
	CellSize: 24,
}

const (
	pad       = 10.0
	tickLen   = 4.0
	lineH     = 13.0
	barWidth  = 16.0
	barTicks  = 5
	labelSize = 7.0 // advance of one basicfont glyph
)

// Color maps v onto a blue-white-red scale over [min, max].
func Color(v, min, max float64) color.RGBA {
	f := 0.5
	if max > min {
		f = (v - min) / (max - min)
	}
	if math.IsNaN(f) {
		f = 1
	}
	f = math.Max(0, math.Min(1, f))

	var r, g, b float64
	if f < 0.5 {
		r, g, b = 2*f, 2*f, 1
	} else {
		r, g, b = 1, 2*(1-f), 2*(1-f)
	}
	return color.RGBA{
		R: uint8(math.Round(255 * r)),
		G: uint8(math.Round(255 * g)),
		B: uint8(math.Round(255 * b)),
		A: 255,
	}
}

// layout holds the pixel geometry of a heat map.
type layout struct {
	n                int
	cell             float64
	left, top        float64
	width, height    float64
	barLeft          float64
	gridW            float64
	xLabelH, yLabelW float64
}

func newLayout(n int, labels []string, opts Options) layout {
	longest := 0
	for _, l := range labels {
		if len(l) > longest {
			longest = len(l)
		}
	}
	labelW := float64(longest) * labelSize

	l := layout{n: n, cell: opts.CellSize}
	l.gridW = float64(n) * l.cell
	l.yLabelW = labelW
	l.xLabelH = labelW
	l.left = pad + lineH + pad + l.yLabelW + tickLen + pad
	l.top = pad + lineH + pad
	l.barLeft = l.left + l.gridW + 2*pad
	l.width = l.barLeft + barWidth + tickLen + 6*labelSize + pad
	l.height = l.top + l.gridW + tickLen + l.xLabelH + pad + lineH + pad
	return l
}

// cellAt returns the upper left corner of the cell holding m[i][j].
func (l layout) cellAt(i, j int) (x, y float64) {
	return l.left + float64(i)*l.cell, l.top + float64(l.n-1-j)*l.cell
}

// Draw renders m with the given tick labels. m must be square and there must
// be one label per row.
func Draw(m [][]float64, labels []string, opts Options) (image.Image, error) {
	n := len(m)
	if n == 0 {
		return nil, ErrEmpty
	}
	for i := range m {
		if len(m[i]) != n {
			return nil, fmt.Errorf("heat map row %d has %d cells, expected %d",
				i, len(m[i]), n)
		}
	}
	if len(labels) != n {
		return nil, fmt.Errorf("heat map has %d labels for %d rows", len(labels), n)
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultOptions.CellSize
	}

	l := newLayout(n, labels, opts)
	dc := gg.NewContext(int(math.Ceil(l.width)), int(math.Ceil(l.height)))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x, y := l.cellAt(i, j)
			dc.DrawRectangle(x, y, l.cell, l.cell)
			dc.SetColor(Color(m[i][j], opts.Min, opts.Max))
			dc.Fill()
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(l.left, l.top, l.gridW, l.gridW)
	dc.Stroke()

	bottom := l.top + l.gridW
	for k, label := range labels {
		// x ticks, labels written bottom to top
		cx := l.left + (float64(k)+0.5)*l.cell
		dc.DrawLine(cx, bottom, cx, bottom+tickLen)
		dc.Stroke()
		dc.Push()
		dc.RotateAbout(-math.Pi/2, cx, bottom+tickLen+2)
		dc.DrawStringAnchored(label, cx, bottom+tickLen+2, 1, 0.5)
		dc.Pop()

		// y ticks
		cy := l.top + (float64(n-1-k)+0.5)*l.cell
		dc.DrawLine(l.left-tickLen, cy, l.left, cy)
		dc.Stroke()
		dc.DrawStringAnchored(label, l.left-tickLen-2, cy, 1, 0.35)
	}

	mid := l.left + l.gridW/2
	dc.DrawStringAnchored(opts.Title, mid, pad+lineH/2, 0.5, 0.35)
	dc.DrawStringAnchored(opts.XLabel, mid, l.height-pad-lineH/2, 0.5, 0.35)
	dc.Push()
	ly := l.top + l.gridW/2
	dc.RotateAbout(-math.Pi/2, pad+lineH/2, ly)
	dc.DrawStringAnchored(opts.YLabel, pad+lineH/2, ly, 0.5, 0.35)
	dc.Pop()

	drawBar(dc, l, opts)
	return dc.Image(), nil
}

// drawBar draws the colour bar next to the grid, with Max at the top.
func drawBar(dc *gg.Context, l layout, opts Options) {
	steps := int(l.gridW)
	for s := 0; s < steps; s++ {
		v := opts.Max - (opts.Max-opts.Min)*(float64(s)+0.5)/float64(steps)
		dc.DrawRectangle(l.barLeft, l.top+float64(s), barWidth, 1)
		dc.SetColor(Color(v, opts.Min, opts.Max))
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(l.barLeft, l.top, barWidth, l.gridW)
	dc.Stroke()
	right := l.barLeft + barWidth
	for k := 0; k <= barTicks; k++ {
		f := float64(k) / barTicks
		y := l.top + l.gridW*(1-f)
		dc.DrawLine(right, y, right+tickLen, y)
		dc.Stroke()
		v := opts.Min + f*(opts.Max-opts.Min)
		dc.DrawStringAnchored(fmt.Sprintf("%g", v), right+tickLen+2, y, 0, 0.35)
	}
}

// Render draws m and writes it to w as a PNG.
func Render(w io.Writer, m [][]float64, labels []string, opts Options) error {
	img, err := Draw(m, labels, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Save draws m and writes it to the PNG file at path.
func Save(path string, m [][]float64, labels []string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, m, labels, opts); err != nil {
		f.Close()
		return fmt.Errorf("rendering heat map to '%s': %w", path, err)
	}
	return f.Close()
}
