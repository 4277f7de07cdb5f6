package viz

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/rs/zerolog/log"

	"mobility-network-backend/pkg/graph"
)

// RenderOptions controls the output raster.
type RenderOptions struct {
	Width  int
	Height int
}

// DefaultRenderOptions matches the original visualization's 4:3 canvas.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Width: 1600, Height: 1200}
}

// palette mirrors matplotlib's tab20 qualitative colormap; community ids
// wrap around it.
var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, {R: 0xae, G: 0xc7, B: 0xe8, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, {R: 0xff, G: 0xbb, B: 0x78, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, {R: 0x98, G: 0xdf, B: 0x8a, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, {R: 0xff, G: 0x98, B: 0x96, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, {R: 0xc5, G: 0xb0, B: 0xd5, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, {R: 0xc4, G: 0x9c, B: 0x94, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, {R: 0xf7, G: 0xb6, B: 0xd2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}, {R: 0xc7, G: 0xc7, B: 0xc7, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, {R: 0xdb, G: 0xdb, B: 0x8d, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, {R: 0x9e, G: 0xda, B: 0xe5, A: 0xff},
}

var edgeColor = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

// Render draws the network as a PNG: edges first, then nodes as filled
// circles colored by community, sized by PageRank. It fails with a
// ComputationError if the partition misses a node the graph contains.
func Render(g *graph.Graph, partition map[string]int, opts RenderOptions) ([]byte, error) {
	if g.NumNodes() == 0 {
		return nil, graph.NewDataError("cannot render an empty graph")
	}
	for _, id := range g.IDs() {
		if _, ok := partition[id]; !ok {
			return nil, graph.NewComputationError("partition has no community for node %q", id)
		}
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultRenderOptions()
	}

	l, err := computeLayout(g)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	margin := 60.0
	px := make([]float64, g.NumNodes())
	py := make([]float64, g.NumNodes())
	spanX := l.maxX - l.minX
	spanY := l.maxY - l.minY
	for i := range px {
		if spanX > 0 {
			px[i] = margin + (l.positions[i].X-l.minX)/spanX*(float64(opts.Width)-2*margin)
		} else {
			px[i] = float64(opts.Width) / 2
		}
		if spanY > 0 {
			py[i] = margin + (l.positions[i].Y-l.minY)/spanY*(float64(opts.Height)-2*margin)
		} else {
			py[i] = float64(opts.Height) / 2
		}
	}

	// Edges in the background.
	for i := 0; i < g.NumNodes(); i++ {
		adj, _ := g.Neighbors(i)
		for _, u := range adj {
			if u > i {
				drawLine(img, px[i], py[i], px[u], py[u], edgeColor)
			}
		}
	}

	// Nodes on top.
	spanScore := l.maxScore - l.minScore
	for i, id := range g.IDs() {
		radius := 6.0
		if spanScore > 0 {
			radius = 4 + 10*(l.scores[i]-l.minScore)/spanScore
		}
		c := palette[((partition[id]%len(palette))+len(palette))%len(palette)]
		drawCircle(img, px[i], py[i], radius, c)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	log.Debug().
		Int("nodes", g.NumNodes()).
		Int("bytes", buf.Len()).
		Msg("Network image rendered")

	return buf.Bytes(), nil
}

// drawLine draws a 1px line by uniform stepping.
func drawLine(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		img.SetRGBA(int(x0), int(y0), c)
		return
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		img.SetRGBA(int(x0+t*dx), int(y0+t*dy), c)
	}
}

// drawCircle fills a disc with a thin darker outline.
func drawCircle(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	outline := color.RGBA{
		R: c.R / 2,
		G: c.G / 2,
		B: c.B / 2,
		A: 0xff,
	}
	for y := int(cy - r - 1); y <= int(cy+r+1); y++ {
		for x := int(cx - r - 1); x <= int(cx+r+1); x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case d <= r-1:
				img.SetRGBA(x, y, c)
			case d <= r:
				img.SetRGBA(x, y, outline)
			}
		}
	}
}
