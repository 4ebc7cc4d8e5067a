// Package snapshot renders a frame of the rope simulation to a PNG image.
package snapshot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/PrincetonUniversity/verletrope"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const fontSize = 12.0

var red = color.RGBA{R: 0xff, A: 0xff}

// SavePNG draws snap on a width × height image and writes it to path.
func SavePNG(path string, snap verletrope.Snapshot, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("snapshot: invalid image size %dx%d", width, height)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	dc := gg.NewContext(width, height)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("snapshot: failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	Draw(dc, snap)
	return dc.SavePNG(path)
}

// Draw draws snap on dc, one simulation unit per pixel.
func Draw(dc *gg.Context, snap verletrope.Snapshot) {
	dc.SetColor(color.Black)
	dc.Clear()

	// obstacles
	dc.SetLineWidth(1)
	dc.SetColor(color.White)
	for _, o := range snap.Obstacles {
		dc.DrawCircle(o.X, o.Y, snap.ObstacleRadius)
		dc.Stroke()
	}

	// rope
	if len(snap.Nodes) > 1 {
		dc.MoveTo(snap.Nodes[0].X, snap.Nodes[0].Y)
		for _, p := range snap.Nodes[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}

	// nodes
	dc.SetColor(red)
	r := snap.NodeRadius
	if r < 1 {
		r = 1
	}
	for _, p := range snap.Nodes {
		dc.DrawCircle(p.X, p.Y, r)
		dc.Fill()
	}

	dc.SetColor(color.White)
	mode := "pinned"
	if snap.ToPointer {
		mode = "following"
	}
	dc.DrawString(fmt.Sprintf("frame %d  %s  stretch %.4f", snap.Frame, mode, snap.Stretch), 4, fontSize+2)
}
