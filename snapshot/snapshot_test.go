package snapshot

import (
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/PrincetonUniversity/verletrope"
	"github.com/fogleman/gg"
)

func TestSavePNG(t *testing.T) {
	s := verletrope.New(verletrope.DefaultScene())
	s.AddObstacle(verletrope.Vec2{X: 100, Y: 300})
	s.Step()

	path := filepath.Join(t.TempDir(), "frames", "rope.png")
	if err := SavePNG(path, s.Snapshot(), 320, 240); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" || cfg.Width != 320 || cfg.Height != 240 {
		t.Fatalf("image: got=%s %dx%d want=png 320x240", format, cfg.Width, cfg.Height)
	}
}

func TestSavePNGInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rope.png")
	if err := SavePNG(path, verletrope.Snapshot{}, 0, 10); err == nil {
		t.Fatal("expected an error for an empty image")
	}
}

func TestDrawNodes(t *testing.T) {
	dc := gg.NewContext(50, 50)
	Draw(dc, verletrope.Snapshot{
		Nodes:      []verletrope.Vec2{{X: 10, Y: 40}, {X: 40, Y: 40}},
		NodeRadius: 3,
	})

	img := dc.Image()
	r, g, b, _ := img.At(40, 40).RGBA()
	if r>>8 != 0xff || g != 0 || b != 0 {
		t.Fatalf("node pixel: got=(%d,%d,%d) want red", r>>8, g>>8, b>>8)
	}
	if c := color.RGBAModel.Convert(img.At(25, 20)).(color.RGBA); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Fatalf("background pixel: got=%v want black", c)
	}
}
