package mask

import (
	"os"
	"path/filepath"
	"testing"

	"nude-scan/internal/region"
)

func TestRender(t *testing.T) {
	regions := []region.Region{
		{{ID: 1, X: 0, Y: 0, Skin: true}, {ID: 2, X: 1, Y: 0, Skin: true}},
		{{ID: 6, X: 2, Y: 1, Skin: true}},
	}
	img := Render(regions, 3, 2)
	white := map[[2]int]bool{{0, 0}: true, {1, 0}: true, {2, 1}: true}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := img.NRGBAAt(x, y)
			want := uint8(0)
			if white[[2]int{x, y}] {
				want = 255
			}
			if c.R != want || c.G != want || c.B != want || c.A != 255 {
				t.Fatalf("(%d,%d): got %+v", x, y, c)
			}
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("", filepath.Join("in", "photo.jpg"), true); got != filepath.Join("in", "photo_Nude.webp") {
		t.Fatalf("got %s", got)
	}
	if got := OutputPath("out", filepath.Join("in", "photo.jpg"), false); got != filepath.Join("out", "photo_Normal.webp") {
		t.Fatalf("got %s", got)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "m.webp")
	if err := Save(path, Render(nil, 4, 4)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Fatalf("not a WebP container: % x", data[:min(len(data), 12)])
	}
}
